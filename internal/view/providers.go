package view

import (
	"fmt"
	"strings"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/listing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ProviderList renders the filtered providers in the container's mode.
func ProviderList(c *listing.Container) string {
	if c.Empty() {
		return NoResults(c.Term())
	}
	if c.Mode() == listing.ModeTable {
		return ProviderTable(c.Filtered())
	}
	return ProviderCards(c.Filtered())
}

func NoResults(term string) string {
	if term == "" {
		return dimStyle.Render("No hay prestadores registrados.")
	}
	return dimStyle.Render(fmt.Sprintf("No se encontraron prestadores para %q.", term))
}

func ProviderCards(providers []dto.ServiceProvider) string {
	var rows []string
	for start := 0; start < len(providers); start += cardsPerRow {
		end := start + cardsPerRow
		if end > len(providers) {
			end = len(providers)
		}
		cards := make([]string, 0, cardsPerRow)
		for _, p := range providers[start:end] {
			cards = append(cards, providerCard(p))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func providerCard(p dto.ServiceProvider) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(status(p))
	b.WriteString("\n")
	b.WriteString(field("Teléfono", p.Phone))
	b.WriteString(field("Correo", p.Email))
	b.WriteString(field("Sucursales", p.TotalBranches.String()))
	b.WriteString(field("Doctores", p.TotalDoctors.String()))
	b.WriteString(dimStyle.Render("id " + p.ID))
	return cardStyle.Render(b.String())
}

func ProviderTable(providers []dto.ServiceProvider) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return sectionStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "Nombre", "Teléfono", "Correo", "Estado", "Sucursales", "Doctores")

	for _, p := range providers {
		t.Row(p.ID, p.Name, p.Phone, p.Email, p.Status, p.TotalBranches.String(), p.TotalDoctors.String())
	}
	return t.String()
}

// Header is the top of the detail page.
func Header(p dto.ServiceProvider) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name))
	b.WriteString("  ")
	b.WriteString(status(p))
	b.WriteString("\n")
	if p.Src != "" {
		b.WriteString(dimStyle.Render(p.Src))
		b.WriteString("\n")
	}
	return b.String()
}

// GeneralInfo lists the contact block of a provider.
func GeneralInfo(d dto.ProviderDetails) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Información General"))
	b.WriteString("\n")
	b.WriteString(field("Teléfono", d.Phone))
	b.WriteString(field("WhatsApp", d.WhatsApp))
	b.WriteString(field("Instagram", d.Instagram))
	b.WriteString(field("Correo", d.Email))
	b.WriteString(field("Sitio web", d.Website))
	b.WriteString(field("LinkedIn", d.LinkedIn))
	b.WriteString(field("Procedimientos", joinNames(d.ProcedureList)))
	return b.String()
}

func joinNames(procedures []dto.Procedure) string {
	names := make([]string, 0, len(procedures))
	for _, p := range procedures {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func status(p dto.ServiceProvider) string {
	if p.IsActive() {
		return okStyle.Render("● " + p.Status)
	}
	label := p.Status
	if label == "" {
		label = dto.StatusInactive
	}
	return errStyle.Render("● " + label)
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label+": ") + valueStyle.Render(value) + "\n"
}
