package view

import (
	"fmt"
	"strings"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/workspace"

	"github.com/charmbracelet/lipgloss"
)

// Workspace renders the header, the tab bar and the selected section.
func Workspace(ws *workspace.Workspace) string {
	details := ws.Details()

	var b strings.Builder
	b.WriteString(Header(details.ServiceProvider))
	b.WriteString(TabBar(ws.Tab()))
	b.WriteString("\n\n")

	switch ws.Tab() {
	case workspace.TabDashboard:
		b.WriteString(Stats(ws.Stats()))
	case workspace.TabGeneral:
		b.WriteString(GeneralInfo(details))
	case workspace.TabBranches:
		b.WriteString(BranchesSection(ws.Branches()))
	case workspace.TabSpecialties:
		b.WriteString(SpecialtyList(details.SpecialtyList))
	case workspace.TabInsurances:
		b.WriteString(InsuranceList(details.Insurances))
	}
	b.WriteString("\n")
	return b.String()
}

func TabBar(active workspace.Tab) string {
	labels := make([]string, 0, len(workspace.Tabs()))
	for _, t := range workspace.Tabs() {
		if t == active {
			labels = append(labels, activeTab.Render(t.String()))
		} else {
			labels = append(labels, dimStyle.Render(t.String()))
		}
	}
	return strings.Join(labels, dimStyle.Render(" | "))
}

// Stats renders the branch and doctor counters with their progress.
func Stats(s workspace.Stats) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Sucursales", s.Branches),
		statCard("Doctores", s.Doctors),
	)
}

func statCard(label string, t dto.Total) string {
	body := sectionStyle.Render(label) + "\n" +
		titleStyle.Render(t.String()) + "\n" +
		progressBar(t.Progress(), 20)
	return statStyle.Render(body)
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return okStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %.0f%%", percent)
}

func BranchesSection(s *workspace.BranchesSection) string {
	switch {
	case s.Loading():
		return dimStyle.Render("Cargando sucursales...")
	case s.Err() != nil:
		return errStyle.Render("No se pudieron cargar las sucursales. " + s.Err().Error())
	}
	return BranchCards(s.Branches())
}

func BranchCards(branches []dto.Branch) string {
	if len(branches) == 0 {
		return dimStyle.Render("Este prestador no tiene sucursales registradas.")
	}

	var rows []string
	for start := 0; start < len(branches); start += cardsPerRow {
		end := start + cardsPerRow
		if end > len(branches) {
			end = len(branches)
		}
		cards := make([]string, 0, cardsPerRow)
		for _, br := range branches[start:end] {
			cards = append(cards, branchCard(br))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func branchCard(br dto.Branch) string {
	state := okStyle.Render("● Activa")
	if !br.Status {
		state = errStyle.Render("● Inactiva")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(br.Name))
	b.WriteString("\n")
	b.WriteString(state)
	b.WriteString("\n")
	b.WriteString(field("Dirección", br.Address))
	b.WriteString(field("Teléfono", br.Phone))
	b.WriteString(field("Horario", br.Hours))
	b.WriteString(field("Pagos", strings.Join(br.PaymentMethods, ", ")))
	b.WriteString(field("Facilidades", strings.Join(br.Facilities, ", ")))
	return cardStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

// SpecialtyList shows each specialty with its duration in minutes.
func SpecialtyList(specialties []dto.Specialty) string {
	if len(specialties) == 0 {
		return dimStyle.Render("Sin especialidades asignadas.")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Especialidades"))
	b.WriteString("\n")
	for _, s := range specialties {
		b.WriteString(fmt.Sprintf("  • %s %s\n", valueStyle.Render(s.Name), dimStyle.Render(fmt.Sprintf("(%d min)", s.Minutes()))))
	}
	return b.String()
}

func InsuranceList(insurances []dto.Insurance) string {
	if len(insurances) == 0 {
		return dimStyle.Render("Sin seguros afiliados.")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Seguros"))
	b.WriteString("\n")
	for _, i := range insurances {
		b.WriteString(fmt.Sprintf("  • %s %s\n", valueStyle.Render(i.Name), dimStyle.Render(i.Src)))
	}
	return b.String()
}

func Notices(notices []workspace.Notice) string {
	var b strings.Builder
	for _, n := range notices {
		if n.Level == workspace.NoticeError {
			b.WriteString(errStyle.Render("✗ " + n.Message))
		} else {
			b.WriteString(okStyle.Render("✓ " + n.Message))
		}
		b.WriteString("\n")
	}
	return b.String()
}
