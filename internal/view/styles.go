// Package view renders the directory screens for a terminal.
package view

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeTab    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(36)

	statStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	errorBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3)
)

// cardsPerRow is how many cards a grid row holds.
const cardsPerRow = 3
