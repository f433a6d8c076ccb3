// Package tui provides the Bubble Tea quiz and study screens.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	glyphStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0")).Padding(1, 4).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#141414")).Background(lipgloss.Color("#C89A3A"))
)

func place(width, height int, content, footer string) string {
	if width == 0 || height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n\n" + footer
	}
	if footer == "" || height < 3 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func contentWidth(width int) int {
	w := int(float64(width) * 0.70)
	if w < 1 {
		return 0
	}
	return w
}
