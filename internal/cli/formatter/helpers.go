package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// StatCard renders one manager dashboard card: a big number over a label.
func StatCard(label, value string) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Width(14).
		Align(lipgloss.Center)
	return card.Render(StyleBold.Render(value) + "\n" + StyleDim.Render(label))
}

// Warning renders a yellow "!" line.
func Warning(text string) string {
	return StyleYellow.Render("! " + text)
}
