package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/remuikids/kidsboard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StageStyle colours a school stage: elementary green, middle blue, high purple.
func StageStyle(stage domain.Stage) lipgloss.Style {
	switch stage {
	case domain.StageElementary:
		return StyleGreen
	case domain.StageMiddle:
		return StyleBlue
	case domain.StageHigh:
		return StylePurple
	default:
		return StyleDim
	}
}

// BandBadge renders a grade band such as "● High 9".
func BandBadge(band domain.GradeBand) string {
	if band.IsUnknown() {
		return StyleDim.Render("○ Unknown")
	}
	label := fmt.Sprintf("● %s %d", stageLabel(band.Stage), band.Grade)
	return StageStyle(band.Stage).Render(label)
}

func stageLabel(stage domain.Stage) string {
	switch stage {
	case domain.StageElementary:
		return "Elementary"
	case domain.StageMiddle:
		return "Middle"
	case domain.StageHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// PercentStyle picks green from 67%, yellow from 33%, red below.
func PercentStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 67:
		return StyleGreen
	case pct >= 33:
		return StyleYellow
	default:
		return StyleRed
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
