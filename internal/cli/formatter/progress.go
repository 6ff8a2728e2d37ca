package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func barBlocks(pct, width int) (int, int) {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)
	filled := pct * width / 100
	return filled, width - filled
}

// RenderProgress renders a bar like [████░░░░]  45%, coloured by PercentStyle.
func RenderProgress(pct, width int) string {
	filled, empty := barBlocks(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %3d%%", PercentStyle(pct).Render(bar), min(max(pct, 0), 100))
}

// RenderCompactBar renders the bar alone, for table cells.
func RenderCompactBar(pct, width int, dim bool) string {
	filled, empty := barBlocks(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	if dim {
		return StyleDim.Render(bar)
	}
	return PercentStyle(pct).Render(bar)
}

// Fraction renders "completed/total".
func Fraction(completed, total int) string {
	return fmt.Sprintf("%d/%d", completed, total)
}
