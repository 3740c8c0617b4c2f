// Package overlay draws dialogs and toasts on top of an already rendered
// screen without clearing it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where the foreground lands on the background.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the screen and the placement.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY is the distance from the top or bottom edge. Ignored for Center.
	PadY int
}

// Place splices fg into bg line by line. Both may contain ANSI styling;
// cells of bg outside fg's box are kept as they were.
func Place(cfg Config, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	fgLines := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bgLine starting at column x with fgLine.
func splice(bgLine, fgLine string, x int) string {
	left := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fgLine)
	var right string
	if end < ansi.StringWidth(bgLine) {
		right = ansi.TruncateLeft(bgLine, end, "")
	}
	return left + fgLine + right
}

func origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
