package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel draws content inside a rounded border with title embedded in
// the top edge: ╭─ Title ─────╮. width and height include the border.
// Content is clipped to the inner area.
func RenderPanel(content, title string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	titleColor := TextSecondaryColor
	if focused {
		borderColor = BorderFocusColor
		titleColor = TextPrimaryColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Bold(focused)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	body := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Height(innerHeight).
		MaxHeight(innerHeight).
		Render(content)

	lines := strings.Split(body, "\n")
	side := borderStyle.Render(borderVertical)

	var sb strings.Builder
	sb.WriteString(topBorder(title, innerWidth, borderStyle, titleStyle))
	for i := range innerHeight {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		sb.WriteString("\n")
		sb.WriteString(side + line + side)
	}
	sb.WriteString("\n")
	sb.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return sb.String()
}

func topBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " + title + " " needs at least one title cell.
	if title == "" || innerWidth < 5 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	title = Truncate(title, innerWidth-4)
	rest := max(innerWidth-3-lipgloss.Width(title), 0)
	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
