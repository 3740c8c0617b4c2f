// Package logoverlay is an in-app viewer for the recent log buffer, opened
// with ctrl+x when debug logging is on.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/ui/overlay"
	"github.com/zjrosen/tagsearch/internal/ui/styles"
)

const (
	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
)

// levelFilters are the filter keys in display order.
var levelFilters = []struct {
	key   string
	label string
	level log.Level
}{
	{"d", "Debug", log.LevelDebug},
	{"i", "Info", log.LevelInfo},
	{"w", "Warn", log.LevelWarn},
	{"e", "Error", log.LevelError},
}

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Update handles keys while visible and keeps following new entries.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		k := msg.String()
		for _, f := range levelFilters {
			if k == f.key {
				m.minLevel = f.level
				m.refresh()
				return m, nil
			}
		}
		switch k {
		case "c":
			log.ClearBuffer()
			m.refresh()
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+x", "esc", "q":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}

	case log.LogEvent:
		atBottom := m.viewport.AtBottom()
		m.refresh()
		if atBottom {
			m.viewport.GotoBottom()
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// View renders the overlay box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	boxWidth := m.boxWidth()
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render("Logs")

	body := strings.Join([]string{
		title,
		divider,
		m.viewport.View(),
		divider,
		m.filterHint(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(body)
}

// Overlay renders the overlay centered on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible returns whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle flips visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// SetSize records the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

// MinLevel returns the active filter.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentWidth := m.boxWidth() - 2
	// Title, two dividers, hint and border take six lines.
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)

	m.viewport = viewport.New(contentWidth, height)
	m.viewport.SetContent(m.content(contentWidth))
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range log.GetRecentLogs(10000) {
		level, known := entryLevel(entry)
		if known && level < m.minLevel {
			continue
		}
		lines = append(lines, colorize(entry, level, known, width))
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// entryLevel reads the "[LEVEL]" marker written by log.Format.
func entryLevel(entry string) (log.Level, bool) {
	for _, f := range levelFilters {
		if strings.Contains(entry, "["+f.level.String()+"]") {
			return f.level, true
		}
	}
	return log.LevelDebug, false
}

func colorize(entry string, level log.Level, known bool, width int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "…")
	}

	color := styles.TextPrimaryColor
	if known {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.StatusInfoColor
		default:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range levelFilters {
		label := "[" + f.key + "] " + f.label
		if f.level == m.minLevel {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, hint.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}
