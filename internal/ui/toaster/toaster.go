// Package toaster shows short-lived notifications at the bottom of the
// screen ("Saved news", "Copied share text").
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/tagsearch/internal/ui/overlay"
	"github.com/zjrosen/tagsearch/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	// seq identifies the current toast so a stale dismiss tick from an
	// earlier toast does not hide a newer one.
	seq int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays message and returns a command that dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	m.visible = true
	return m, ScheduleDismiss(m.seq, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Update hides the toast when its own DismissMsg arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Seq == m.seq {
		return m.Hide()
	}
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the visible toast.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.StatusErrorColor)
		icon = "✗ "
	case StyleInfo:
		style = style.BorderForeground(styles.StatusInfoColor)
		icon = "i "
	case StyleWarn:
		style = style.BorderForeground(styles.StatusWarningColor)
		icon = "! "
	default:
		style = style.BorderForeground(styles.StatusSuccessColor)
		icon = "✓ "
	}
	return style.Render(icon + m.message)
}

// Overlay renders the toast bottom-center on bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast with the matching sequence number.
type DismissMsg struct {
	Seq int
}

// ScheduleDismiss returns a command that emits DismissMsg after d.
func ScheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}
