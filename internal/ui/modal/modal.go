// Package modal provides the blocking dialogs of the saved-searches screen:
// plain alerts, confirmations and small action menus. Each is a row (or
// column) of buttons; choosing one emits ChoiceMsg, esc emits CancelMsg.
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/tagsearch/internal/ui/overlay"
	"github.com/zjrosen/tagsearch/internal/ui/styles"
)

// ButtonVariant controls how a button is styled.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonSecondary
	ButtonDanger
)

// Layout arranges the buttons.
type Layout int

const (
	// Row places buttons side by side (alerts, confirmations).
	Row Layout = iota
	// Column stacks buttons, one per line (action menus).
	Column
)

// Button is one choice in the dialog.
type Button struct {
	ID      string
	Label   string
	Variant ButtonVariant
}

// Config controls dialog appearance.
type Config struct {
	// ID is echoed back in ChoiceMsg and CancelMsg so the owner can tell
	// dialogs apart.
	ID       string
	Title    string
	Message  string
	Buttons  []Button
	Layout   Layout
	MinWidth int // 0 = 40
}

// ChoiceMsg is sent when a button is chosen.
type ChoiceMsg struct {
	DialogID string
	ButtonID string
}

// CancelMsg is sent on esc.
type CancelMsg struct {
	DialogID string
}

// Model is the dialog state.
type Model struct {
	config  Config
	focused int
	width   int
	height  int
}

// New creates a dialog focused on its first button.
func New(cfg Config) Model {
	return Model{config: cfg}
}

// Alert is a message with a single OK button.
func Alert(id, title, message string) Model {
	return New(Config{
		ID:      id,
		Title:   title,
		Message: message,
		Buttons: []Button{{ID: "ok", Label: "OK"}},
	})
}

// Confirm is a destructive yes/no question. Cancel is focused so a stray
// enter does not confirm.
func Confirm(id, title, message, confirmLabel string) Model {
	m := New(Config{
		ID:      id,
		Title:   title,
		Message: message,
		Buttons: []Button{
			{ID: "confirm", Label: confirmLabel, Variant: ButtonDanger},
			{ID: "cancel", Label: "Cancel", Variant: ButtonSecondary},
		},
	})
	m.focused = 1
	return m
}

// Menu stacks buttons vertically.
func Menu(id, title string, buttons []Button) Model {
	return New(Config{ID: id, Title: title, Buttons: buttons, Layout: Column})
}

// ID returns the dialog identifier.
func (m Model) ID() string {
	return m.config.ID
}

// Focused returns the ID of the focused button.
func (m Model) Focused() string {
	if len(m.config.Buttons) == 0 {
		return ""
	}
	return m.config.Buttons[m.focused].ID
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keys for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l", "down", "j", "ctrl+n":
			m.move(1)
		case "shift+tab", "left", "h", "up", "k", "ctrl+p":
			m.move(-1)
		case "enter", " ":
			if len(m.config.Buttons) == 0 {
				return m, m.cancel()
			}
			choice := ChoiceMsg{DialogID: m.config.ID, ButtonID: m.Focused()}
			return m, func() tea.Msg { return choice }
		case "esc", "q":
			return m, m.cancel()
		default:
			// First-letter shortcut: "s" for Share, "d" for Delete.
			for i, b := range m.config.Buttons {
				if len(msg.Runes) == 1 && strings.EqualFold(string(msg.Runes[0]), firstLetter(b.Label)) {
					m.focused = i
					choice := ChoiceMsg{DialogID: m.config.ID, ButtonID: b.ID}
					return m, func() tea.Msg { return choice }
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *Model) move(delta int) {
	n := len(m.config.Buttons)
	if n == 0 {
		return
	}
	m.focused = (m.focused + delta + n) % n
}

func (m Model) cancel() tea.Cmd {
	id := m.config.ID
	return func() tea.Msg { return CancelMsg{DialogID: id} }
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// View renders the dialog box without positioning it.
func (m Model) View() string {
	contentWidth := max(m.config.MinWidth, 40, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var body strings.Builder
	if m.config.Message != "" {
		body.WriteString(lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth).
			Render(m.config.Message))
		body.WriteString("\n\n")
	}
	body.WriteString(m.renderButtons(contentWidth))

	var out strings.Builder
	out.WriteString(titleStyle.Render(m.config.Title))
	out.WriteString("\n")
	out.WriteString(divider)
	out.WriteString("\n")
	out.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(body.String()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(out.String())
}

func (m Model) renderButtons(width int) string {
	rendered := make([]string, len(m.config.Buttons))
	for i, b := range m.config.Buttons {
		style := buttonStyle(b.Variant, i == m.focused)
		if m.config.Layout == Column {
			style = style.Width(width)
		}
		rendered[i] = style.Render(b.Label)
	}
	if m.config.Layout == Column {
		return strings.Join(rendered, "\n")
	}
	return strings.Join(rendered, "  ")
}

func buttonStyle(v ButtonVariant, focused bool) lipgloss.Style {
	switch v {
	case ButtonDanger:
		if focused {
			return styles.DangerButtonFocusedStyle
		}
		return styles.DangerButtonStyle
	case ButtonSecondary:
		if focused {
			return styles.SecondaryButtonFocusedStyle
		}
		return styles.SecondaryButtonStyle
	default:
		if focused {
			return styles.PrimaryButtonFocusedStyle
		}
		return styles.PrimaryButtonStyle
	}
}

// Overlay renders the dialog centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize records the screen size used by Overlay.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
