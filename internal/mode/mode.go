// Package mode defines the screen controller interface and the services
// injected into screens.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/tagsearch/internal/config"
	"github.com/zjrosen/tagsearch/internal/mode/shared"
	"github.com/zjrosen/tagsearch/internal/searches/registry"
	"github.com/zjrosen/tagsearch/internal/ui/markdown"
	"github.com/zjrosen/tagsearch/internal/ui/toaster"
)

// Controller defines the interface screens implement.
type Controller interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Controller, tea.Cmd)
	View() string
	SetSize(width, height int) Controller
	Close() error
}

// Services contains shared dependencies injected into screens.
type Services struct {
	Registry   *registry.Registry
	Config     *config.Config
	ConfigPath string
	Clipboard  shared.Clipboard
	Opener     shared.Opener
	// Previewer is nil when the preview pane is disabled.
	Previewer *markdown.Previewer
}

// ShowToastMsg asks the root model to show a notification.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}

// Toast returns a command emitting ShowToastMsg.
func Toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Message: message, Style: style}
	}
}
