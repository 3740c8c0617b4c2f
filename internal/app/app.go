// Package app contains the root application model.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tagsearch/internal/keys"
	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/mode"
	"github.com/zjrosen/tagsearch/internal/mode/searches"
	"github.com/zjrosen/tagsearch/internal/pubsub"
	"github.com/zjrosen/tagsearch/internal/ui/logoverlay"
	"github.com/zjrosen/tagsearch/internal/ui/toaster"
	"github.com/zjrosen/tagsearch/internal/watcher"
)

// storeChangedMsg is sent when the watcher saw the store file change.
type storeChangedMsg struct {
	path string
}

// Options configures the root model.
type Options struct {
	// StorePath is watched for writes from other processes when
	// auto_refresh is on. Empty disables watching.
	StorePath string
	// DebugMode enables the log overlay (ctrl+x).
	DebugMode bool
}

// Model is the root application state.
type Model struct {
	screen   searches.Model
	services mode.Services

	width  int
	height int

	// Toasts are owned here, not by the screen.
	toaster toaster.Model

	debugMode   bool
	logOverlay  logoverlay.Model
	logCtx      context.Context
	logCancel   context.CancelFunc
	logListener *log.LogListener

	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[string]
}

// New creates the root model over services.
func New(services mode.Services, opts Options) Model {
	m := Model{
		screen:     searches.New(services),
		services:   services,
		toaster:    toaster.New(),
		debugMode:  opts.DebugMode,
		logOverlay: logoverlay.New(),
	}

	autoRefresh := services.Config == nil || services.Config.AutoRefresh
	if autoRefresh && opts.StorePath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.StorePath))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
				m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
			} else {
				log.Warn(log.CatWatcher, "Failed to start watcher", "error", err)
				_ = w.Stop()
			}
		} else {
			log.Warn(log.CatWatcher, "Failed to create watcher", "error", err)
		}
		// The app works without auto-refresh; r reloads by hand.
	}

	if opts.DebugMode {
		m.logCtx, m.logCancel = context.WithCancel(context.Background())
		m.logListener = log.NewListener(m.logCtx)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.screen.Init()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.listenWatcher())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// listenWatcher waits for the next watcher event. Log entries share the
// event payload type, so watcher events are rewrapped.
func (m Model) listenWatcher() tea.Cmd {
	listen := m.watcherListener.Listen()
	return func() tea.Msg {
		event, ok := listen().(pubsub.Event[string])
		if !ok {
			return nil
		}
		return storeChangedMsg{path: event.Payload}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen = m.screen.SetSize(msg.Width, msg.Height).(searches.Model)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			return m, nil
		}

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		if m.logListener != nil {
			cmd = tea.Batch(cmd, m.logListener.Listen())
		}
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.debugMode && key.Matches(msg, keys.App.Logs) {
			m.logOverlay.Toggle()
			return m, nil
		}
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case storeChangedMsg:
		log.Debug(log.CatWatcher, "Store changed on disk, reloading", "path", msg.path)
		updated, cmd := m.screen.Update(searches.ReloadMsg{})
		m.screen = updated.(searches.Model)
		if m.watcherListener != nil {
			cmd = tea.Batch(cmd, m.listenWatcher())
		}
		return m, cmd

	case mode.ShowToastMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style, toaster.DefaultDuration)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil
	}

	updated, cmd := m.screen.Update(msg)
	m.screen = updated.(searches.Model)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.screen.View()

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

// Screen returns the saved-searches screen.
func (m Model) Screen() searches.Model {
	return m.screen
}

// Close releases the screen subscription, the log listener and the watcher.
func (m *Model) Close() error {
	if m.logCancel != nil {
		m.logCancel()
	}
	if err := m.screen.Close(); err != nil {
		return err
	}
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
