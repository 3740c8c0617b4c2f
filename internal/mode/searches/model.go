// Package searches implements the saved-searches screen: a form for a new
// or edited search, the case-insensitively sorted tag list and an optional
// markdown preview of the selected query.
package searches

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tagsearch/internal/config"
	"github.com/zjrosen/tagsearch/internal/keys"
	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/mode"
	"github.com/zjrosen/tagsearch/internal/mode/shared"
	"github.com/zjrosen/tagsearch/internal/pubsub"
	"github.com/zjrosen/tagsearch/internal/searches/domain"
	"github.com/zjrosen/tagsearch/internal/searches/registry"
	"github.com/zjrosen/tagsearch/internal/searchurl"
	"github.com/zjrosen/tagsearch/internal/ui/markdown"
	"github.com/zjrosen/tagsearch/internal/ui/modal"
	"github.com/zjrosen/tagsearch/internal/ui/toaster"
)

// focus is the element receiving keys when no dialog is open.
type focus int

const (
	focusList focus = iota
	focusQuery
	focusTag
)

// Model is the saved-searches screen.
type Model struct {
	services mode.Services

	prefix        string
	shareSubject  string
	shareMessage  string
	confirmDelete bool
	showCounts    bool

	ctx     context.Context
	cancel  context.CancelFunc
	changes *pubsub.ContinuousListener[registry.Change]

	tags   []string
	cursor int
	offset int

	focus focus
	form  form

	// dialog is the open blocking dialog, nil when none. dialogTag is the
	// search it acts on.
	dialog    *modal.Model
	dialogTag string

	help        help.Model
	showPreview bool
	preview     string

	width  int
	height int
}

var _ mode.Controller = Model{}

// New creates the screen over services.Registry. A nil services.Config
// uses config.Defaults.
func New(services mode.Services) Model {
	cfg := config.Defaults()
	if services.Config != nil {
		cfg = *services.Config
	}
	if services.Clipboard == nil {
		services.Clipboard = shared.SystemClipboard{}
	}
	if services.Opener == nil {
		services.Opener = shared.SystemOpener{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		services:      services,
		prefix:        cfg.Search.URL,
		shareSubject:  cfg.Search.ShareSubject,
		shareMessage:  cfg.Search.ShareMessage,
		confirmDelete: cfg.UI.ConfirmDelete,
		showCounts:    cfg.UI.ShowCounts,
		ctx:           ctx,
		cancel:        cancel,
		changes:       pubsub.NewContinuousListener(ctx, services.Registry.Broker()),
		tags:          services.Registry.ListTags(),
		form:          newForm(),
		help:          help.New(),
		showPreview:   services.Previewer != nil && cfg.UI.ShowPreview,
	}
}

// Init starts listening for registry changes.
func (m Model) Init() tea.Cmd {
	return m.changes.Listen()
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	return m.update(msg)
}

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	return m.resize(width, height)
}

// Close stops the registry subscription.
func (m Model) Close() error {
	m.cancel()
	return nil
}

// Tags returns the tag list as displayed.
func (m Model) Tags() []string {
	return slices.Clone(m.tags)
}

// Selected returns the tag under the cursor, or "" when the list is empty.
func (m Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.tags) {
		return ""
	}
	return m.tags[m.cursor]
}

// Editing returns the tag loaded into the form for editing, or "".
func (m Model) Editing() string {
	return m.form.editing
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width
	m.form = m.form.setWidth(m.formInputWidth())
	if m.dialog != nil {
		d := *m.dialog
		d.SetSize(width, height)
		m.dialog = &d
	}
	return m.refreshPreview()
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case pubsub.Event[registry.Change]:
		selected := m.Selected()
		if msg.Type == pubsub.CreatedEvent {
			selected = msg.Payload.Tag
		}
		if msg.Payload.IndexChanged {
			m = m.syncTags(selected)
		} else {
			m = m.refreshPreview()
		}
		return m, m.changes.Listen()

	case ReloadMsg:
		return m, m.reloadCmd()

	case reloadedMsg:
		if msg.err != nil {
			return m, mode.Toast("Could not reload saved searches", toaster.StyleError)
		}
		if msg.changed {
			log.Info(log.CatUI, "Saved searches changed on disk")
			if m.services.Previewer != nil {
				m.services.Previewer.Invalidate(m.ctx)
			}
			m = m.refreshPreview()
		}
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case deletedMsg:
		if msg.err != nil {
			return m, mode.Toast(errorText("delete", msg.tag, msg.err), toaster.StyleError)
		}
		if m.form.editing == msg.tag {
			m.form = m.form.reset()
		}
		m = m.syncTags(m.Selected())
		return m, mode.Toast(fmt.Sprintf("Deleted %q", msg.tag), toaster.StyleSuccess)

	case openedMsg:
		if msg.err != nil {
			return m, mode.Toast(errorText("open", msg.tag, msg.err), toaster.StyleError)
		}
		return m, nil

	case sharedMsg:
		if msg.err != nil {
			return m, mode.Toast(errorText("share", msg.tag, msg.err), toaster.StyleError)
		}
		return m, mode.Toast(fmt.Sprintf("Share text for %q copied to clipboard", msg.tag), toaster.StyleInfo)

	case copiedMsg:
		if msg.err != nil {
			return m, mode.Toast(errorText("copy", msg.tag, msg.err), toaster.StyleError)
		}
		return m, mode.Toast("Search URL copied to clipboard", toaster.StyleInfo)

	case modal.ChoiceMsg:
		return m.handleChoice(msg)

	case modal.CancelMsg:
		m.dialog = nil
		m.dialogTag = ""
		return m, nil

	case tea.MouseMsg:
		if m.dialog != nil {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.dialog != nil {
			d, cmd := m.dialog.Update(msg)
			m.dialog = &d
			return m, cmd
		}
		if m.focus == focusList {
			return m.handleListKey(msg)
		}
		return m.handleFormKey(msg)
	}

	// Cursor blink and other input messages.
	if m.focus != focusList {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(m.focus, msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tag := m.Selected()

	switch {
	case key.Matches(msg, keys.Searches.Up):
		return m.moveCursor(m.cursor - 1), nil
	case key.Matches(msg, keys.Searches.Down):
		return m.moveCursor(m.cursor + 1), nil
	case key.Matches(msg, keys.Searches.Top):
		return m.moveCursor(0), nil
	case key.Matches(msg, keys.Searches.Bottom):
		return m.moveCursor(len(m.tags) - 1), nil
	case key.Matches(msg, keys.Searches.New):
		return m.focusForm(focusQuery)
	case key.Matches(msg, keys.Searches.Reload):
		return m, m.reloadCmd()
	case key.Matches(msg, keys.Searches.Preview):
		if m.services.Previewer != nil {
			m.showPreview = !m.showPreview
			m = m.refreshPreview()
		}
		return m, nil
	case key.Matches(msg, keys.App.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit
	}

	if tag == "" {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Searches.Open):
		return m, m.openCmd(tag)
	case key.Matches(msg, keys.Searches.Actions):
		return m.openDialog(shared.ActionsDialog(tag), tag), nil
	case key.Matches(msg, keys.Searches.Share):
		return m, m.shareCmd(tag)
	case key.Matches(msg, keys.Searches.Edit):
		return m.startEdit(tag)
	case key.Matches(msg, keys.Searches.Delete):
		return m.requestDelete(tag)
	case key.Matches(msg, keys.Searches.Copy):
		return m, m.copyURLCmd(tag)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Searches.Cancel):
		if m.form.editing != "" {
			m.form = m.form.reset()
		}
		return m.focusForm(focusList)
	case key.Matches(msg, keys.Searches.Save):
		return m.submit()
	case key.Matches(msg, keys.Searches.NextField), key.Matches(msg, keys.Searches.PrevField):
		return m.focusForm(m.otherField())
	case msg.Type == tea.KeyEnter:
		if m.focus == focusQuery {
			return m.focusForm(focusTag)
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(m.focus, msg)
	return m, cmd
}

func (m Model) otherField() focus {
	if m.focus == focusQuery {
		return focusTag
	}
	return focusQuery
}

func (m Model) focusForm(fc focus) (Model, tea.Cmd) {
	m.focus = fc
	var cmd tea.Cmd
	m.form, cmd = m.form.focus(fc)
	return m, cmd
}

// submit saves the form. An empty tag or query opens the missing-fields
// dialog and changes nothing.
func (m Model) submit() (Model, tea.Cmd) {
	tag, query := m.form.values()
	if tag == "" || query == "" {
		return m.openDialog(shared.MissingFieldsDialog(), ""), nil
	}
	return m, m.saveCmd(tag, query, m.form.editing)
}

func (m Model) handleSaved(msg savedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m = m.syncTags(m.Selected())
		if errors.Is(msg.err, domain.ErrInvalidInput) {
			return m.openDialog(shared.MissingFieldsDialog(), ""), nil
		}
		return m, mode.Toast(errorText("save", msg.tag, msg.err), toaster.StyleError)
	}

	m.form = m.form.reset()
	m = m.syncTags(msg.tag)
	m, blur := m.focusForm(focusList)

	text := fmt.Sprintf("Saved %q", msg.tag)
	switch {
	case msg.renamedFrom != "":
		text = fmt.Sprintf("Renamed %q to %q", msg.renamedFrom, msg.tag)
	case !msg.created:
		text = fmt.Sprintf("Updated %q", msg.tag)
	}
	return m, tea.Batch(blur, mode.Toast(text, toaster.StyleSuccess))
}

func (m Model) startEdit(tag string) (Model, tea.Cmd) {
	query, ok := m.services.Registry.GetQuery(tag)
	if !ok {
		return m, mode.Toast(errorText("edit", tag, &domain.NotFoundError{Tag: tag}), toaster.StyleError)
	}
	m.form = m.form.load(tag, query)
	return m.focusForm(focusQuery)
}

func (m Model) requestDelete(tag string) (Model, tea.Cmd) {
	if !m.confirmDelete {
		return m, m.deleteCmd(tag)
	}
	return m.openDialog(shared.ConfirmDeleteDialog(tag), tag), nil
}

func (m Model) openDialog(d modal.Model, tag string) Model {
	d.SetSize(m.width, m.height)
	m.dialog = &d
	m.dialogTag = tag
	return m
}

func (m Model) handleChoice(msg modal.ChoiceMsg) (Model, tea.Cmd) {
	tag := m.dialogTag
	m.dialog = nil
	m.dialogTag = ""

	switch msg.DialogID {
	case shared.DialogActions:
		switch msg.ButtonID {
		case shared.ButtonShare:
			return m, m.shareCmd(tag)
		case shared.ButtonEdit:
			return m.startEdit(tag)
		case shared.ButtonDelete:
			return m.requestDelete(tag)
		}
	case shared.DialogConfirmDelete:
		if msg.ButtonID == shared.ButtonConfirm {
			return m, m.deleteCmd(tag)
		}
	case shared.DialogMissingFields:
		// Acknowledged; keep whatever was typed.
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.moveCursor(m.cursor - 1), nil
	case tea.MouseButtonWheelDown:
		return m.moveCursor(m.cursor + 1), nil
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	if z := zone.Get(zoneQueryInput); z != nil && z.InBounds(msg) {
		return m.focusForm(focusQuery)
	}
	if z := zone.Get(zoneTagInput); z != nil && z.InBounds(msg) {
		return m.focusForm(focusTag)
	}
	for i := m.offset; i < len(m.tags); i++ {
		if z := zone.Get(rowZoneID(i)); z != nil && z.InBounds(msg) {
			// A click on the selected row opens its action menu.
			if i == m.cursor && m.focus == focusList {
				return m.openDialog(shared.ActionsDialog(m.tags[i]), m.tags[i]), nil
			}
			var cmd tea.Cmd
			m, cmd = m.focusForm(focusList)
			return m.moveCursor(i), cmd
		}
	}
	return m, nil
}

// syncTags re-reads the index and keeps the cursor on selected when it is
// still saved, otherwise at the same position.
func (m Model) syncTags(selected string) Model {
	m.tags = m.services.Registry.ListTags()
	if i := m.services.Registry.IndexOf(selected); i >= 0 {
		m.cursor = i
	}
	return m.moveCursor(m.cursor)
}

func (m Model) moveCursor(i int) Model {
	m.cursor = max(min(i, len(m.tags)-1), 0)
	rows := m.listRows()
	if rows == 0 {
		m.offset = 0
		return m.refreshPreview()
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(min(m.offset, len(m.tags)-rows), 0)
	return m.refreshPreview()
}

// refreshPreview renders the selected search into the preview pane.
func (m Model) refreshPreview() Model {
	m.preview = ""
	if !m.previewVisible() || m.services.Previewer == nil {
		return m
	}
	tag := m.Selected()
	if tag == "" {
		return m
	}
	query, ok := m.services.Registry.GetQuery(tag)
	if !ok {
		return m
	}
	out, err := m.services.Previewer.Render(m.ctx, markdown.PreviewInput{
		Tag:   tag,
		Query: query,
		URL:   searchurl.Compose(m.prefix, query),
		Width: m.previewWidth() - 2,
	})
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to render preview", err, "tag", tag)
		return m
	}
	m.preview = out
	return m
}
