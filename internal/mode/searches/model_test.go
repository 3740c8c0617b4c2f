package searches

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tagsearch/internal/config"
	"github.com/zjrosen/tagsearch/internal/mode"
	"github.com/zjrosen/tagsearch/internal/mode/shared"
	"github.com/zjrosen/tagsearch/internal/pubsub"
	"github.com/zjrosen/tagsearch/internal/searches/registry"
	"github.com/zjrosen/tagsearch/internal/searchurl"
	"github.com/zjrosen/tagsearch/internal/testutil"
	"github.com/zjrosen/tagsearch/internal/ui/markdown"
	"github.com/zjrosen/tagsearch/internal/ui/modal"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// harness drives the screen synchronously. Commands run with a short
// timeout so cursor blinks and listeners that never fire are skipped.
type harness struct {
	t      *testing.T
	m      Model
	reg    *registry.Registry
	store  *testutil.MemoryStore
	clip   *shared.MockClipboard
	opener *shared.MockOpener
	toasts []string
	quit   bool
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	store := testutil.NewMemoryStore(nil)
	testutil.NewBuilder(t, store).WithScenario().Build()

	reg, err := registry.Open(context.Background(), store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	cfg := config.Defaults()
	cfg.UI.ShowPreview = false
	if mutate != nil {
		mutate(&cfg)
	}

	h := &harness{
		t:      t,
		reg:    reg,
		store:  store,
		clip:   &shared.MockClipboard{},
		opener: &shared.MockOpener{},
	}
	h.m = New(mode.Services{
		Registry:  reg,
		Config:    &cfg,
		Clipboard: h.clip,
		Opener:    h.opener,
	}).resize(100, 30)
	t.Cleanup(func() { _ = h.m.Close() })
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	m, cmd := h.m.update(msg)
	h.m = m
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		h.feed(msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func (h *harness) feed(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case mode.ShowToastMsg:
		h.toasts = append(h.toasts, msg.Message)
	case tea.QuitMsg:
		h.quit = true
	case pubsub.Event[registry.Change]:
		// Delivered explicitly by tests.
	default:
		h.send(msg)
	}
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) lastToast() string {
	if len(h.toasts) == 0 {
		return ""
	}
	return h.toasts[len(h.toasts)-1]
}

// dialogText returns the dialog's words with borders and line wrapping
// removed, so prompts can be matched regardless of where they wrap.
func dialogText(d modal.Model) string {
	var words []string
	for _, f := range strings.Fields(ansi.Strip(d.View())) {
		if f != "│" {
			words = append(words, f)
		}
	}
	return strings.Join(words, " ")
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestNew_ListsTagsCaseInsensitively(t *testing.T) {
	h := newHarness(t, nil)

	require.Equal(t, []string{"art", "news", "Sports"}, h.m.Tags())
	require.Equal(t, "art", h.m.Selected())
}

func TestSave_NewSearchInsertedInOrder(t *testing.T) {
	h := newHarness(t, nil)

	h.press("n")
	h.typeText("golang 1.24")
	h.press("tab")
	h.typeText("go")
	h.press("enter")

	require.Equal(t, []string{"art", "go", "news", "Sports"}, h.m.Tags())
	require.Equal(t, "go", h.m.Selected())
	require.Equal(t, "golang 1.24", h.store.Snapshot()["go"])
	require.Equal(t, `Saved "go"`, h.lastToast())

	tag, query := h.m.form.values()
	require.Empty(t, tag, "form resets after save")
	require.Empty(t, query)
	require.Equal(t, focusList, h.m.focus)
}

func TestSave_MissingFieldsShowsDialog(t *testing.T) {
	h := newHarness(t, nil)

	calls := len(h.store.Calls())

	h.press("n")
	h.typeText("only a query")
	h.press("ctrl+s")

	require.NotNil(t, h.m.dialog)
	require.Equal(t, shared.DialogMissingFields, h.m.dialog.ID())
	require.Contains(t, dialogText(*h.m.dialog), shared.MissingFieldsMessage)
	require.Len(t, h.store.Calls(), calls, "nothing written")

	h.press("enter")
	require.Nil(t, h.m.dialog)
	_, query := h.m.form.values()
	require.Equal(t, "only a query", query, "input kept after acknowledging")
}

func TestSave_EmptyTagOnEnterFromTagField(t *testing.T) {
	h := newHarness(t, nil)

	h.press("n", "tab", "enter")

	require.NotNil(t, h.m.dialog)
	require.Equal(t, 3, h.reg.Len())
}

func TestEdit_UpdateKeepsPosition(t *testing.T) {
	h := newHarness(t, nil)

	h.press("j", "e")
	require.Equal(t, "news", h.m.Editing())
	tag, query := h.m.form.values()
	require.Equal(t, "news", tag)
	require.Equal(t, "golang release", query)

	h.m.form.query.SetValue("golang 1.25")
	h.press("ctrl+s")

	require.Equal(t, []string{"art", "news", "Sports"}, h.m.Tags())
	require.Equal(t, "golang 1.25", h.store.Snapshot()["news"])
	require.Equal(t, `Updated "news"`, h.lastToast())
	require.Empty(t, h.m.Editing())
}

func TestEdit_RenameDeletesOldTag(t *testing.T) {
	h := newHarness(t, nil)

	h.press("j", "e")
	h.m.form.tag.SetValue("headlines")
	h.press("ctrl+s")

	require.Equal(t, []string{"art", "headlines", "Sports"}, h.m.Tags())
	snap := h.store.Snapshot()
	require.NotContains(t, snap, "news")
	require.Equal(t, "golang release", snap["headlines"])
	require.Equal(t, `Renamed "news" to "headlines"`, h.lastToast())
}

func TestEdit_EscCancels(t *testing.T) {
	h := newHarness(t, nil)

	h.press("e", "esc")

	require.Empty(t, h.m.Editing())
	require.Equal(t, focusList, h.m.focus)
	tag, _ := h.m.form.values()
	require.Empty(t, tag)
}

func TestDelete_Confirmed(t *testing.T) {
	h := newHarness(t, nil)

	h.press("j", "d")
	require.NotNil(t, h.m.dialog)
	require.Equal(t, shared.DialogConfirmDelete, h.m.dialog.ID())
	require.Contains(t, dialogText(*h.m.dialog), shared.DeletePrompt("news"))
	require.Contains(t, ansi.Strip(h.m.View()), `"news"?`)

	h.press("tab", "enter")

	require.Nil(t, h.m.dialog)
	require.Equal(t, []string{"art", "Sports"}, h.m.Tags())
	require.NotContains(t, h.store.Snapshot(), "news")
	require.Equal(t, `Deleted "news"`, h.lastToast())
	require.Equal(t, "Sports", h.m.Selected(), "cursor stays at the same row")
}

func TestDelete_CancelKeepsSearch(t *testing.T) {
	h := newHarness(t, nil)

	h.press("d", "enter")

	require.Nil(t, h.m.dialog)
	require.Equal(t, 3, h.reg.Len())
}

func TestDelete_WithoutConfirmation(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.UI.ConfirmDelete = false })

	h.press("d")

	require.Nil(t, h.m.dialog)
	require.Equal(t, []string{"news", "Sports"}, h.m.Tags())
}

func TestDelete_ClearsEditOfDeletedTag(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.UI.ConfirmDelete = false })

	h.press("e")
	require.Equal(t, "art", h.m.Editing())
	h.press("esc")
	h.m.form = h.m.form.load("art", "impressionism")
	h.press("d")

	require.Empty(t, h.m.Editing())
}

func TestOpen_ComposesURL(t *testing.T) {
	h := newHarness(t, nil)

	h.press("j", "enter")

	require.Equal(t, []string{"https://twitter.com/search?q=golang%20release"}, h.opener.Opened())
}

func TestOpen_FailureToasts(t *testing.T) {
	h := newHarness(t, nil)
	h.opener.Err = os.ErrNotExist

	h.press("enter")

	require.Contains(t, h.lastToast(), `Could not open "art"`)
}

func TestShare_CopiesText(t *testing.T) {
	h := newHarness(t, nil)

	h.press("s")

	want := searchurl.NewShare(searchurl.DefaultShareSubject, searchurl.DefaultShareMessage,
		"https://twitter.com/search?q=impressionism").Text()
	require.Equal(t, []string{want}, h.clip.Copied())
	require.Equal(t, `Share text for "art" copied to clipboard`, h.lastToast())
}

func TestCopyURL(t *testing.T) {
	h := newHarness(t, nil)

	h.press("G", "y")

	require.Equal(t, []string{"https://twitter.com/search?q=world%20cup"}, h.clip.Copied())
}

func TestActionsMenu(t *testing.T) {
	h := newHarness(t, nil)

	h.press(".")
	require.NotNil(t, h.m.dialog)
	require.Equal(t, shared.DialogActions, h.m.dialog.ID())

	h.press("e")
	require.Nil(t, h.m.dialog)
	require.Equal(t, "art", h.m.Editing())
}

func TestActionsMenu_DeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t, nil)

	h.press(".", "d")

	require.NotNil(t, h.m.dialog)
	require.Equal(t, shared.DialogConfirmDelete, h.m.dialog.ID())
	require.Equal(t, "art", h.m.dialogTag)
}

func TestPersistenceFailure_LeavesListAndForm(t *testing.T) {
	h := newHarness(t, nil)
	h.store.FailOn("put", nil)

	h.press("n")
	h.typeText("q")
	h.press("tab")
	h.typeText("t")
	h.press("enter")

	require.Equal(t, []string{"art", "news", "Sports"}, h.m.Tags())
	require.Contains(t, h.lastToast(), `Could not save "t"`)
	tag, query := h.m.form.values()
	require.Equal(t, "t", tag)
	require.Equal(t, "q", query)
}

func TestStrictTags_DuplicateToast(t *testing.T) {
	store := testutil.NewMemoryStore(map[string]string{"news": "x"})
	reg, err := registry.Open(context.Background(), store, registry.WithStrictTags(true))
	require.NoError(t, err)
	cfg := config.Defaults()
	cfg.UI.ShowPreview = false

	h := &harness{t: t, reg: reg, store: store, clip: &shared.MockClipboard{}, opener: &shared.MockOpener{}}
	h.m = New(mode.Services{Registry: reg, Config: &cfg, Clipboard: h.clip, Opener: h.opener}).resize(100, 30)
	t.Cleanup(func() { _ = h.m.Close() })

	h.press("n")
	h.typeText("y")
	h.press("tab")
	h.typeText("NEWS")
	h.press("enter")

	require.Equal(t, `A search tagged "news" already exists`, h.lastToast())
	require.Equal(t, []string{"news"}, h.m.Tags())
}

func TestRegistryEvent_SelectsCreatedTag(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.reg.Save(context.Background(), "music", "jazz")
	require.NoError(t, err)
	h.send(pubsub.Event[registry.Change]{
		Type:    pubsub.CreatedEvent,
		Payload: registry.Change{Tag: "music", IndexChanged: true},
	})

	require.Equal(t, []string{"art", "music", "news", "Sports"}, h.m.Tags())
	require.Equal(t, "music", h.m.Selected())
}

func TestReload_PicksUpExternalWrites(t *testing.T) {
	h := newHarness(t, nil)
	h.store.Set("blog", "posts")

	h.send(ReloadMsg{})
	h.send(pubsub.Event[registry.Change]{Type: pubsub.ReloadedEvent, Payload: registry.Change{IndexChanged: true}})

	require.Equal(t, []string{"art", "blog", "news", "Sports"}, h.m.Tags())
	require.Equal(t, "art", h.m.Selected())
}

func TestReload_RefreshesPreview(t *testing.T) {
	store := testutil.NewMemoryStore(nil)
	testutil.NewBuilder(t, store).WithScenario().Build()
	reg, err := registry.Open(context.Background(), store)
	require.NoError(t, err)

	m := New(mode.Services{
		Registry:  reg,
		Previewer: markdown.NewPreviewer("dark", false),
	}).resize(120, 30)
	t.Cleanup(func() { _ = m.Close() })
	require.Contains(t, ansi.Strip(m.preview), "impressionism")

	store.Set("art", "cubism")
	changed, err := reg.Reload(context.Background())
	require.NoError(t, err)
	m, _ = m.update(reloadedMsg{changed: changed})

	require.Contains(t, ansi.Strip(m.preview), "cubism")
	require.NotContains(t, ansi.Strip(m.preview), "impressionism")
}

func TestNavigation_Clamps(t *testing.T) {
	h := newHarness(t, nil)

	h.press("k")
	require.Equal(t, "art", h.m.Selected())
	h.press("G", "j")
	require.Equal(t, "Sports", h.m.Selected())
	h.press("g")
	require.Equal(t, "art", h.m.Selected())
	h.send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, "news", h.m.Selected())
}

func TestScroll_KeepsCursorVisible(t *testing.T) {
	h := newHarness(t, nil)
	for _, tag := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8", "b9", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"} {
		_, err := h.reg.Save(context.Background(), tag, "q")
		require.NoError(t, err)
	}
	h.m = h.m.syncTags("")

	h.press("G")
	rows := h.m.listRows()
	require.Equal(t, len(h.m.Tags())-1, h.m.cursor)
	require.Equal(t, len(h.m.Tags())-rows, h.m.offset)
	require.Contains(t, ansi.Strip(h.m.View()), "Sports")
}

func TestQuit_OnlyFromList(t *testing.T) {
	h := newHarness(t, nil)

	h.press("n", "q")
	require.False(t, h.quit)
	_, query := h.m.form.values()
	require.Equal(t, "q", query)

	h.press("esc", "q")
	require.True(t, h.quit)
}

func TestView(t *testing.T) {
	h := newHarness(t, nil)

	view := ansi.Strip(h.m.View())
	require.Contains(t, view, "Tagged Searches")
	require.Contains(t, view, "3 saved searches")
	require.Contains(t, view, "New search")
	require.Contains(t, view, "> art")
	require.Contains(t, view, "impressionism")
	require.NotContains(t, view, "Preview")

	h.press("e")
	require.Contains(t, ansi.Strip(h.m.View()), `Edit "art"`)
}

func TestView_EmptyList(t *testing.T) {
	reg, err := registry.Open(context.Background(), testutil.NewMemoryStore(nil))
	require.NoError(t, err)
	m := New(mode.Services{Registry: reg}).resize(80, 20)
	t.Cleanup(func() { _ = m.Close() })

	require.Contains(t, ansi.Strip(m.View()), "No saved searches yet")
	require.Equal(t, "", m.Selected())
}

func TestView_Preview(t *testing.T) {
	store := testutil.NewMemoryStore(nil)
	testutil.NewBuilder(t, store).WithScenario().Build()
	reg, err := registry.Open(context.Background(), store)
	require.NoError(t, err)

	m := New(mode.Services{
		Registry:  reg,
		Previewer: markdown.NewPreviewer("dark", false),
	}).resize(120, 30)
	t.Cleanup(func() { _ = m.Close() })

	view := ansi.Strip(m.View())
	require.Contains(t, view, "Preview")
	require.Contains(t, ansi.Strip(m.preview), "impressionism")

	m, _ = m.update(keyMsg("p"))
	require.Empty(t, m.preview)
	require.NotContains(t, ansi.Strip(m.View()), "Preview")
}

func TestHelp_Toggle(t *testing.T) {
	h := newHarness(t, nil)

	short := h.m.listRows()
	h.press("?")
	require.True(t, h.m.help.ShowAll)
	require.Less(t, h.m.listRows(), short)
	require.Contains(t, ansi.Strip(h.m.View()), "first")
}
