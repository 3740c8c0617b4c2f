package shared

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tagsearch/internal/ui/modal"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{"https://x.test"}},
		{"linux", "xdg-open", []string{"https://x.test"}},
		{"freebsd", "xdg-open", []string{"https://x.test"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://x.test"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, "https://x.test")
			require.Equal(t, tt.name, name)
			require.Equal(t, tt.args, args)
		})
	}
}

func TestMockOpener(t *testing.T) {
	o := &MockOpener{}
	require.NoError(t, o.Open(context.Background(), "https://a"))
	require.Equal(t, []string{"https://a"}, o.Opened())

	o.Err = errors.New("no browser")
	require.Error(t, o.Open(context.Background(), "https://b"))
	require.Len(t, o.Opened(), 1)
}

func TestMockClipboard(t *testing.T) {
	c := &MockClipboard{}
	require.NoError(t, c.Copy("one"))
	c.Err = errors.New("no clipboard")
	require.Error(t, c.Copy("two"))
	require.Equal(t, []string{"one"}, c.Copied())
}

func TestDeletePrompt(t *testing.T) {
	require.Equal(t, `Are you sure you want to delete the search "news"?`, DeletePrompt("news"))
}

func TestDialogs(t *testing.T) {
	require.Contains(t, ansi.Strip(MissingFieldsDialog().View()), MissingFieldsMessage)
	require.Equal(t, DialogMissingFields, MissingFieldsDialog().ID())

	confirm := ConfirmDeleteDialog("art")
	require.Equal(t, DialogConfirmDelete, confirm.ID())
	require.Equal(t, ButtonCancel, confirm.Focused())

	actions := ActionsDialog("art")
	require.Equal(t, ButtonShare, actions.Focused())
	_, cmd := actions.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.Equal(t, modal.ChoiceMsg{DialogID: DialogActions, ButtonID: ButtonDelete}, cmd())
}
