package searches

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/searches/domain"
	"github.com/zjrosen/tagsearch/internal/searchurl"
)

// Result messages from the commands below. Registry and port calls run
// off the update loop and report back through these.
type (
	savedMsg struct {
		tag         string
		created     bool
		renamedFrom string
		err         error
	}
	deletedMsg struct {
		tag string
		err error
	}
	openedMsg struct {
		tag string
		err error
	}
	sharedMsg struct {
		tag string
		err error
	}
	copiedMsg struct {
		tag string
		err error
	}
	reloadedMsg struct {
		changed bool
		err     error
	}
)

// ReloadMsg asks the screen to re-read the store, e.g. after the watcher
// saw another process write to it.
type ReloadMsg struct{}

// saveCmd saves query under tag. When original names a different tag the
// search was renamed: the new tag is written first and the old one removed
// after, so a failure never loses the search.
func (m Model) saveCmd(tag, query, original string) tea.Cmd {
	reg := m.services.Registry
	ctx := m.ctx
	return func() tea.Msg {
		res, err := reg.Save(ctx, tag, query)
		if err != nil {
			return savedMsg{tag: tag, err: err}
		}
		msg := savedMsg{tag: tag, created: res.Created}
		if original != "" && original != tag {
			if err := reg.Delete(ctx, original); err != nil && !errors.Is(err, domain.ErrNotFound) {
				msg.err = fmt.Errorf("saved %q but could not remove %q: %w", tag, original, err)
				return msg
			}
			msg.renamedFrom = original
		}
		return msg
	}
}

func (m Model) deleteCmd(tag string) tea.Cmd {
	reg := m.services.Registry
	ctx := m.ctx
	return func() tea.Msg {
		return deletedMsg{tag: tag, err: reg.Delete(ctx, tag)}
	}
}

// urlFor composes the results URL for a saved tag.
func (m Model) urlFor(tag string) (string, error) {
	query, ok := m.services.Registry.GetQuery(tag)
	if !ok {
		return "", &domain.NotFoundError{Tag: tag}
	}
	return searchurl.Compose(m.prefix, query), nil
}

func (m Model) openCmd(tag string) tea.Cmd {
	url, err := m.urlFor(tag)
	opener := m.services.Opener
	ctx := m.ctx
	return func() tea.Msg {
		if err != nil {
			return openedMsg{tag: tag, err: err}
		}
		log.Info(log.CatUI, "Opening search results", "tag", tag, "url", url)
		return openedMsg{tag: tag, err: opener.Open(ctx, url)}
	}
}

func (m Model) shareCmd(tag string) tea.Cmd {
	url, err := m.urlFor(tag)
	share := searchurl.NewShare(m.shareSubject, m.shareMessage, url)
	clip := m.services.Clipboard
	return func() tea.Msg {
		if err != nil {
			return sharedMsg{tag: tag, err: err}
		}
		return sharedMsg{tag: tag, err: clip.Copy(share.Text())}
	}
}

func (m Model) copyURLCmd(tag string) tea.Cmd {
	url, err := m.urlFor(tag)
	clip := m.services.Clipboard
	return func() tea.Msg {
		if err != nil {
			return copiedMsg{tag: tag, err: err}
		}
		return copiedMsg{tag: tag, err: clip.Copy(url)}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	reg := m.services.Registry
	ctx := m.ctx
	return func() tea.Msg {
		changed, err := reg.Reload(ctx)
		return reloadedMsg{changed: changed, err: err}
	}
}

// errorText is the user-facing text for a failed operation on tag.
func errorText(action, tag string, err error) string {
	var dup *domain.DuplicateTagError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("Search %q no longer exists", tag)
	case errors.As(err, &dup):
		return fmt.Sprintf("A search tagged %q already exists", dup.Existing)
	case errors.Is(err, domain.ErrInvalidInput):
		return "Enter a search query and a tag"
	default:
		return fmt.Sprintf("Could not %s %q: %v", action, tag, err)
	}
}
