package searches

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/tagsearch/internal/ui/styles"
)

// form holds the query and tag inputs. editing is the tag being edited,
// empty when the form creates a new search.
type form struct {
	query   textinput.Model
	tag     textinput.Model
	editing string
}

func newForm() form {
	query := textinput.New()
	query.Prompt = ""
	query.Placeholder = "search query"
	query.PlaceholderStyle = query.PlaceholderStyle.Foreground(styles.TextPlaceholderColor)

	tag := textinput.New()
	tag.Prompt = ""
	tag.Placeholder = "tag your query"
	tag.PlaceholderStyle = tag.PlaceholderStyle.Foreground(styles.TextPlaceholderColor)

	return form{query: query, tag: tag}
}

// values returns the raw input. Whitespace is kept: only emptiness is
// rejected.
func (f form) values() (tag, query string) {
	return f.tag.Value(), f.query.Value()
}

// reset clears both inputs and leaves edit mode.
func (f form) reset() form {
	f.query.Reset()
	f.tag.Reset()
	f.editing = ""
	return f
}

// load pre-fills the form for editing tag.
func (f form) load(tag, query string) form {
	f.query.SetValue(query)
	f.tag.SetValue(tag)
	f.editing = tag
	return f
}

// focus moves the cursor to the field for fc and blurs the other.
func (f form) focus(fc focus) (form, tea.Cmd) {
	f.query.Blur()
	f.tag.Blur()
	switch fc {
	case focusQuery:
		return f, f.query.Focus()
	case focusTag:
		return f, f.tag.Focus()
	}
	return f, nil
}

func (f form) update(fc focus, msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	switch fc {
	case focusQuery:
		f.query, cmd = f.query.Update(msg)
	case focusTag:
		f.tag, cmd = f.tag.Update(msg)
	}
	return f, cmd
}

func (f form) setWidth(w int) form {
	f.query.Width = max(w, 1)
	f.tag.Width = max(w, 1)
	return f
}
