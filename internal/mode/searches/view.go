package searches

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tagsearch/internal/keys"
	"github.com/zjrosen/tagsearch/internal/ui/styles"
)

const (
	zoneQueryInput = "searches-query-input"
	zoneTagInput   = "searches-tag-input"

	formPanelHeight = 4
	labelWidth      = 7
	minPreviewWidth = 80
)

func rowZoneID(i int) string {
	return fmt.Sprintf("searches-row-%d", i)
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Padding(0, 1)

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	body := m.renderList()
	if m.previewVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderPreview())
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderForm(),
		body,
		m.helpView(),
	)

	if m.dialog != nil {
		view = m.dialog.Overlay(view)
	}
	return view
}

func (m Model) renderHeader() string {
	header := titleStyle.Render("Tagged Searches")
	if m.showCounts {
		header += styles.MutedStyle.Render(styles.FormatSearchCount(len(m.tags)))
	}
	return styles.Truncate(header, m.width)
}

func (m Model) renderForm() string {
	label := lipgloss.NewStyle().Width(labelWidth).Foreground(styles.TextSecondaryColor)
	content := label.Render("Query") + zone.Mark(zoneQueryInput, m.form.query.View()) + "\n" +
		label.Render("Tag") + zone.Mark(zoneTagInput, m.form.tag.View())

	title := "New search"
	if m.form.editing != "" {
		title = fmt.Sprintf("Edit %q", m.form.editing)
	}
	return styles.RenderPanel(content, title, m.width, formPanelHeight, m.focus != focusList)
}

func (m Model) renderList() string {
	width := m.listWidth()
	inner := width - 2
	rows := m.listRows()

	var lines []string
	if len(m.tags) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No saved searches yet. Press n to add one."))
	}
	end := min(m.offset+rows, len(m.tags))
	for i := m.offset; i < end; i++ {
		lines = append(lines, zone.Mark(rowZoneID(i), m.renderRow(i, inner)))
	}

	return styles.RenderPanel(strings.Join(lines, "\n"), "Saved searches", width, rows+2, m.focus == focusList)
}

func (m Model) renderRow(i, width int) string {
	tag := m.tags[i]
	prefix := "  "
	tagStyle := styles.TagStyle
	if i == m.cursor {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
		tagStyle = styles.TagSelectedStyle
	}

	avail := width - 2
	tagText := styles.Truncate(tag, avail)
	line := prefix + tagStyle.Render(tagText)

	// Without a preview pane the query trails the tag when it fits.
	if !m.previewVisible() {
		if rest := avail - lipgloss.Width(tagText) - 2; rest > 3 {
			if query, ok := m.services.Registry.GetQuery(tag); ok {
				line += "  " + styles.QueryStyle.Render(styles.Truncate(query, rest))
			}
		}
	}
	return line
}

func (m Model) renderPreview() string {
	return styles.RenderPanel(m.preview, "Preview", m.previewWidth(), m.listRows()+2, false)
}

func (m Model) helpView() string {
	if m.focus != focusList && m.dialog == nil {
		return styles.HelpStyle.Render(m.help.ShortHelpView(keys.Searches.FormHelp()))
	}
	if m.help.ShowAll {
		groups := append(keys.Searches.FullHelp(), keys.App.FullHelp()...)
		return styles.HelpStyle.Render(m.help.FullHelpView(groups))
	}
	return styles.HelpStyle.Render(m.help.ShortHelpView(append(keys.Searches.ShortHelp(), keys.App.ShortHelp()...)))
}

// listRows is the number of tag rows that fit.
func (m Model) listRows() int {
	if m.height == 0 {
		return 0
	}
	used := 1 + formPanelHeight + lipgloss.Height(m.helpView()) + 2
	return max(m.height-used, 1)
}

func (m Model) previewVisible() bool {
	return m.showPreview && m.width >= minPreviewWidth
}

func (m Model) listWidth() int {
	if m.previewVisible() {
		return m.width * 2 / 5
	}
	return m.width
}

func (m Model) previewWidth() int {
	return m.width - m.listWidth()
}

func (m Model) formInputWidth() int {
	return m.width - 2 - labelWidth - 1
}
