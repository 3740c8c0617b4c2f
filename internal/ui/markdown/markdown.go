// Package markdown renders saved searches as styled terminal markdown for
// the preview pane.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with tagsearch-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a markdown renderer with the given width and style.
// style should be "dark" or "light". Defaults to "dark" if empty.
// WithAutoStyle is avoided because its terminal background query leaks
// escape sequences into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the glamour style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// Document builds the markdown shown for a saved search.
func Document(tag, query, url string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", escapeInline(tag))
	sb.WriteString("```\n")
	sb.WriteString(strings.ReplaceAll(query, "```", "` ` `"))
	sb.WriteString("\n```\n")
	if url != "" {
		fmt.Fprintf(&sb, "\n%s\n", url)
	}
	return sb.String()
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}
