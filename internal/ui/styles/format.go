package styles

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// Truncate shortens s to maxWidth cells, ending in an ellipsis when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// Wrap word-wraps s at width cells.
func Wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	return wordwrap.String(s, width)
}

// FormatSearchCount returns "1 saved search" or "N saved searches".
func FormatSearchCount(n int) string {
	if n == 1 {
		return "1 saved search"
	}
	return fmt.Sprintf("%d saved searches", n)
}
