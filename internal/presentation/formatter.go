package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatSearches formats a list of searches as JSON. An empty list is
// written as [] rather than null.
func (f *Formatter) FormatSearches(searches []SearchDTO) error {
	if searches == nil {
		searches = []SearchDTO{}
	}
	return f.encode(searches)
}

// FormatSearch formats a single search as JSON.
func (f *Formatter) FormatSearch(search SearchDTO) error {
	return f.encode(search)
}

// FormatSearchesText writes one aligned "tag  query" line per search.
func (f *Formatter) FormatSearchesText(searches []SearchDTO) error {
	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	for _, s := range searches {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", s.Tag, s.Query); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
