// Package searchurl builds the external search URL for a saved query and the
// text used when sharing it.
package searchurl

import (
	"fmt"
	"strings"
)

// DefaultPrefix is the search endpoint queries are appended to.
const DefaultPrefix = "https://twitter.com/search?q="

const (
	// DefaultShareSubject is the subject line of a shared search.
	DefaultShareSubject = "Tagged search"
	// DefaultShareMessage wraps the search URL; %s is replaced by the URL.
	DefaultShareMessage = "Check out the results of this search: %s"
)

const upperhex = "0123456789ABCDEF"

// Compose percent-encodes query as UTF-8 and appends it to prefix. The prefix
// is used verbatim.
func Compose(prefix, query string) string {
	return prefix + Encode(query)
}

// Encode percent-encodes every byte outside the unreserved set
// A-Z a-z 0-9 and _-!.~'()*. Spaces become %20, never '+'.
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '_', '-', '!', '.', '~', '\'', '(', ')', '*':
		return true
	}
	return false
}

// Share is the content handed to a share target.
type Share struct {
	Subject string
	Message string
	URL     string
}

// Text renders the share as a single block: subject line, blank line, message.
func (s Share) Text() string {
	if s.Subject == "" {
		return s.Message
	}
	return s.Subject + "\n\n" + s.Message
}

// NewShare formats message with url. A message without a %s verb gets the
// URL appended after a space.
func NewShare(subject, message, url string) Share {
	var body string
	switch strings.Count(message, "%s") {
	case 0:
		body = strings.TrimSpace(message + " " + url)
	default:
		body = strings.Replace(message, "%s", url, 1)
	}
	return Share{Subject: subject, Message: body, URL: url}
}

// ValidateMessage checks that a share message template has exactly one %s.
func ValidateMessage(message string) error {
	if c := strings.Count(message, "%s"); c != 1 {
		return fmt.Errorf("share message must contain exactly one %%s, found %d", c)
	}
	return nil
}
