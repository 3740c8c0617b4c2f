// Package shared provides collaborators and dialog builders used by mode
// controllers.
package shared

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard implements Clipboard using the system clipboard.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardAvailable reports whether a system clipboard tool was found.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}

// MockClipboard records copied text for tests.
type MockClipboard struct {
	mu     sync.Mutex
	Err    error
	copied []string
}

// Copy records text, or returns Err when set.
func (c *MockClipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.copied = append(c.copied, text)
	return nil
}

// Copied returns everything copied so far.
func (c *MockClipboard) Copied() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.copied...)
}
