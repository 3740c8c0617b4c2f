package shared

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// Opener launches a URL in the user's browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// SystemOpener starts the platform URL handler and does not wait for the
// browser to exit.
type SystemOpener struct{}

// Open launches url.
func (SystemOpener) Open(ctx context.Context, url string) error {
	name, args := openCommand(runtime.GOOS, url)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// openCommand returns the handler invocation for goos.
func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// MockOpener records opened URLs for tests.
type MockOpener struct {
	mu     sync.Mutex
	Err    error
	opened []string
}

// Open records url, or returns Err when set.
func (o *MockOpener) Open(_ context.Context, url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.opened = append(o.opened, url)
	return nil
}

// Opened returns every URL opened so far.
func (o *MockOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}
