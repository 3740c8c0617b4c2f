// Package config provides configuration types and defaults for tagsearch.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/searchurl"
	"github.com/zjrosen/tagsearch/internal/tracing"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendTOML   = "toml"
)

// Config holds all configuration options for tagsearch.
type Config struct {
	Store       StoreConfig     `mapstructure:"store"`
	Search      SearchConfig    `mapstructure:"search"`
	AutoRefresh bool            `mapstructure:"auto_refresh"`
	UI          UIConfig        `mapstructure:"ui"`
	Tracing     tracing.Config  `mapstructure:"tracing"`
	Flags       map[string]bool `mapstructure:"flags"`
}

// StoreConfig selects where saved searches are persisted.
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // "sqlite" (default), "bolt" or "toml"
	Path    string `mapstructure:"path"`    // empty = ~/.config/tagsearch/searches.<ext>
}

// SearchConfig controls URL composition and sharing.
type SearchConfig struct {
	URL          string `mapstructure:"url"`           // prefix the encoded query is appended to
	ShareSubject string `mapstructure:"share_subject"` // first line of shared text
	ShareMessage string `mapstructure:"share_message"` // must contain one %s for the URL
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowCounts    bool   `mapstructure:"show_counts"`    // Show search count in the list title
	ShowPreview   bool   `mapstructure:"show_preview"`   // Render the selected query in a side pane
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	ConfirmDelete bool   `mapstructure:"confirm_delete"` // Ask before deleting a search
}

// ResolvedPath returns Path, or the default file for the backend.
func (s StoreConfig) ResolvedPath() string {
	if s.Path != "" {
		return s.Path
	}
	return DefaultStorePath(s.Backend)
}

// DefaultStorePath returns ~/.config/tagsearch/searches.{db,bolt,toml}.
func DefaultStorePath(backend string) string {
	name := "searches.db"
	switch backend {
	case BackendBolt:
		name = "searches.bolt"
	case BackendTOML:
		name = "searches.toml"
	}
	return filepath.Join(configDir(), name)
}

// DefaultTracesFilePath returns ~/.config/tagsearch/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	return filepath.Join(configDir(), "traces", "traces.jsonl")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tagsearch"
	}
	return filepath.Join(home, ".config", "tagsearch")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendSQLite,
		},
		Search: SearchConfig{
			URL:          searchurl.DefaultPrefix,
			ShareSubject: searchurl.DefaultShareSubject,
			ShareMessage: searchurl.DefaultShareMessage,
		},
		AutoRefresh: true,
		UI: UIConfig{
			ShowCounts:    true,
			ShowPreview:   true,
			MarkdownStyle: "dark",
			ConfirmDelete: true,
		},
		Tracing: tracing.DefaultConfig(),
		Flags:   map[string]bool{},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateStore(c.Store); err != nil {
		return err
	}
	if err := ValidateSearch(c.Search); err != nil {
		return err
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateStore checks the backend name.
func ValidateStore(s StoreConfig) error {
	switch s.Backend {
	case BackendSQLite, BackendBolt, BackendTOML:
		return nil
	default:
		return fmt.Errorf("store.backend must be \"sqlite\", \"bolt\", or \"toml\", got %q", s.Backend)
	}
}

// ValidateSearch checks the URL prefix and share message.
func ValidateSearch(s SearchConfig) error {
	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("search.url is not a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("search.url must be an absolute http(s) URL, got %q", s.URL)
	}
	if err := searchurl.ValidateMessage(s.ShareMessage); err != nil {
		return fmt.Errorf("search.share_message: %w", err)
	}
	return nil
}

// ValidateTracing checks tracing configuration. Path requirements apply only
// when tracing is enabled.
func ValidateTracing(t tracing.Config) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.Enabled && t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# tagsearch configuration

# Where saved searches are stored
store:
  backend: sqlite          # "sqlite" (default), "bolt", or "toml"
  # path: ~/.config/tagsearch/searches.db

# Search and share settings
search:
  url: "https://twitter.com/search?q="   # the encoded query is appended to this
  share_subject: "Tagged search"
  share_message: "Check out the results of this search: %s"

# Reload the list when another process changes the store
auto_refresh: true

# UI settings
ui:
  show_counts: true        # Show the number of saved searches in the title
  show_preview: true       # Show the selected query in a side pane
  markdown_style: dark     # Preview style: "dark" (default) or "light"
  confirm_delete: true     # Ask before deleting a search

# Tracing of store operations (OpenTelemetry)
# tracing:
#   enabled: true
#   exporter: file         # "none", "file", "stdout", or "otlp"
#   file_path: ~/.config/tagsearch/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Feature flags
flags:
  strict-tags: false       # Reject tags that differ from an existing tag only by case
`
}

// WriteDefaultConfig creates a config file at configPath from the template.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
