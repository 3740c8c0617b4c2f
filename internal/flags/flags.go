// Package flags provides feature flags read from the `flags` section of the
// config file. Unknown flags are disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/tagsearch/internal/log"
)

const (
	// FlagStrictTags rejects saving a new tag that differs from an existing
	// tag only by letter case ("News" vs "news").
	FlagStrictTags = "strict-tags"

	// FlagPreview renders the selected search as markdown in a side pane.
	FlagPreview = "preview"
)

// Registry holds feature flag state loaded from configuration.
// Flags are read-only after initialization.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map.
// A nil map yields an empty registry with every flag disabled.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags), "enabled", r.EnabledNames())
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}

// EnabledNames returns the sorted names of enabled flags.
func (r *Registry) EnabledNames() []string {
	if r == nil {
		return nil
	}
	var names []string
	for name, on := range r.flags {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
