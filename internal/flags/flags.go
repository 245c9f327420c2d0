// Package flags provides feature flag support for controlled feature rollout.
// Flags are read-only after initialization and provide safe defaults for
// unknown flags.
package flags

import (
	"maps"

	"moodlog/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagReportCache controls whether report statistics are memoized by
	// input key. When disabled, every report request recomputes.
	FlagReportCache = "report-cache"

	// FlagDBWatch controls whether the database file watcher runs to
	// invalidate memoized reports on external writes.
	FlagDBWatch = "db-watch"
)

// Registry holds feature flag state loaded from configuration.
// Flags are read-only after initialization.
type Registry struct {
	flags map[string]bool
}

// defaults applied when the config carries no value for a flag.
var defaults = map[string]bool{
	FlagReportCache: true,
	FlagDBWatch:     true,
}

// New creates a Registry from a config map layered over the defaults.
func New(flags map[string]bool) *Registry {
	merged := maps.Clone(defaults)
	for name, value := range flags {
		merged[name] = value
	}
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged))
	return r
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags and on a nil registry (safe defaults).
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return defaults[name]
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags (for debugging/logging).
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
