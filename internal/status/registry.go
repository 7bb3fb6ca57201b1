// Package status holds the status-to-color mapping used to badge task and
// client statuses. The registry is an explicitly constructed object loaded
// once at startup; color lookups never fail and never touch the network.
package status

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/airtable"
	"taskboard/internal/logging"
)

// DefaultColor is the gray returned for any status without a configured
// color, and for every status while the registry is not yet loaded.
const DefaultColor = "#A0AEC0"

// Registry maps status names to hex colors. Lookups are case-insensitive.
type Registry struct {
	mu     sync.RWMutex
	colors map[string]string
	loaded bool
}

// NewRegistry returns an empty, not-yet-loaded registry.
func NewRegistry() *Registry {
	return &Registry{colors: make(map[string]string)}
}

// Load fetches the color configuration once. A failed load is not fatal:
// the registry stays empty and every lookup falls back to the default
// gray, so views render with or without the config table.
func (r *Registry) Load(ctx context.Context, store airtable.Store) error {
	colors, err := store.FetchStatusColors(ctx)
	if err != nil {
		logging.Warn("status color load failed, using defaults", "error", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors = make(map[string]string, len(colors))
	for status, hex := range colors {
		r.colors[strings.ToLower(status)] = airtable.NormalizeHex(hex)
	}
	r.loaded = true
	return nil
}

// Loaded reports whether a load has completed successfully.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// ColorFor returns the hex color for a status, or the default gray when
// the status is unconfigured or the registry has not loaded.
func (r *Registry) ColorFor(status string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if hex, ok := r.colors[strings.ToLower(status)]; ok {
		return hex
	}
	return DefaultColor
}

// SetColor overrides one status color for this session only. Edits are
// never written back to the remote store.
func (r *Registry) SetColor(status, hex string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors[strings.ToLower(status)] = airtable.NormalizeHex(hex)
}

// All returns the configured mappings with their original lookup keys.
func (r *Registry) All() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.colors))
	for status, hex := range r.colors {
		out[status] = hex
	}
	return out
}

// Style returns a lipgloss badge style colored for the status.
func (r *Registry) Style(status string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.ColorFor(status))).
		Bold(true)
}
