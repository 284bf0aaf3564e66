package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is a captured log record flattened to its attributes.
type LogEntry map[string]any

// TestSlogHandler is a memory-backed slog.Handler for asserting on log output.
// Attributes added with WithAttrs are kept on every entry.
type TestSlogHandler struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	attrs   []slog.Attr
}

// NewTestSlogHandler creates a new memory-backed slog handler.
func NewTestSlogHandler() *TestSlogHandler {
	return &TestSlogHandler{
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
	}
}

// Enabled satisfies slog.Handler interface.
func (h *TestSlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle satisfies slog.Handler interface.
func (h *TestSlogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{
		"level":   r.Level.String(),
		"message": r.Message,
	}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.entries = append(*h.entries, entry)
	return nil
}

// WithAttrs satisfies slog.Handler interface.
func (h *TestSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TestSlogHandler{mu: h.mu, entries: h.entries, attrs: merged}
}

// WithGroup satisfies slog.Handler interface. Groups are flattened.
func (h *TestSlogHandler) WithGroup(string) slog.Handler {
	return h
}

// Entries returns all captured log entries.
func (h *TestSlogHandler) Entries() []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]LogEntry, len(*h.entries))
	copy(result, *h.entries)
	return result
}

// EntriesWithMessage returns the captured entries whose message is msg.
func (h *TestSlogHandler) EntriesWithMessage(msg string) []LogEntry {
	var out []LogEntry
	for _, e := range h.Entries() {
		if e["message"] == msg {
			out = append(out, e)
		}
	}
	return out
}
