package viewparams

import (
	"net/url"
	"sync"
)

// MemoryHistory is an in-process History: a stack of URL query values with a
// cursor. Push appends an entry, Replace overwrites the current one. It backs
// the binder when no browser is on the other end (server mode, tests).
type MemoryHistory struct {
	mu      sync.Mutex
	entries []url.Values
	cursor  int
}

// NewMemoryHistory returns a history seeded with a single empty entry.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{entries: []url.Values{{}}}
}

// Push drops any forward entries and appends a new one.
func (h *MemoryHistory) Push(values url.Values) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.cursor+1], cloneValues(values))
	h.cursor = len(h.entries) - 1
}

// Replace overwrites the current entry in place.
func (h *MemoryHistory) Replace(values url.Values) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.cursor] = cloneValues(values)
}

// Back moves the cursor one entry back and returns the values there.
// The second return is false when already at the oldest entry.
func (h *MemoryHistory) Back() (url.Values, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return cloneValues(h.entries[h.cursor]), true
}

// Current returns the values at the cursor.
func (h *MemoryHistory) Current() url.Values {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneValues(h.entries[h.cursor])
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
