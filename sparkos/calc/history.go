package calc

// HistoryCapacity is the number of entries a History keeps.
const HistoryCapacity = 5

// History is a bounded, most-recent-first log of "expr = result" lines.
type History struct {
	entries []string
	max     int
}

// NewHistory returns a history holding at most capacity entries
// (HistoryCapacity if capacity <= 0).
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &History{max: capacity}
}

// Record inserts entry at the front, evicting the oldest entry once the
// history is full.
func (h *History) Record(entry string) {
	if h == nil {
		return
	}
	h.entries = append(h.entries, "")
	copy(h.entries[1:], h.entries)
	h.entries[0] = entry
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

// Clear drops every entry.
func (h *History) Clear() {
	if h == nil {
		return
	}
	h.entries = h.entries[:0]
}

// Entries returns a copy, most recent first.
func (h *History) Entries() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}
