package models

// DefaultHistoryLimit is used when a non-positive capacity is requested.
const DefaultHistoryLimit = 20

// History is a fixed-capacity undo stack of image snapshots backed by a ring
// buffer. When full, pushing evicts the oldest snapshot.
type History struct {
	entries []*ImageData
	head    int // index of the oldest entry
	size    int
}

// NewHistory creates an empty history holding at most capacity snapshots
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryLimit
	}
	return &History{
		entries: make([]*ImageData, capacity),
	}
}

// Push appends a snapshot as the most recent entry. If the history was full
// the evicted oldest snapshot is returned, otherwise nil.
func (h *History) Push(img *ImageData) *ImageData {
	capacity := len(h.entries)

	if h.size == capacity {
		evicted := h.entries[h.head]
		h.entries[h.head] = img
		h.head = (h.head + 1) % capacity
		return evicted
	}

	h.entries[(h.head+h.size)%capacity] = img
	h.size++
	return nil
}

// Pop removes and returns the most recent snapshot
func (h *History) Pop() (*ImageData, bool) {
	if h.size == 0 {
		return nil, false
	}

	idx := (h.head + h.size - 1) % len(h.entries)
	img := h.entries[idx]
	h.entries[idx] = nil
	h.size--
	return img, true
}

// restoreOldest puts back a snapshot that Push evicted. Only valid when the
// history has a free slot, i.e. right after the entry that caused the
// eviction was popped again.
func (h *History) restoreOldest(img *ImageData) {
	if img == nil || h.size == len(h.entries) {
		return
	}
	h.head = (h.head - 1 + len(h.entries)) % len(h.entries)
	h.entries[h.head] = img
	h.size++
}

// Len returns the number of stored snapshots
func (h *History) Len() int {
	return h.size
}

// Cap returns the maximum number of stored snapshots
func (h *History) Cap() int {
	return len(h.entries)
}

// Clear drops every snapshot
func (h *History) Clear() {
	for i := range h.entries {
		h.entries[i] = nil
	}
	h.head = 0
	h.size = 0
}

// snapshots returns the stored snapshots, oldest first
func (h *History) snapshots() []*ImageData {
	out := make([]*ImageData, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.entries[(h.head+i)%len(h.entries)]
	}
	return out
}

// MemoryUsage sums the pixel buffers held by the history
func (h *History) MemoryUsage() int64 {
	var total int64
	for _, img := range h.snapshots() {
		total += img.MemoryUsage()
	}
	return total
}
