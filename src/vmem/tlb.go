package vmem

// TLB is a bounded ordered mapping from page number to frame index.
// Lookups never reorder; only Cache (insertion) reorders, and eviction on
// insert always drops the oldest-inserted entry.
type TLB struct {
	capacity int
	order    []uint32 // oldest at front, newest at back
	entries  map[uint32]int
}

// NewTLB builds a TLB bounded to capacity entries. capacity must be > 0;
// that constraint is enforced by configuration validation, not here.
func NewTLB(capacity int) *TLB {
	return &TLB{
		capacity: capacity,
		order:    make([]uint32, 0, capacity),
		entries:  make(map[uint32]int, capacity),
	}
}

// Find looks up page without altering TLB order. The second return value
// reports a hit.
func (t *TLB) Find(page uint32) (int, bool) {
	f, ok := t.entries[page]
	return f, ok
}

// Cache installs page -> frame. If page is already present, it is re-seated
// at the back without growing the TLB. Otherwise, if the TLB is at
// capacity, the oldest-inserted entry is evicted first.
func (t *TLB) Cache(page uint32, frame int) {
	if _, ok := t.entries[page]; ok {
		t.removeFromOrder(page)
	} else if len(t.entries) >= t.capacity {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.entries, oldest)
	}
	t.entries[page] = frame
	t.order = append(t.order, page)
}

// Flush removes page's entry if present, reporting whether a removal
// happened.
func (t *TLB) Flush(page uint32) bool {
	if _, ok := t.entries[page]; !ok {
		return false
	}
	delete(t.entries, page)
	t.removeFromOrder(page)
	return true
}

// Len returns the number of entries currently cached.
func (t *TLB) Len() int {
	return len(t.entries)
}

func (t *TLB) removeFromOrder(page uint32) {
	for i, p := range t.order {
		if p == page {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}
