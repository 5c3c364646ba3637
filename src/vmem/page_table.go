package vmem

// Page is a page table entry: the frame currently holding the page's image
// (meaningful only when Valid) and whether that frame still holds it.
type Page struct {
	FrameIndex int
	Valid      bool
}

// PageTable is a sparse page number -> Page mapping. Entries are created on
// first demand and are never removed, only toggled invalid when their
// frame is reclaimed by another page's fault.
type PageTable struct {
	entries map[uint32]Page
}

// NewPageTable builds an empty page table.
func NewPageTable() *PageTable {
	return &PageTable{entries: make(map[uint32]Page)}
}

// Find returns the entry for page and whether it is present at all
// (present does not imply Valid).
func (t *PageTable) Find(page uint32) (Page, bool) {
	p, ok := t.entries[page]
	return p, ok
}

// Insert replaces (or creates) the entry for page.
func (t *PageTable) Insert(page uint32, entry Page) {
	t.entries[page] = entry
}

// Invalidate marks page's entry invalid, leaving its frame index in place
// for diagnostic purposes. No-op if page has no entry.
func (t *PageTable) Invalidate(page uint32) {
	if p, ok := t.entries[page]; ok {
		p.Valid = false
		t.entries[page] = p
	}
}
