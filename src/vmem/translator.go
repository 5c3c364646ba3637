package vmem

// AccessResult is the outcome of translating one virtual address: the
// address itself, the physical address it resolved to, and the signed byte
// value read from that location. Equality ignores PhysicalAddress and
// compares only VirtualAddress and Value.
type AccessResult struct {
	VirtualAddress  uint32
	PhysicalAddress uint32
	Value           int8
}

// Equal compares two AccessResults ignoring PhysicalAddress.
func (r AccessResult) Equal(other AccessResult) bool {
	return r.VirtualAddress == other.VirtualAddress && r.Value == other.Value
}

// Translator orchestrates the TLB, page table, frame pool, and backing
// store for each access. It exclusively owns all four for the lifetime of
// a run; nothing outside the translator mutates them.
type Translator struct {
	tlb       *TLB
	pages     *PageTable
	frames    *FramePool
	store     *BackingStore
	frameSize int

	Attempted  uint64
	TLBHits    uint64
	PageHits   uint64
	TLBFlushes uint64
}

// NewTranslator builds a translator over the given TLB capacity, frame
// count, frame size, and backing store.
func NewTranslator(tlbCapacity, frameCount, frameSize int, store *BackingStore) *Translator {
	return &Translator{
		tlb:       NewTLB(tlbCapacity),
		pages:     NewPageTable(),
		frames:    NewFramePool(frameCount, frameSize),
		store:     store,
		frameSize: frameSize,
	}
}

// Access translates vaddr to a physical address and byte value, updating
// the TLB, page table, and frame pool LRU order as required by the three
// caches' coherence rules.
func (t *Translator) Access(vaddr uint32) (AccessResult, error) {
	t.Attempted++
	addr := DecodeAddress(vaddr)
	page := uint32(addr.Page)

	frameIndex, ok := t.tlb.Find(page)
	if ok {
		t.TLBHits++
	} else {
		entry, present := t.pages.Find(page)
		if present && entry.Valid {
			t.PageHits++
			frameIndex = entry.FrameIndex
		} else {
			var err error
			frameIndex, err = t.retrieve(page)
			if err != nil {
				return AccessResult{}, err
			}
		}
		t.tlb.Cache(page, frameIndex)
	}

	t.frames.Reference(frameIndex)

	physical := uint32(frameIndex)*uint32(t.frameSize) + uint32(addr.Offset)
	value := int8(t.frames.Byte(frameIndex, addr.Offset))

	return AccessResult{
		VirtualAddress:  vaddr,
		PhysicalAddress: physical,
		Value:           value,
	}, nil
}

// retrieve loads page into a frame, evicting a victim and invalidating its
// previous owner's page table entry and any stale TLB mapping for it.
// retrieve is the single writer for all three caches during eviction — the
// frame pool and TLB never invalidate each other via callbacks.
func (t *Translator) retrieve(page uint32) (int, error) {
	frameIndex := t.frames.Allocate()

	if prevOwner, hadOwner := t.frames.Owner(frameIndex); hadOwner {
		t.pages.Invalidate(prevOwner)
		if t.tlb.Flush(prevOwner) {
			t.TLBFlushes++
		}
	}

	t.frames.SetOwner(frameIndex, page)
	if err := t.store.ReadPage(page, t.frames.Buffer(frameIndex)); err != nil {
		return 0, err
	}

	t.pages.Insert(page, Page{FrameIndex: frameIndex, Valid: true})
	return frameIndex, nil
}
