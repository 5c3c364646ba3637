// Package stats tracks the counters the translator exposes during a
// replay run and formats them for display at the end of the run.
package stats

import "fmt"

// Tracker holds the counters a Translator increments on every access, plus
// correct_memory_accesses, which only the replay runner knows how to set
// (it requires comparing against a validation trace).
type Tracker struct {
	AttemptedMemoryAccesses uint64
	CorrectMemoryAccesses   uint64
	TLBHits                 uint64
	PageHits                uint64
	TLBFlushes              uint64
}

// Faults returns the number of accesses that were neither a TLB hit nor a
// page-table hit, i.e. ones that required a full retrieve() from the
// backing store.
func (t Tracker) Faults() uint64 {
	return t.AttemptedMemoryAccesses - t.TLBHits - t.PageHits
}

// TLBHitRatio returns tlb_hits / attempted, or 0 if nothing was attempted.
func (t Tracker) TLBHitRatio() float64 {
	if t.AttemptedMemoryAccesses == 0 {
		return 0
	}
	return float64(t.TLBHits) / float64(t.AttemptedMemoryAccesses)
}

// PageHitRatio returns page_hits / attempted, or 0 if nothing was
// attempted.
func (t Tracker) PageHitRatio() float64 {
	if t.AttemptedMemoryAccesses == 0 {
		return 0
	}
	return float64(t.PageHits) / float64(t.AttemptedMemoryAccesses)
}

// String renders the final stats block: 8-digit zero-padded counters and
// 6-fraction-digit ratios.
func (t Tracker) String() string {
	return fmt.Sprintf(`
stats tracked
---------------------------------
attempted_memory_accesses: %08d
correct_memory_accesses:   %08d
tlb_hits:                   %08d
page_hits:                  %08d
tlb_flushes:                %08d
faults:                     %08d

tlb hit ratio:              %.6f
page hit ratio:             %.6f
`,
		t.AttemptedMemoryAccesses,
		t.CorrectMemoryAccesses,
		t.TLBHits,
		t.PageHits,
		t.TLBFlushes,
		t.Faults(),
		t.TLBHitRatio(),
		t.PageHitRatio(),
	)
}
