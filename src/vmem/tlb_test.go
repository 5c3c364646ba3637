package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTLBFindMiss(t *testing.T) {
	tlb := NewTLB(2)
	_, ok := tlb.Find(1)
	assert.False(t, ok)
}

func TestTLBFindDoesNotPromote(t *testing.T) {
	// sequence [1, 2, 1]: TLB size 2. After caching 1 then 2, a Find on 1
	// must not change eviction order; a third Cache(1, ...) (re-seat, not a
	// fresh insert) should not evict anything.
	tlb := NewTLB(2)
	tlb.Cache(1, 10)
	tlb.Cache(2, 20)

	_, ok := tlb.Find(1)
	assert.True(t, ok)

	tlb.Cache(1, 10)
	assert.Equal(t, 2, tlb.Len())
	_, ok = tlb.Find(2)
	assert.True(t, ok, "2 survives because re-caching 1 only re-seats it")

	// Order is now [2, 1]. The Find on 2 above did not promote it, so a
	// fresh insert evicts 2 rather than 1.
	tlb.Cache(3, 30)
	_, ok = tlb.Find(2)
	assert.False(t, ok, "Find does not promote, so 2 is still the oldest entry")
	_, ok = tlb.Find(1)
	assert.True(t, ok)
}

func TestTLBCacheEvictsOldestOnNewKeyAtCapacity(t *testing.T) {
	// sequence [1, 2, 3] with TLB size 2: final contents are {2, 3}; 1 is
	// evicted without ever being looked up again.
	tlb := NewTLB(2)
	tlb.Cache(1, 10)
	tlb.Cache(2, 20)
	tlb.Cache(3, 30)

	assert.Equal(t, 2, tlb.Len())
	_, ok := tlb.Find(1)
	assert.False(t, ok)
	_, ok = tlb.Find(2)
	assert.True(t, ok)
	_, ok = tlb.Find(3)
	assert.True(t, ok)
}

func TestTLBCacheExistingKeyDoesNotGrow(t *testing.T) {
	tlb := NewTLB(2)
	tlb.Cache(1, 10)
	tlb.Cache(1, 11)
	assert.Equal(t, 1, tlb.Len())
	f, ok := tlb.Find(1)
	assert.True(t, ok)
	assert.Equal(t, 11, f)
}

func TestTLBFlush(t *testing.T) {
	tlb := NewTLB(2)
	tlb.Cache(1, 10)

	assert.True(t, tlb.Flush(1))
	assert.False(t, tlb.Flush(1), "second flush finds nothing to remove")
	_, ok := tlb.Find(1)
	assert.False(t, ok)
}
