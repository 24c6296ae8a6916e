package allocator

// Checkpoint captures the four store sizes described in spec.md §3's
// lifecycle section: atom_count, pair_count, heap_length, small_int_count.
// It is the only unit of deallocation this arena supports.
type Checkpoint struct {
	atomCount     int
	pairCount     int
	heapLen       int64
	smallIntCount int64
}

// Checkpoint snapshots the current store sizes.
func (a *Allocator) Checkpoint() Checkpoint {
	return Checkpoint{
		atomCount:     len(a.atoms),
		pairCount:     len(a.pairs),
		heapLen:       int64(len(a.heap)),
		smallIntCount: a.smallIntCount,
	}
}

// RestoreCheckpoint truncates all four stores back to mark. Any NodePtr
// created after mark becomes invalid: indices beyond the truncated table
// lengths are logically reused by whatever is allocated next, exactly as
// spec.md §3 allows ("implementations may re-issue them to new content").
func (a *Allocator) RestoreCheckpoint(mark Checkpoint) {
	a.atoms = a.atoms[:mark.atomCount]
	a.pairs = a.pairs[:mark.pairCount]
	a.heap = a.heap[:mark.heapLen]
	a.smallIntCount = mark.smallIntCount
}
