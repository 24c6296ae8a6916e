package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildShared(t *testing.T, a *Allocator) NodePtr {
	t.Helper()
	leafA, _ := a.NewAtom([]byte("shared-leaf"))
	leafB, _ := a.NewAtom([]byte("shared-leaf")) // structurally identical, distinct allocation
	left, err := a.NewPair(leafA, leafA)
	require.NoError(t, err)
	right, err := a.NewPair(leafB, leafB)
	require.NoError(t, err)
	root, err := a.NewPair(left, right)
	require.NoError(t, err)
	return root
}

func TestInternDedupesStructurallyEqualSubtrees(t *testing.T) {
	src := New()
	root := buildShared(t, src)

	dst := New()
	newRoot, stats, err := Intern(src, dst, root)
	require.NoError(t, err)

	assert.Greater(t, stats.AtomsDeduped, 0)
	assert.Greater(t, stats.PairsDeduped, 0)
	assert.LessOrEqual(t, dst.AtomCount(), src.AtomCount())
	assert.LessOrEqual(t, dst.PairCount(), src.PairCount())

	s := dst.Sexp(newRoot)
	require.True(t, s.IsPair)
	// left and right pairs, despite coming from distinct source allocations,
	// must be the identical handle in dst once deduped.
	assert.Equal(t, s.Pair.First, s.Pair.Rest)
}

func TestInternRespectsTargetLimits(t *testing.T) {
	src := New()
	x, _ := src.NewAtom([]byte("x"))
	y, _ := src.NewAtom([]byte("y"))
	root, _ := src.NewPair(x, y)

	dst := NewWithLimits(Limits{MaxAtoms: 1, MaxPairs: 10, MaxHeapSize: 1 << 10})
	_, _, err := Intern(src, dst, root)
	assert.Error(t, err)
}
