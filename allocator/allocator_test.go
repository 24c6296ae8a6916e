package allocator

import (
	"math/big"
	"testing"

	"github.com/clvmgo/clvm/clvmerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAtomDistinctFromEmpty(t *testing.T) {
	a := New()
	empty, err := a.NewAtom(nil)
	require.NoError(t, err)
	zero, err := a.NewAtom([]byte{0})
	require.NoError(t, err)

	assert.False(t, a.AtomEq(empty, zero), "an all-zero one-byte atom must differ from the empty atom")
	assert.Equal(t, 0, a.AtomLen(empty))
	assert.Equal(t, 1, a.AtomLen(zero))
}

func TestNumberRoundTrip(t *testing.T) {
	a := New()
	for _, v := range []int64{0, 1, -1, 127, 128, -128, -129, 255, 256, 1 << 40, -(1 << 40)} {
		n, err := a.NewNumber(big.NewInt(v))
		require.NoError(t, err)
		got := a.Number(n)
		assert.Equal(t, v, got.Int64(), "round trip for %d", v)
	}
}

func TestAtomVsNumberEquality(t *testing.T) {
	a := New()
	// "00 01" and "01" are numerically equal (both encode 1) but byte-unequal.
	nonMinimal, err := a.NewAtom([]byte{0x00, 0x01})
	require.NoError(t, err)
	minimal, err := a.NewAtom([]byte{0x01})
	require.NoError(t, err)

	assert.False(t, a.AtomEq(nonMinimal, minimal))
	assert.Equal(t, 0, a.Number(nonMinimal).Cmp(a.Number(minimal)))
}

func TestNewPairAndSexp(t *testing.T) {
	a := New()
	x, _ := a.NewAtom([]byte("hello"))
	y, _ := a.NewAtom([]byte("world"))
	p, err := a.NewPair(x, y)
	require.NoError(t, err)

	s := a.Sexp(p)
	require.True(t, s.IsPair)
	assert.Equal(t, x, s.Pair.First)
	assert.Equal(t, y, s.Pair.Rest)
}

func TestNewConcat(t *testing.T) {
	a := New()
	x, _ := a.NewAtom([]byte("foo"))
	y, _ := a.NewAtom([]byte("bar"))
	z, err := a.NewConcat(6, []NodePtr{x, y})
	require.NoError(t, err)
	assert.Equal(t, []byte("foobar"), a.AtomBytes(z))

	_, err = a.NewConcat(5, []NodePtr{x, y})
	assert.Error(t, err)

	p, _ := a.NewPair(x, y)
	_, err = a.NewConcat(6, []NodePtr{p})
	assert.ErrorIs(t, err, clvmerr.ErrExpectedAtomGotPair)
}

func TestNewSubstrIsZeroCopyView(t *testing.T) {
	a := New()
	x, _ := a.NewAtom([]byte("hello world"))
	sub, err := a.NewSubstr(x, 6, 11)
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), a.AtomBytes(sub))

	_, err = a.NewSubstr(x, 5, 2)
	assert.Error(t, err)
	_, err = a.NewSubstr(x, 0, 100)
	assert.Error(t, err)
}

func TestCheckpointRestore(t *testing.T) {
	a := New()
	mark := a.Checkpoint()

	for i := 0; i < 10; i++ {
		x, _ := a.NewAtom([]byte{byte(i)})
		y, _ := a.NewAtom([]byte{byte(i + 1)})
		_, _ = a.NewPair(x, y)
	}
	assert.Greater(t, a.AtomCount(), 1)
	assert.Greater(t, a.PairCount(), 0)

	a.RestoreCheckpoint(mark)
	assert.Equal(t, 1, a.AtomCount()) // just the preallocated NIL
	assert.Equal(t, 0, a.PairCount())
	assert.Equal(t, int64(0), a.HeapLen())
}

func TestSmallNumberInlining(t *testing.T) {
	a := New()
	n, err := a.NewSmallNumber(42)
	require.NoError(t, err)
	word, ok := a.SmallNumber(n)
	require.True(t, ok)
	assert.Equal(t, int64(42), word)
	assert.Equal(t, []byte{42}, a.AtomBytes(n))
}

func TestTooManyAtoms(t *testing.T) {
	a := NewWithLimits(Limits{MaxAtoms: 2, MaxPairs: 10, MaxHeapSize: 1 << 20})
	_, err := a.NewAtom([]byte("a")) // fills the 2nd slot (1st is NIL)
	require.NoError(t, err)
	_, err = a.NewAtom([]byte("b"))
	assert.Error(t, err)
}
