package backref

import (
	"testing"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/serialize"
	"github.com/stretchr/testify/require"
)

func buildRepeated40ByteSubtree(t *testing.T, a *allocator.Allocator) allocator.NodePtr {
	t.Helper()
	payload := make([]byte, 40)
	for i := range payload {
		payload[i] = byte(i + 1)
	}
	atom, err := a.NewAtom(payload)
	require.NoError(t, err)
	return atom
}

func TestSerializerEmitsShorterOutputForRepeatedSubtrees(t *testing.T) {
	a := allocator.New()
	shared := buildRepeated40ByteSubtree(t, a)
	// a second, structurally-identical-but-distinct allocation so the
	// Serializer must recognize it by tree-hash, not by NodePtr identity.
	dup := buildRepeated40ByteSubtree(t, a)

	pair, err := a.NewPair(shared, dup)
	require.NoError(t, err)

	naive, err := serialize.Encode(a, pair)
	require.NoError(t, err)

	s := NewSerializer()
	done, withBackrefs, err := s.Add(a, pair)
	require.NoError(t, err)
	require.True(t, done)
	require.Less(t, len(withBackrefs), len(naive))

	roundTrip := allocator.New()
	node, consumed, err := Decode(roundTrip, withBackrefs)
	require.NoError(t, err)
	require.Equal(t, len(withBackrefs), consumed)

	reencoded, err := serialize.Encode(roundTrip, node)
	require.NoError(t, err)
	require.Equal(t, naive, reencoded)
}

func TestSerializerSentinelYieldsNotDone(t *testing.T) {
	a := allocator.New()
	s := NewSerializer()
	leaf, err := a.NewAtom([]byte{0x05})
	require.NoError(t, err)
	pending, err := a.NewPair(leaf, s.Sentinel())
	require.NoError(t, err)

	done, out, err := s.Add(a, pending)
	require.NoError(t, err)
	require.False(t, done)
	require.Nil(t, out)
}

func TestDecodeRejectsPathIntoAtom(t *testing.T) {
	a := allocator.New()
	// 0xFE 0x02: back-reference with path "02" (one Left step) before
	// anything has been pushed onto the parse stack — nil has no Left
	// child.
	_, _, err := Decode(a, []byte{serialize.BackrefMarker, 0x02})
	require.Error(t, err)
}

func TestDecodeEmptyPathReferencesStackRoot(t *testing.T) {
	a := allocator.New()
	// "FF 05 FE 01": a pair whose first is atom 5 and whose rest is a
	// back-reference with the empty path (value 1). With 5 on the parse
	// stack, the stack root is (5 . 0), so the whole is (5 . (5 . 0)).
	node, consumed, err := Decode(a, []byte{serialize.PairMarker, 0x05, serialize.BackrefMarker, 0x01})
	require.NoError(t, err)
	require.Equal(t, 4, consumed)
	sx := a.Sexp(node)
	require.True(t, sx.IsPair)
	require.Equal(t, []byte{0x05}, a.AtomBytes(sx.Pair.First))
	ref := a.Sexp(sx.Pair.Rest)
	require.True(t, ref.IsPair)
	require.Equal(t, []byte{0x05}, a.AtomBytes(ref.Pair.First))
	require.Equal(t, 0, len(a.AtomBytes(ref.Pair.Rest)))
}
