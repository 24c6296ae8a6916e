package clvm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	clvm "github.com/clvmgo/clvm"
)

func TestParseEmitRoundTrip(t *testing.T) {
	alloc := clvm.NewAllocator()
	node, consumed, err := clvm.Parse(alloc, []byte{0x80})
	require.NoError(t, err)
	require.Equal(t, 1, consumed)

	out, err := clvm.Emit(alloc, node)
	require.NoError(t, err)
	require.Equal(t, []byte{0x80}, out)
}

func TestRunQuoteThroughFacade(t *testing.T) {
	alloc := clvm.NewAllocator()
	nilNode := alloc.NilPtr()
	quote, err := alloc.NewSmallNumber(1)
	require.NoError(t, err)
	program, err := alloc.NewPair(quote, nilNode)
	require.NoError(t, err)

	cfg := clvm.Config{Dialect: clvm.DefaultDialect(), MaxCost: 1 << 20}
	cost, result, err := clvm.Run(nil, alloc, program, nilNode, cfg)
	require.NoError(t, err)
	require.Equal(t, uint64(0), cost)
	require.True(t, alloc.AtomEq(result, nilNode))
}

func TestEmitWithBackrefsShorterThanNaive(t *testing.T) {
	alloc := clvm.NewAllocator()
	payload := make([]byte, 40)
	for i := range payload {
		payload[i] = byte(i)
	}
	a1, err := alloc.NewAtom(append([]byte(nil), payload...))
	require.NoError(t, err)
	a2, err := alloc.NewAtom(append([]byte(nil), payload...))
	require.NoError(t, err)
	pair, err := alloc.NewPair(a1, a2)
	require.NoError(t, err)

	naive, err := clvm.Emit(alloc, pair)
	require.NoError(t, err)
	withRefs, err := clvm.EmitWithBackrefs(alloc, pair)
	require.NoError(t, err)
	require.Less(t, len(withRefs), len(naive))

	decodeAlloc := clvm.NewAllocator()
	decoded, _, err := clvm.ParseWithBackrefs(decodeAlloc, withRefs)
	require.NoError(t, err)
	reencoded, err := clvm.Emit(decodeAlloc, decoded)
	require.NoError(t, err)
	require.Equal(t, naive, reencoded)
}

func TestRunWithTracerEmitsDispatchRecords(t *testing.T) {
	alloc := clvm.NewAllocator()
	quote, err := alloc.NewSmallNumber(1)
	require.NoError(t, err)
	three, err := alloc.NewSmallNumber(3)
	require.NoError(t, err)
	four, err := alloc.NewSmallNumber(4)
	require.NoError(t, err)
	q3, err := alloc.NewPair(quote, three)
	require.NoError(t, err)
	q4, err := alloc.NewPair(quote, four)
	require.NoError(t, err)
	add, err := alloc.NewSmallNumber(22)
	require.NoError(t, err)
	tail, err := alloc.NewPair(q4, alloc.NilPtr())
	require.NoError(t, err)
	args, err := alloc.NewPair(q3, tail)
	require.NoError(t, err)
	program, err := alloc.NewPair(add, args)
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg := clvm.Config{Dialect: clvm.DefaultDialect(), MaxCost: 1 << 20, Tracer: clvm.NewTracer(&buf)}
	_, result, err := clvm.Run(nil, alloc, program, alloc.NilPtr(), cfg)
	require.NoError(t, err)
	require.Equal(t, int64(7), alloc.Number(result).Int64())
	require.Contains(t, buf.String(), "op dispatch")
}

func TestInternPreservesTreeHash(t *testing.T) {
	src := clvm.NewAllocator()
	a, err := src.NewAtom([]byte("shared"))
	require.NoError(t, err)
	b, err := src.NewAtom([]byte("shared"))
	require.NoError(t, err)
	root, err := src.NewPair(a, b)
	require.NoError(t, err)

	before := clvm.TreeHash(src, root)
	dst, internedRoot, stats, err := clvm.Intern(src, root)
	require.NoError(t, err)
	after := clvm.TreeHash(dst, internedRoot)
	require.Equal(t, before, after)
	require.Equal(t, 1, stats.AtomsDeduped)
}
