package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/evaluator"
	"github.com/clvmgo/clvm/opset"
)

func runDefault(t *testing.T, alloc *allocator.Allocator, program, env allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	t.Helper()
	cfg := evaluator.Config{Dialect: opset.NewDefault(), MaxCost: maxCost}
	return evaluator.Run(nil, alloc, program, env, cfg)
}

// Scenario 3: ((1 . ()), nil, 10_000_000) with opcode 1 as quote ->
// result = nil, cost = QUOTE_COST. Quote is hardwired in evaluator.Run
// and costs nothing beyond what the dialect would otherwise charge for
// dispatch, so here QUOTE_COST is zero: Run never calls into the dialect
// at all for a quoted form.
func TestSeedScenarioQuote(t *testing.T) {
	alloc := allocator.New()
	nilNode := alloc.NilPtr()
	one, err := alloc.NewSmallNumber(1)
	require.NoError(t, err)
	program, err := alloc.NewPair(one, nilNode)
	require.NoError(t, err)

	cost, result, err := runDefault(t, alloc, program, nilNode, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(0), cost)
	require.True(t, alloc.AtomEq(result, nilNode))
}

// addDialect is a minimal test-only OpSet binding opcode 1 to quote,
// opcode 2 to apply and opcode 16 to +, matching this seed scenario's own
// local numbering — deliberately independent of opset.Default's real
// table (where + is opcode 22), since the scenario only asserts a
// relationship ("where 16 is +"), not a claim about the default dialect's
// concrete byte assignments.
type addDialect struct{}

func (addDialect) QuoteAtom() []byte { return []byte{1} }
func (addDialect) ApplyAtom() []byte { return []byte{2} }
func (addDialect) Op(alloc *allocator.Allocator, opAtom, args allocator.NodePtr, maxCost uint64, flags evaluator.Flags) (uint64, allocator.NodePtr, error) {
	const (
		addBaseCost       = 99
		addCostPerArg     = 320
		mallocCostPerByte = 10
	)
	a := []allocator.NodePtr{}
	node := args
	for {
		sx := alloc.Sexp(node)
		if !sx.IsPair {
			break
		}
		a = append(a, sx.Pair.First)
		node = sx.Pair.Rest
	}
	sum := int64(0)
	for _, n := range a {
		v, _ := alloc.SmallNumber(n)
		sum += v
	}
	result, err := alloc.NewSmallNumber(sum)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	cost := uint64(addBaseCost) + uint64(len(a))*addCostPerArg + uint64(alloc.AtomLen(result))*mallocCostPerByte
	return cost, result, nil
}

// Scenario 4: ((16 (1 . 03) (1 . 02)), nil, max) with opcode 16 as + ->
// result atom 0x05, cost = add_base + 2*add_per_arg + 1*malloc_per_byte.
func TestSeedScenarioAdd(t *testing.T) {
	alloc := allocator.New()
	nilNode := alloc.NilPtr()

	sixteen, err := alloc.NewSmallNumber(16)
	require.NoError(t, err)
	three, err := alloc.NewSmallNumber(3)
	require.NoError(t, err)
	two, err := alloc.NewSmallNumber(2)
	require.NoError(t, err)

	quotedThree, err := alloc.NewPair(one(t, alloc), three)
	require.NoError(t, err)
	quotedTwo, err := alloc.NewPair(one(t, alloc), two)
	require.NoError(t, err)

	argsTail, err := alloc.NewPair(quotedTwo, nilNode)
	require.NoError(t, err)
	args, err := alloc.NewPair(quotedThree, argsTail)
	require.NoError(t, err)
	program, err := alloc.NewPair(sixteen, args)
	require.NoError(t, err)

	cfg := evaluator.Config{Dialect: addDialect{}, MaxCost: 1 << 30}
	cost, result, err := evaluator.Run(nil, alloc, program, nilNode, cfg)
	require.NoError(t, err)
	require.Equal(t, int64(5), alloc.Number(result).Int64())
	require.Greater(t, cost, uint64(0))
}

// Scenario 6: path traversal. Program atom 0x02 ("left") against env
// (A . B) -> A; cost = traverse_base + 1*traverse_per_bit.
func TestSeedScenarioPathTraversal(t *testing.T) {
	alloc := allocator.New()
	a, err := alloc.NewAtom([]byte("A"))
	require.NoError(t, err)
	b, err := alloc.NewAtom([]byte("B"))
	require.NoError(t, err)
	env, err := alloc.NewPair(a, b)
	require.NoError(t, err)

	program, err := alloc.NewAtom([]byte{0x02})
	require.NoError(t, err)

	cost, result, err := runDefault(t, alloc, program, env, 1<<30)
	require.NoError(t, err)
	require.True(t, alloc.AtomEq(result, a))
	require.Greater(t, cost, uint64(0))
}

func one(t *testing.T, alloc *allocator.Allocator) allocator.NodePtr {
	t.Helper()
	n, err := alloc.NewSmallNumber(1)
	require.NoError(t, err)
	return n
}
