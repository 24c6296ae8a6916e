package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/evaluator"
	"github.com/clvmgo/clvm/opset"
)

// buildAddProgram builds (+ (q . 3) (q . 4)) using opset.Default's real
// opcode numbering.
func buildAddProgram(t *testing.T, alloc *allocator.Allocator) (program, env allocator.NodePtr) {
	t.Helper()
	env = alloc.NilPtr()
	quote, err := alloc.NewSmallNumber(1)
	require.NoError(t, err)
	add, err := alloc.NewSmallNumber(22)
	require.NoError(t, err)
	three, err := alloc.NewSmallNumber(3)
	require.NoError(t, err)
	four, err := alloc.NewSmallNumber(4)
	require.NoError(t, err)

	q3, err := alloc.NewPair(quote, three)
	require.NoError(t, err)
	q4, err := alloc.NewPair(quote, four)
	require.NoError(t, err)
	tail, err := alloc.NewPair(q4, env)
	require.NoError(t, err)
	args, err := alloc.NewPair(q3, tail)
	require.NoError(t, err)
	program, err = alloc.NewPair(add, args)
	require.NoError(t, err)
	return program, env
}

func TestCostDeterminism(t *testing.T) {
	alloc1 := allocator.New()
	p1, e1 := buildAddProgram(t, alloc1)
	cfg := evaluator.Config{Dialect: opset.NewDefault(), MaxCost: 1 << 30}
	cost1, result1, err := evaluator.Run(nil, alloc1, p1, e1, cfg)
	require.NoError(t, err)

	alloc2 := allocator.New()
	p2, e2 := buildAddProgram(t, alloc2)
	cost2, result2, err := evaluator.Run(nil, alloc2, p2, e2, cfg)
	require.NoError(t, err)

	require.Equal(t, cost1, cost2)
	require.Equal(t, alloc1.Number(result1), alloc2.Number(result2))
}

func TestCostMonotonicity(t *testing.T) {
	alloc := allocator.New()
	p, e := buildAddProgram(t, alloc)
	dialect := opset.NewDefault()

	lowCfg := evaluator.Config{Dialect: dialect, MaxCost: 1 << 30}
	cost, result, err := evaluator.Run(nil, alloc, p, e, lowCfg)
	require.NoError(t, err)

	higherCfg := evaluator.Config{Dialect: dialect, MaxCost: lowCfg.MaxCost * 100}
	cost2, result2, err := evaluator.Run(nil, alloc, p, e, higherCfg)
	require.NoError(t, err)

	require.Equal(t, cost, cost2)
	require.True(t, alloc.AtomEq(result, result2))
}

func TestCostExceededWhenBudgetTooLow(t *testing.T) {
	alloc := allocator.New()
	p, e := buildAddProgram(t, alloc)
	cfg := evaluator.Config{Dialect: opset.NewDefault(), MaxCost: 1}
	_, _, err := evaluator.Run(nil, alloc, p, e, cfg)
	require.Error(t, err)
}
