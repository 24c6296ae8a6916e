// Package evaluator implements the graph-reducing interpreter of spec.md
// §4.5: an iterative three-stack machine (operation tags, their operand
// data, and produced values) reducing a program tree against an
// environment tree under a cost budget, with the quote and apply keywords
// hardwired and every other opcode delegated to an injected OpSet dialect.
package evaluator

import (
	"context"
	"math/big"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/internal/clvmlog"
)

// Path traversal cost constants (spec.md §4.5: "path traversal charges a
// fixed per-bit cost"). Pinned to the well-known public CLVM reference
// values, same provenance note as opset/cost.go.
const (
	pathLookupBaseCost    = 40
	pathLookupCostPerLeg  = 4
	pathLookupCostPerByte = 4

	// applyKeywordCost is the fixed cost of the apply keyword itself
	// (spec.md §4.5: "independent of program size"), pinned to the
	// well-known public CLVM reference APPLY_COST.
	applyKeywordCost = 90
)

type microOp uint8

const (
	opEvaluate microOp = iota
	opEvalArgs
	opPostApply
	opApplyKeyword
	opCons
)

// frame carries the operand data a pending micro-op needs. Which fields
// are meaningful depends on op; this merges the "operand stack" and
// "operation stack" of spec.md §4.5 into one stack of tagged frames, the
// same explicit-work-stack shape used throughout this module (see
// allocator.Intern, serialize.Decode, objcache.Get, backref.Decode) rather
// than three parallel slices that would always be pushed/popped in
// lockstep anyway.
type frame struct {
	op       microOp
	a, b     allocator.NodePtr // Evaluate: a=program, b=env. EvalArgs: a=args-list, b=env. ApplyKeyword/PostApply: a=opAtom/program, b=env.
}

// Run reduces program against env under maxCost, per cfg's dialect and
// flags. ctx, if non-nil, is checked once per operation-stack pop — never
// inside a single operator call — matching spec.md §5's "host-controlled
// cancellation check at operation-stack pop boundaries".
func Run(ctx context.Context, alloc *allocator.Allocator, program, env allocator.NodePtr, cfg Config) (cost uint64, result allocator.NodePtr, err error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = clvmlog.Discard()
	}

	pool := NewCostPool(cfg.MaxCost)
	ops := []frame{{op: opEvaluate, a: program, b: env}}
	var values []allocator.NodePtr

	for len(ops) > 0 {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return pool.Spent(), allocator.NodePtr{}, ctx.Err()
			default:
			}
		}

		f := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		switch f.op {
		case opCons:
			n := len(values)
			first, rest := values[n-2], values[n-1]
			values = values[:n-2]
			p, perr := alloc.NewPair(first, rest)
			if perr != nil {
				return pool.Spent(), allocator.NodePtr{}, perr
			}
			values = append(values, p)

		case opEvaluate:
			sx := alloc.Sexp(f.a)
			if !sx.IsPair {
				// Rule 1: the program is an atom — a path into env.
				node, traversalCost, terr := traversePath(alloc, f.a, f.b)
				if terr != nil {
					return pool.Spent(), allocator.NodePtr{}, terr
				}
				if serr := pool.Spend(traversalCost); serr != nil {
					return pool.Spent(), allocator.NodePtr{}, serr
				}
				values = append(values, node)
				continue
			}

			opNode, argsNode := sx.Pair.First, sx.Pair.Rest
			opSx := alloc.Sexp(opNode)
			if !opSx.IsPair && bytesEqual(opSx.Atom.Bytes, cfg.Dialect.QuoteAtom()) {
				// Rule 2: quote — args is the value, unevaluated.
				values = append(values, argsNode)
				continue
			}

			// Rule 3: evaluate every child of args (in program order),
			// then dispatch. opPostApply runs once eval_args is on top
			// of the value stack.
			ops = append(ops, frame{op: opPostApply, a: opNode, b: f.b})
			ops = append(ops, frame{op: opEvalArgs, a: argsNode, b: f.b})

		case opEvalArgs:
			argsSx := alloc.Sexp(f.a)
			if !argsSx.IsPair {
				if alloc.AtomLen(f.a) != 0 {
					return pool.Spent(), allocator.NodePtr{}, clvmerr.ErrRestOfNonCons
				}
				values = append(values, f.a) // nil terminates the list as-is
				continue
			}
			ops = append(ops, frame{op: opCons})
			ops = append(ops, frame{op: opEvalArgs, a: argsSx.Pair.Rest, b: f.b})
			ops = append(ops, frame{op: opEvaluate, a: argsSx.Pair.First, b: f.b})

		case opPostApply:
			n := len(values)
			evalArgs := values[n-1]
			values = values[:n-1]

			opSx := alloc.Sexp(f.a)
			if opSx.IsPair {
				return pool.Spent(), allocator.NodePtr{}, clvmerr.ErrExpectedAtomGotPair
			}
			if bytesEqual(opSx.Atom.Bytes, cfg.Dialect.ApplyAtom()) {
				argSx := alloc.Sexp(evalArgs)
				if !argSx.IsPair {
					return pool.Spent(), allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
				}
				restSx := alloc.Sexp(argSx.Pair.Rest)
				if !restSx.IsPair {
					return pool.Spent(), allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
				}
				if serr := pool.Spend(applyKeywordCost); serr != nil {
					return pool.Spent(), allocator.NodePtr{}, serr
				}
				ops = append(ops, frame{op: opApplyKeyword, a: argSx.Pair.First, b: restSx.Pair.First})
				continue
			}

			opCost, opResult, operr := cfg.Dialect.Op(alloc, f.a, evalArgs, pool.Remaining(), cfg.Flags)
			if operr != nil {
				tracer.Debug("op dispatch failed", "opcode", alloc.AtomBytes(f.a), "err", operr)
				return pool.Spent(), allocator.NodePtr{}, operr
			}
			if serr := pool.Spend(opCost); serr != nil {
				return pool.Spent(), allocator.NodePtr{}, serr
			}
			tracer.Trace("op dispatch", "opcode", alloc.AtomBytes(f.a), "cost", opCost, "spent", pool.Spent())
			values = append(values, opResult)

		case opApplyKeyword:
			// applyKeywordCost was already charged in opPostApply; this
			// state exists only to name the tail-recursive re-entry
			// rule 3 describes for the apply keyword.
			ops = append(ops, frame{op: opEvaluate, a: f.a, b: f.b})
		}
	}

	if len(values) != 1 {
		return pool.Spent(), allocator.NodePtr{}, clvmerr.ErrBadEncoding
	}
	return pool.Spent(), values[0], nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// traversePath implements reduction rule 1: pathAtom's bytes, read as an
// unsigned big-endian integer, have a sentinel high bit marking where
// traversal starts; the remaining bits, read most-significant first, pick
// First (0) or Rest (1) through env. The empty atom and the atom holding
// exactly the sentinel bit (value 1) both mean "the whole environment".
func traversePath(alloc *allocator.Allocator, pathAtom, env allocator.NodePtr) (allocator.NodePtr, uint64, error) {
	pathBytes := alloc.AtomBytes(pathAtom)
	v := new(big.Int).SetBytes(pathBytes)

	node := env
	legs := 0
	if bitLen := v.BitLen(); bitLen > 1 {
		for i := bitLen - 2; i >= 0; i-- {
			sx := alloc.Sexp(node)
			if !sx.IsPair {
				return allocator.NodePtr{}, 0, clvmerr.ErrPathIntoAtom
			}
			if v.Bit(i) == 0 {
				node = sx.Pair.First
			} else {
				node = sx.Pair.Rest
			}
			legs++
		}
	}

	cost := uint64(pathLookupBaseCost) +
		uint64(legs)*pathLookupCostPerLeg +
		uint64(len(pathBytes))*pathLookupCostPerByte
	return node, cost, nil
}
