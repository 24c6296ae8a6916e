package opset

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/evaluator"
)

// Quoted is SPEC_FULL.md §4.5.1's minimal embedding dialect: a program
// under Quoted can only quote data and apply sub-programs recursively
// through softfork's frozen sub-budget — every other opcode is an
// ErrUnknownOperator. It exists for hosts that embed CLVM purely as a
// deterministic data-shaping layer (tree construction via quote/apply)
// without exposing any of the cost-bearing operator families to
// untrusted programs.
type Quoted struct {
	inner *Default
}

// NewQuoted builds a Quoted dialect. It keeps one Default instance
// internally so softfork blocks still get the full operator set once
// inside their frozen sub-budget, matching spec.md's "softfork" acting as
// an escape hatch into richer behavior under an audited cost ceiling.
func NewQuoted() *Quoted {
	return &Quoted{inner: NewDefault()}
}

func (q *Quoted) QuoteAtom() []byte { return []byte{opQuote} }
func (q *Quoted) ApplyAtom() []byte { return []byte{opApply} }

func (q *Quoted) Op(alloc *allocator.Allocator, opAtom, args allocator.NodePtr, maxCost uint64, flags evaluator.Flags) (uint64, allocator.NodePtr, error) {
	opSx := alloc.Sexp(opAtom)
	if opSx.IsPair {
		return 0, allocator.NodePtr{}, clvmerr.ErrExpectedAtomGotPair
	}
	if len(opSx.Atom.Bytes) == 1 && opSx.Atom.Bytes[0] == opSoftfork {
		return runSoftfork(q.inner, alloc, args, maxCost, flags)
	}
	return 0, allocator.NodePtr{}, clvmerr.ErrUnknownOperator
}
