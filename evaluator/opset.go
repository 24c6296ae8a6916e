package evaluator

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/internal/clvmlog"
)

// Flags are the dialect-wide behavior switches of spec.md §6's four
// external flags. Run itself branches on none of them; it passes Flags to
// the dialect's Op on every dispatch. Of the dialects in this module, only
// opset.Default reads a flag: NoUnknownOps selects strict vs. permissive
// unknown-operator handling (spec.md §4.5). EnableGC, MempoolMode and
// LimitHeap are accepted but nothing in this module reads them.
type Flags uint32

const (
	NoUnknownOps Flags = 1 << iota
	EnableGC
	MempoolMode
	LimitHeap
)

// Has reports whether f includes flag.
func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// OpSet is the dialect object spec.md §4.5 leaves abstract: everything
// Run needs beyond the two hardwired control-flow keywords (quote and
// apply, whose atom values the dialect still supplies, since the keyword
// *behavior* is hardwired but the keyword *byte values* are a dialect
// choice).
type OpSet interface {
	// QuoteAtom and ApplyAtom return the keyword atom bytes Run
	// special-cases in its Evaluate state (reduction rules 2 and 3).
	QuoteAtom() []byte
	ApplyAtom() []byte

	// Op dispatches a non-keyword opcode against an already-evaluated
	// argument list, charging from (and bounded by) maxCost. It returns
	// the cost actually consumed and the result, or an error — including
	// *RaiseError for the raise operator and clvmerr.ErrUnknownOperator
	// for an opcode the dialect does not recognize in strict mode.
	Op(alloc *allocator.Allocator, opAtom, args allocator.NodePtr, maxCost uint64, flags Flags) (cost uint64, result allocator.NodePtr, err error)
}

// Config bundles Run's tunables: the dialect, the flags passed to it, the
// cost ceiling and the tracer. Cancellation is not part of Config; it is
// the ctx argument of Run.
type Config struct {
	Dialect OpSet
	Flags   Flags

	// MaxCost bounds the whole run, including any softfork sub-budgets
	// (which further subdivide it but never exceed what's left).
	MaxCost uint64

	// Tracer receives opcode-dispatch and cost-accounting trace records.
	// Nil means no tracing; Run substitutes clvmlog.Discard() so the hot
	// path never has to nil-check it.
	Tracer clvmlog.Logger
}
