package opset

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/evaluator"
)

// opFunc is the shape every non-keyword, non-softfork operator
// implements: spec.md §4.6's "(allocator, args_list, max_cost) →
// (cost_spent, result)".
type opFunc func(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error)

// Default is the fully-specified operator dialect of SPEC_FULL.md §4.5.1:
// every family in spec.md §4.6, runnable end-to-end with no further
// caller-supplied configuration. Its table is the same "opcode → handler"
// jump-table shape as the teacher's instructionSet ([256]operation in
// core/vm/jump_table.go), content-addressed by a 1-byte opcode atom
// instead of indexed by a literal byte.
type Default struct {
	table map[byte]opFunc
}

// NewDefault builds the Default dialect's opcode table once.
func NewDefault() *Default {
	d := &Default{table: map[byte]opFunc{}}
	registerCoreOps(d.table)
	registerArithOps(d.table)
	registerBitwiseOps(d.table)
	registerCompareOps(d.table)
	registerHashOps(d.table)
	registerBytesOps(d.table)
	registerCurveOps(d.table)
	registerSecOps(d.table)
	return d
}

func (d *Default) QuoteAtom() []byte { return []byte{opQuote} }
func (d *Default) ApplyAtom() []byte { return []byte{opApply} }

// Op dispatches opAtom against args. Softfork is special-cased here (not
// in the opcode table) because it alone needs flags and a nested
// evaluator.Run, neither of which fits opFunc's signature.
func (d *Default) Op(alloc *allocator.Allocator, opAtom, args allocator.NodePtr, maxCost uint64, flags evaluator.Flags) (uint64, allocator.NodePtr, error) {
	opSx := alloc.Sexp(opAtom)
	if opSx.IsPair {
		return 0, allocator.NodePtr{}, clvmerr.ErrExpectedAtomGotPair
	}
	opBytes := opSx.Atom.Bytes

	if len(opBytes) == 1 {
		if opBytes[0] == opSoftfork {
			return runSoftfork(d, alloc, args, maxCost, flags)
		}
		if fn, ok := d.table[opBytes[0]]; ok {
			return fn(alloc, args, maxCost)
		}
	}
	return unknownOp(opBytes, flags)
}

// mallocCost is the per-produced-atom cost of spec.md §4.5: "a malloc
// cost proportional to its length plus a small fixed base". concat, sha256,
// keccak256 and coinid charge it; the other operators' costs carry no
// malloc term, whatever atom they produce.
func mallocCost(n int) uint64 {
	return mallocCostPerByte + uint64(n)*mallocCostPerByte
}

// unknownOp implements spec.md §4.5's permissive/strict split for an
// opcode none of the registered families recognize. In strict mode
// (NoUnknownOps) it always fails; in permissive mode it succeeds with nil
// and a cost derived from the low 12 bits (3 nibbles) of the opcode atom,
// interpreted as a big-endian unsigned integer scaling a fixed
// per-unknown-op rate — spec.md's "3-nibble cost descriptor" without a
// recoverable exact bit-layout from the reference pack (see DESIGN.md).
func unknownOp(opBytes []byte, flags evaluator.Flags) (uint64, allocator.NodePtr, error) {
	if flags.Has(evaluator.NoUnknownOps) {
		return 0, allocator.NodePtr{}, clvmerr.ErrUnknownOperator
	}
	var descriptor uint64
	for _, b := range opBytes {
		descriptor = (descriptor << 8) | uint64(b)
	}
	costClass := descriptor & 0xFFF
	return unknownOpBaseCost + costClass*unknownOpCostPerClass, allocator.NodePtr{}, nil
}

const (
	unknownOpBaseCost     = 100
	unknownOpCostPerClass = 100
)
