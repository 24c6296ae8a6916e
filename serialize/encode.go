package serialize

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// Encode produces the canonical byte encoding of node. It walks the tree
// depth-first with an explicit work stack (not Go recursion) so that a long
// right-leaning list — the common shape for CLVM argument lists — cannot
// exhaust the call stack.
func Encode(alloc *allocator.Allocator, root allocator.NodePtr) ([]byte, error) {
	var out []byte
	stack := []allocator.NodePtr{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		node := stack[n]
		stack = stack[:n]

		s := alloc.Sexp(node)
		if s.IsPair {
			out = append(out, pairMarker)
			// Push rest then first so first is processed (and thus
			// written) before rest, matching "0xFF then left then right".
			stack = append(stack, s.Pair.Rest, s.Pair.First)
			continue
		}
		var err error
		out, err = encodeAtom(out, s.Atom.Bytes)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func encodeAtom(out []byte, b []byte) ([]byte, error) {
	if len(b) == 1 && b[0] < 0x80 {
		return append(out, b[0]), nil
	}
	out, err := encodeAtomPrefix(out, len(b))
	if err != nil {
		return nil, err
	}
	return append(out, b...), nil
}

// EncodeWithLimit behaves like Encode but aborts as soon as the output
// would exceed byteLimit, returning (nil, LimitExceeded-shaped error), per
// spec.md §6's `emit_with_limit`.
func EncodeWithLimit(alloc *allocator.Allocator, root allocator.NodePtr, byteLimit int) ([]byte, error) {
	var out []byte
	stack := []allocator.NodePtr{root}
	for len(stack) > 0 {
		if len(out) > byteLimit {
			return nil, clvmerr.ErrLimitExceeded
		}
		n := len(stack) - 1
		node := stack[n]
		stack = stack[:n]

		s := alloc.Sexp(node)
		if s.IsPair {
			out = append(out, pairMarker)
			stack = append(stack, s.Pair.Rest, s.Pair.First)
			continue
		}
		var err error
		out, err = encodeAtom(out, s.Atom.Bytes)
		if err != nil {
			return nil, err
		}
	}
	if len(out) > byteLimit {
		return nil, clvmerr.ErrLimitExceeded
	}
	return out, nil
}
