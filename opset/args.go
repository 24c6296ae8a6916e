package opset

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// listArgs walks a nil-terminated cons list into a slice, the same
// explicit-walk idiom evaluator.Run's opEvalArgs uses for the program's
// argument spine. Every operator in this package receives its arguments
// this way rather than re-deriving List structure ad hoc.
func listArgs(alloc *allocator.Allocator, args allocator.NodePtr) ([]allocator.NodePtr, error) {
	var out []allocator.NodePtr
	node := args
	for {
		sx := alloc.Sexp(node)
		if !sx.IsPair {
			if alloc.AtomLen(node) != 0 {
				return nil, clvmerr.ErrRestOfNonCons
			}
			return out, nil
		}
		out = append(out, sx.Pair.First)
		node = sx.Pair.Rest
	}
}

// requireAtom returns n's atom bytes, or ErrExpectedAtomGotPair if n is a
// pair — the guard every arithmetic/bitwise/hash/bytes operator needs
// before reading an argument's bytes.
func requireAtom(alloc *allocator.Allocator, n allocator.NodePtr) ([]byte, error) {
	sx := alloc.Sexp(n)
	if sx.IsPair {
		return nil, clvmerr.ErrExpectedAtomGotPair
	}
	return sx.Atom.Bytes, nil
}

// isTruthy is CLVM's boolean convention: the nil atom (zero length) is
// false, everything else — including a pair — is true.
func isTruthy(alloc *allocator.Allocator, n allocator.NodePtr) bool {
	sx := alloc.Sexp(n)
	if sx.IsPair {
		return true
	}
	return len(sx.Atom.Bytes) != 0
}
