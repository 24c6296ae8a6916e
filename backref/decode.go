package backref

import (
	"math/big"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/serialize"
)

type opKindDec uint8

const (
	decParseValue opKindDec = iota
	decCons
)

// Decode is the canonical decoder extended with the 0xFE back-reference
// branch of spec.md §4.3. A back-reference's path is resolved against the
// "implicit parse stack tree": the current decode valueStack, read as a
// right-leaning cons chain terminated by nil, with the most recently
// parsed value as its left child.
//
// Unlike the original decoder (which only ever sees a byte stream and so
// keeps a parallel hash-indexed ReadCacheLookup to resolve paths), this
// decoder has direct structural access to the real NodePtr values already
// on valueStack, so path resolution walks that stack and Sexp(...) directly
// instead of maintaining a parallel bookkeeping structure.
func Decode(alloc *allocator.Allocator, data []byte) (allocator.NodePtr, int, error) {
	pos := 0
	var valueStack []allocator.NodePtr
	ops := []opKindDec{decParseValue}

	for len(ops) > 0 {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		switch op {
		case decCons:
			n := len(valueStack)
			first, rest := valueStack[n-2], valueStack[n-1]
			valueStack = valueStack[:n-2]
			p, err := alloc.NewPair(first, rest)
			if err != nil {
				return allocator.NodePtr{}, 0, err
			}
			valueStack = append(valueStack, p)

		case decParseValue:
			if pos >= len(data) {
				return allocator.NodePtr{}, 0, badEncoding(pos)
			}
			switch data[pos] {
			case serialize.PairMarker:
				pos++
				ops = append(ops, decCons, decParseValue, decParseValue)

			case serialize.BackrefMarker:
				pos++
				payloadStart, length, consumed, err := serialize.DecodeAtomPrefix(data, pos)
				if err != nil {
					return allocator.NodePtr{}, 0, err
				}
				pathBytes := data[payloadStart : payloadStart+length]
				pos += consumed
				node, err := traversePath(alloc, valueStack, pathBytes)
				if err != nil {
					return allocator.NodePtr{}, 0, err
				}
				valueStack = append(valueStack, node)

			default:
				payloadStart, length, consumed, err := serialize.DecodeAtomPrefix(data, pos)
				if err != nil {
					return allocator.NodePtr{}, 0, err
				}
				atom, err := alloc.NewAtom(data[payloadStart : payloadStart+length])
				if err != nil {
					return allocator.NodePtr{}, 0, err
				}
				pos += consumed
				valueStack = append(valueStack, atom)
			}
		}
	}
	return valueStack[0], pos, nil
}

// traversePath interprets pathBytes as the "reversed big-integer with a
// sentinel high bit" of spec.md §4.3 and walks the virtual parse-stack
// tree it describes: bit 0 (the least significant, excluding the sentinel
// bit at the top) is the direction taken at the root, each subsequent bit
// one level deeper.
func traversePath(alloc *allocator.Allocator, valueStack []allocator.NodePtr, pathBytes []byte) (allocator.NodePtr, error) {
	v := new(big.Int).SetBytes(pathBytes)
	bitLen := v.BitLen()
	if bitLen == 0 {
		return allocator.NodePtr{}, badEncoding(0)
	}

	depth := 0 // number of Right steps taken while still within the virtual stack chain
	inStack := true
	var current allocator.NodePtr

	for i := 0; i < bitLen-1; i++ {
		right := v.Bit(i) == 1
		if inStack {
			stackLen := len(valueStack) - depth
			if right {
				depth++
				if depth > len(valueStack) {
					return allocator.NodePtr{}, clvmerr.ErrPathIntoAtom
				}
				continue
			}
			if stackLen <= 0 {
				return allocator.NodePtr{}, clvmerr.ErrPathIntoAtom
			}
			current = valueStack[stackLen-1]
			inStack = false
			continue
		}
		sx := alloc.Sexp(current)
		if !sx.IsPair {
			return allocator.NodePtr{}, clvmerr.ErrPathIntoAtom
		}
		if right {
			current = sx.Pair.Rest
		} else {
			current = sx.Pair.First
		}
	}

	if inStack {
		return materializeVirtualStack(alloc, valueStack, depth)
	}
	return current, nil
}

// materializeVirtualStack builds the real cons-chain the virtual parse
// stack represents once depth entries have been skipped over (via Right
// steps) from the top, needed when a path terminates exactly on a stack
// boundary rather than inside an already-parsed value.
func materializeVirtualStack(alloc *allocator.Allocator, valueStack []allocator.NodePtr, depth int) (allocator.NodePtr, error) {
	remaining := valueStack
	if depth > 0 {
		remaining = valueStack[:len(valueStack)-depth]
	}
	node := alloc.NilPtr()
	for i := 0; i < len(remaining); i++ {
		p, err := alloc.NewPair(remaining[i], node)
		if err != nil {
			return allocator.NodePtr{}, err
		}
		node = p
	}
	return node, nil
}

func badEncoding(pos int) error {
	return &clvmerr.EncodingError{Offset: pos, Reason: clvmerr.ErrBadEncoding}
}

// IsCanonicalWithBackrefs reports whether decoding data with back-reference
// support and re-emitting it with a fresh Serializer reproduces data
// exactly.
func IsCanonicalWithBackrefs(alloc *allocator.Allocator, data []byte) bool {
	node, consumed, err := Decode(alloc, data)
	if err != nil || consumed != len(data) {
		return false
	}
	s := NewSerializer()
	done, out, err := s.Add(alloc, node)
	if err != nil || !done || len(out) != len(data) {
		return false
	}
	for i := range out {
		if out[i] != data[i] {
			return false
		}
	}
	return true
}
