package serialize

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// opKind is a micro-opcode for the decoder's operation stack, per spec.md
// §4.2: "a parse stack with two operation kinds: ParseValue and Cons."
type opKind uint8

const (
	opParseValue opKind = iota
	opCons
)

// Decode parses one canonical-encoded object from the start of data and
// returns it along with the number of bytes consumed.
func Decode(alloc *allocator.Allocator, data []byte) (allocator.NodePtr, int, error) {
	pos := 0
	var valueStack []allocator.NodePtr
	ops := []opKind{opParseValue}

	for len(ops) > 0 {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		switch op {
		case opCons:
			n := len(valueStack)
			first, rest := valueStack[n-2], valueStack[n-1]
			valueStack = valueStack[:n-2]
			p, err := alloc.NewPair(first, rest)
			if err != nil {
				return allocator.NodePtr{}, 0, err
			}
			valueStack = append(valueStack, p)

		case opParseValue:
			if pos >= len(data) {
				return allocator.NodePtr{}, 0, truncated(pos)
			}
			switch data[pos] {
			case pairMarker:
				pos++
				ops = append(ops, opCons, opParseValue, opParseValue)
			case backrefMarker:
				return allocator.NodePtr{}, 0, &clvmerr.EncodingError{
					Offset: pos,
					Reason: clvmerr.ErrBadEncoding,
				}
			default:
				dec, consumed, err := decodeAtomPrefix(data, pos)
				if err != nil {
					return allocator.NodePtr{}, 0, err
				}
				atom, err := alloc.NewAtom(data[dec.payloadStart : dec.payloadStart+dec.length])
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

// IsCanonical reports whether re-encoding Decode(data)'s result reproduces
// data exactly, per spec.md §4.2.
func IsCanonical(data []byte) bool {
	a := allocator.New()
	node, consumed, err := Decode(a, data)
	if err != nil || consumed != len(data) {
		return false
	}
	reencoded, err := Encode(a, node)
	if err != nil || len(reencoded) != len(data) {
		return false
	}
	for i := range reencoded {
		if reencoded[i] != data[i] {
			return false
		}
	}
	return true
}
