package serialize

import "crypto/sha256"

const (
	atomHashPrefix = 0x01
	pairHashPrefix = 0x02
)

// TreeHashFromStream computes the tree-hash (spec.md §3's
// `H(0x01 || atom_bytes)` / `H(0x02 || hash(left) || hash(right))`
// digest) of the single serialized object at the start of data, in one
// pass, without materializing a tree: each fully-parsed subtree's hash is
// pushed to an auxiliary stack and combined on Cons.
func TreeHashFromStream(data []byte) ([32]byte, error) {
	pos := 0
	var hashStack [][32]byte
	ops := []opKind{opParseValue}

	for len(ops) > 0 {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		switch op {
		case opCons:
			n := len(hashStack)
			left, right := hashStack[n-2], hashStack[n-1]
			hashStack = hashStack[:n-2]
			h := sha256.New()
			h.Write([]byte{pairHashPrefix})
			h.Write(left[:])
			h.Write(right[:])
			var sum [32]byte
			copy(sum[:], h.Sum(nil))
			hashStack = append(hashStack, sum)

		case opParseValue:
			if pos >= len(data) {
				return [32]byte{}, truncated(pos)
			}
			switch data[pos] {
			case pairMarker:
				pos++
				ops = append(ops, opCons, opParseValue, opParseValue)
			case backrefMarker:
				return [32]byte{}, truncated(pos)
			default:
				dec, consumed, err := decodeAtomPrefix(data, pos)
				if err != nil {
					return [32]byte{}, err
				}
				h := sha256.New()
				h.Write([]byte{atomHashPrefix})
				h.Write(data[dec.payloadStart : dec.payloadStart+dec.length])
				var sum [32]byte
				copy(sum[:], h.Sum(nil))
				pos += consumed
				hashStack = append(hashStack, sum)
			}
		}
	}
	return hashStack[0], nil
}
