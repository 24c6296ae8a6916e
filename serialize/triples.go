package serialize

// Triple is one entry of a parse_triples index (spec.md §6): a lightweight
// reference into the original byte slice rather than a materialized tree.
// Exactly one of Atom/Pair-shaped data is meaningful, distinguished by Kind.
type Triple struct {
	Kind       TripleKind
	Start, End int
	// AtomOffset is valid when Kind == TripleAtom: the atom's payload
	// starts at Start+AtomOffset and runs to End.
	AtomOffset int
	// RightIndex is valid when Kind == TriplePair: the index into the
	// returned slice of the "rest" element. The "first" element is
	// always the very next entry.
	RightIndex int
}

type TripleKind uint8

const (
	TripleAtom TripleKind = iota
	TriplePair
)

type tripleOp uint8

const (
	tripleParseObj tripleOp = iota
	tripleSaveEnd
	tripleSaveRightIndex
)

type tripleWork struct {
	op    tripleOp
	index int
}

// ParseTriples indexes the single canonical object at the start of data
// without building a tree, for external indexers that want offsets into
// the original buffer rather than allocator handles.
func ParseTriples(data []byte) ([]Triple, error) {
	var r []Triple
	ops := []tripleWork{{op: tripleParseObj}}
	pos := 0

	for len(ops) > 0 {
		w := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		switch w.op {
		case tripleParseObj:
			if pos >= len(data) {
				return nil, truncated(pos)
			}
			start := pos
			b := data[pos]
			pos++
			if b == pairMarker {
				index := len(r)
				r = append(r, Triple{Kind: TriplePair, Start: start})
				ops = append(ops, tripleWork{op: tripleSaveEnd, index: index})
				ops = append(ops, tripleWork{op: tripleParseObj})
				ops = append(ops, tripleWork{op: tripleSaveRightIndex, index: index})
				ops = append(ops, tripleWork{op: tripleParseObj})
				continue
			}
			var end, atomOffset int
			if b < 0x80 {
				end = start + 1
			} else {
				dec, consumed, err := decodeAtomPrefix(data, start)
				if err != nil {
					return nil, err
				}
				atomOffset = dec.payloadStart - start
				end = start + consumed
			}
			pos = end
			r = append(r, Triple{Kind: TripleAtom, Start: start, End: end, AtomOffset: atomOffset})

		case tripleSaveEnd:
			r[w.index].End = pos

		case tripleSaveRightIndex:
			r[w.index].RightIndex = len(r)
		}
	}
	return r, nil
}
