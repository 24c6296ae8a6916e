package backref

import "crypto/sha256"

const (
	treeHashLeafPrefix = 0x01
	treeHashNodePrefix = 0x02
)

func hashBlob(b []byte) [32]byte {
	return sha256.Sum256(b)
}

func hashPair(left, right [32]byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{treeHashNodePrefix})
	h.Write(left[:])
	h.Write(right[:])
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

type parentEdge struct {
	parent  [32]byte
	isRight bool
}

// ReadCacheLookup mirrors the decoder's parse-stack state: for every
// tree-hash currently reachable from the stack root, it records enough to
// run a backward breadth-first search toward a target hash, per spec.md
// §4.3's "read-cache-lookup counterpart to the decoder." The Serializer
// uses it (through TreeCache) to discover back-reference opportunities
// while writing; the back-reference decoder does not use it and resolves
// paths against its own value stack instead.
type ReadCacheLookup struct {
	rootHash     [32]byte
	readStack    [][2][32]byte // (id, old root) per pushed stack entry
	count        map[[32]byte]int32
	parentLookup map[[32]byte][]parentEdge
}

// NewReadCacheLookup returns a lookup whose stack holds only the
// conventional nil root (tree-hash of the empty atom).
func NewReadCacheLookup() *ReadCacheLookup {
	root := hashBlob([]byte{treeHashLeafPrefix})
	return &ReadCacheLookup{
		rootHash:     root,
		count:        map[[32]byte]int32{root: 1},
		parentLookup: map[[32]byte][]parentEdge{},
	}
}

// Push records pushing a new value (identified by its tree-hash) onto the
// parse stack, making it the new root's left child.
func (r *ReadCacheLookup) Push(id [32]byte) {
	newRoot := hashPair(id, r.rootHash)
	r.readStack = append(r.readStack, [2][32]byte{id, r.rootHash})

	r.count[id]++
	r.count[newRoot]++

	r.parentLookup[id] = append(r.parentLookup[id], parentEdge{parent: newRoot, isRight: false})
	r.parentLookup[r.rootHash] = append(r.parentLookup[r.rootHash], parentEdge{parent: newRoot, isRight: true})

	r.rootHash = newRoot
}

func (r *ReadCacheLookup) pop() (id, oldRoot [32]byte) {
	n := len(r.readStack) - 1
	item := r.readStack[n]
	r.readStack = r.readStack[:n]
	r.count[item[0]]--
	r.count[r.rootHash]--
	r.rootHash = item[1]
	return item[0], item[1]
}

// Pop2AndCons mirrors the decoder's pop/pop/cons operation: it removes the
// top two stack entries and pushes their combination, keeping tree
// identities (and so back-reference opportunities) intact.
func (r *ReadCacheLookup) Pop2AndCons() {
	right, _ := r.pop()
	left, _ := r.pop()

	r.count[left]++
	r.count[right]++

	newRoot := hashPair(left, right)
	r.parentLookup[left] = append(r.parentLookup[left], parentEdge{parent: newRoot, isRight: false})
	r.parentLookup[right] = append(r.parentLookup[right], parentEdge{parent: newRoot, isRight: true})

	r.Push(newRoot)
}

// pathAtomLength estimates the number of bytes a path of the given bit
// length (including its sentinel terminator bit) would need to serialize
// as a canonical atom, using the same length-class grammar as
// PathBuilder.SerializedLength but driven by a raw bit count rather than
// an already-built byte buffer.
func pathAtomLength(bits uint64) uint64 {
	byteLen := (bits + 7) / 8
	switch {
	case bits <= 7:
		return 1
	case byteLen <= 0x3f:
		return 1 + byteLen
	case byteLen <= 0x1fff:
		return 2 + byteLen
	case byteLen <= 0xfffff:
		return 3 + byteLen
	case byteLen <= 0x7ffffff:
		return 4 + byteLen
	default:
		return 5 + byteLen
	}
}

type partialPath struct {
	node [32]byte
	bits []bool
}

// FindPaths returns every minimal-length path from the stack root to id
// whose resulting back-reference (the `0xFE` marker plus the path atom)
// serializes to no more bytes than serializedLength, or nil if none does.
// serializedLength is the target subtree's own canonical length, i.e. the
// amount of output a back-reference would need to beat.
func (r *ReadCacheLookup) FindPaths(id [32]byte, serializedLength uint64) [][]byte {
	if serializedLength < 4 {
		return nil
	}
	maxBytesForPathEncoding := serializedLength - 1 // 1 byte for the 0xFE marker
	var maxPathLength uint64
	if maxBytesForPathEncoding*8 >= 1 {
		maxPathLength = maxBytesForPathEncoding*8 - 1
	}

	seen := map[[32]byte]bool{id: true}
	partials := []partialPath{{node: id}}
	var responses [][]byte

	for len(partials) > 0 {
		var next []partialPath
		for _, pp := range partials {
			if pp.node == r.rootHash {
				pathLen := pathAtomLength(uint64(len(pp.bits)) + 1)
				if pathLen <= maxBytesForPathEncoding {
					responses = append(responses, reversedPathToBytes(pp.bits))
				}
				continue
			}
			for _, edge := range r.parentLookup[pp.node] {
				if r.count[edge.parent] > 0 && !seen[edge.parent] {
					if uint64(len(pp.bits)) > maxPathLength {
						return responses
					}
					if uint64(len(pp.bits)) < maxPathLength {
						bits := make([]bool, len(pp.bits), len(pp.bits)+1)
						copy(bits, pp.bits)
						bits = append(bits, edge.isRight)
						next = append(next, partialPath{node: edge.parent, bits: bits})
					}
				}
				seen[edge.parent] = true
			}
		}
		if len(responses) > 0 {
			break
		}
		partials = next
	}
	return responses
}

// FindPath returns the lexicographically smallest of FindPaths' results.
func (r *ReadCacheLookup) FindPath(id [32]byte, serializedLength uint64) ([]byte, bool) {
	paths := r.FindPaths(id, serializedLength)
	if len(paths) == 0 {
		return nil, false
	}
	best := paths[0]
	for _, p := range paths[1:] {
		if compareBytes(p, best) < 0 {
			best = p
		}
	}
	return best, true
}

// reversedPathToBytes turns a list of left(false)/right(true) steps,
// ordered from the target outward to the root, into the path atom's
// canonical byte encoding: an empty path is the single byte 1; each
// further step doubles the accumulated value and adds the step's bit,
// per spec.md §4.3's "reversed big-integer with a sentinel high bit."
func reversedPathToBytes(bits []bool) []byte {
	byteCount := (len(bits) + 1 + 7) >> 3
	v := make([]byte, byteCount)
	index := byteCount - 1
	mask := byte(1)
	for i := len(bits) - 1; i >= 0; i-- {
		if bits[i] {
			v[index] |= mask
		}
		if mask == 0x80 {
			index--
			mask = 1
		} else {
			mask <<= 1
		}
	}
	v[index] |= mask
	return v
}
