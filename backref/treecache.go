package backref

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/objcache"
)

// TreeCache is the write-side structure spec.md §4.3 describes: "every
// distinct subtree (keyed by tree-hash) with its position in the current
// parse stack and its serialized length," built on top of a
// ReadCacheLookup kept in lock-step with the bytes actually written so the
// encoder and a hypothetical decoder agree on what's reachable by
// back-reference.
type TreeCache struct {
	lookup  *ReadCacheLookup
	hashOf  *objcache.ObjectCache[[32]byte]
	lengths map[[32]byte]uint64
}

// NewTreeCache builds an empty cache; the allocator is supplied later, on
// each Push, Pop2AndCons and FindBackref call.
func NewTreeCache() *TreeCache {
	return &TreeCache{
		lookup:  NewReadCacheLookup(),
		hashOf:  objcache.TreeHash(),
		lengths: map[[32]byte]uint64{},
	}
}

// Push records that node (whose canonical serialized length is
// serializedLength) was just written as the new top of the parse stack.
func (c *TreeCache) Push(alloc *allocator.Allocator, node allocator.NodePtr, serializedLength uint64) {
	id := c.hashOf.Get(alloc, node)
	c.lengths[id] = serializedLength
	c.lookup.Push(id)
}

// Pop2AndCons records the decoder-mirroring pop/pop/cons step once a pair's
// two children have both been written.
func (c *TreeCache) Pop2AndCons(alloc *allocator.Allocator, pair allocator.NodePtr, serializedLength uint64) {
	c.lookup.Pop2AndCons()
	id := c.hashOf.Get(alloc, pair)
	c.lengths[id] = serializedLength
}

// treeCacheSnapshot is a deep copy of a TreeCache's mutable state, used to
// roll back partial writes if an encode pass fails partway through (an
// oversized atom, say) so a later retry starts clean.
type treeCacheSnapshot struct {
	rootHash     [32]byte
	readStack    [][2][32]byte
	count        map[[32]byte]int32
	parentLookup map[[32]byte][]parentEdge
	lengths      map[[32]byte]uint64
}

func (c *TreeCache) snapshot() treeCacheSnapshot {
	readStack := make([][2][32]byte, len(c.lookup.readStack))
	copy(readStack, c.lookup.readStack)

	count := make(map[[32]byte]int32, len(c.lookup.count))
	for k, v := range c.lookup.count {
		count[k] = v
	}

	parentLookup := make(map[[32]byte][]parentEdge, len(c.lookup.parentLookup))
	for k, edges := range c.lookup.parentLookup {
		cp := make([]parentEdge, len(edges))
		copy(cp, edges)
		parentLookup[k] = cp
	}

	lengths := make(map[[32]byte]uint64, len(c.lengths))
	for k, v := range c.lengths {
		lengths[k] = v
	}

	return treeCacheSnapshot{
		rootHash:     c.lookup.rootHash,
		readStack:    readStack,
		count:        count,
		parentLookup: parentLookup,
		lengths:      lengths,
	}
}

func (c *TreeCache) restore(snap treeCacheSnapshot) {
	c.lookup.rootHash = snap.rootHash
	c.lookup.readStack = snap.readStack
	c.lookup.count = snap.count
	c.lookup.parentLookup = snap.parentLookup
	c.lengths = snap.lengths
}

// FindBackref looks for a back-reference to node that would be strictly
// shorter than node's own canonical encoding, per the TreeCache invariant
// in spec.md §4.4: "the serialized length of the referenced subtree is
// strictly greater than the serialized length of the back-reference
// encoding itself."
func (c *TreeCache) FindBackref(alloc *allocator.Allocator, node allocator.NodePtr) ([]byte, bool) {
	id := c.hashOf.Get(alloc, node)
	length, ok := c.lengths[id]
	if !ok {
		return nil, false
	}
	path, ok := c.lookup.FindPath(id, length)
	if !ok {
		return nil, false
	}
	encoded, err := encodePathAtom(path)
	if err != nil || uint64(len(encoded))+1 >= length {
		return nil, false
	}
	return path, true
}
