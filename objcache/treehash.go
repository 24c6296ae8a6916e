package objcache

import (
	"crypto/sha256"

	"github.com/clvmgo/clvm/allocator"
)

const (
	atomHashPrefix = 0x01
	pairHashPrefix = 0x02
)

// TreeHash builds an ObjectCache computing the 32-byte tree-hash of
// already-allocated nodes, per spec.md §3's
// `H(0x01 || atom_bytes)` / `H(0x02 || hash(left) || hash(right))`. This is
// the structural counterpart to serialize.TreeHashFromStream, which folds
// over a byte stream instead of a tree.
func TreeHash() *ObjectCache[[32]byte] {
	return New(
		func(alloc *allocator.Allocator, atom allocator.NodePtr) [32]byte {
			h := sha256.New()
			h.Write([]byte{atomHashPrefix})
			h.Write(alloc.AtomBytes(atom))
			var sum [32]byte
			copy(sum[:], h.Sum(nil))
			return sum
		},
		func(alloc *allocator.Allocator, pair allocator.NodePtr, first, rest [32]byte) [32]byte {
			h := sha256.New()
			h.Write([]byte{pairHashPrefix})
			h.Write(first[:])
			h.Write(rest[:])
			var sum [32]byte
			copy(sum[:], h.Sum(nil))
			return sum
		},
	)
}
