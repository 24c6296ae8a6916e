package objcache

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/serialize"
)

// SerializedLength builds an ObjectCache computing the canonical encoded
// byte length of already-allocated nodes, per spec.md §4.4: "for pairs,
// `1 + len(left) + len(right)`; for atoms, prefix-bytes + payload."
func SerializedLength() *ObjectCache[uint64] {
	return New(
		func(alloc *allocator.Allocator, atom allocator.NodePtr) uint64 {
			b := alloc.AtomBytes(atom)
			if len(b) == 1 && b[0] < 0x80 {
				return 1
			}
			prefixLen, err := serialize.AtomPrefixLen(len(b))
			if err != nil {
				// Atoms this large cannot have been legally allocated in
				// the first place; treat as the grammar's own ceiling.
				return uint64(len(b))
			}
			return uint64(prefixLen + len(b))
		},
		func(alloc *allocator.Allocator, pair allocator.NodePtr, first, rest uint64) uint64 {
			return 1 + first + rest
		},
	)
}
