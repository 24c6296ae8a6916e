package allocator

// nodeKind discriminates the three ways a NodePtr can be realized without
// the caller ever seeing the distinction: a pair-table entry, an atom-table
// entry (heap-backed or a zero-copy substr view), or a small integer
// inlined directly into the handle. spec.md §3: "Handles are discriminated
// unions over the two tables and over the inline-integer encoding."
type nodeKind uint8

const (
	kindAtom nodeKind = iota
	kindPair
	kindSmallInt
	kindSentinel
)

// NodePtr is an opaque, copyable, arena-scoped handle. It is never
// dereferenced directly; sexp(handle) on the owning Allocator is the only
// way to inspect what it refers to. The zero value is not a valid handle
// except as produced by NilPtr() (index 0 of a freshly created Allocator's
// atom table, which is always the empty atom).
type NodePtr struct {
	kind  nodeKind
	idx   int32 // table index for kindAtom / kindPair
	small int64 // inlined value for kindSmallInt
}

// IsPair reports whether the handle refers to a pair.
func (n NodePtr) IsPair() bool { return n.kind == kindPair }

// IsAtom reports whether the handle refers to an atom (heap-backed or
// small-int-inlined).
func (n NodePtr) IsAtom() bool { return n.kind == kindAtom || n.kind == kindSmallInt }

// IsSentinel reports whether the handle is the placeholder Sentinel
// value rather than a real atom or pair. Used by the incremental
// back-reference Serializer (spec.md §4.3) to mark not-yet-serialized
// subtrees within a larger, partially-built tree.
func (n NodePtr) IsSentinel() bool { return n.kind == kindSentinel }

// Sentinel returns the unique placeholder handle: distinct from any atom,
// pair, or small-int handle any Allocator can produce, and equal only to
// itself.
func Sentinel() NodePtr { return NodePtr{kind: kindSentinel} }

// Sexp is the result of dereferencing a NodePtr: exactly one of Atom or
// Pair is the zero value for its kind.
type Sexp struct {
	IsPair bool
	Atom   AtomView
	Pair   PairView
}

// AtomView is a zero-copy view over an atom's bytes. For small-int-inlined
// atoms, Bytes is computed on demand (see Allocator.AtomBytes).
type AtomView struct {
	Bytes []byte
}

// PairView holds the two children of a pair.
type PairView struct {
	First, Rest NodePtr
}
