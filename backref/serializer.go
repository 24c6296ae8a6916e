package backref

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/objcache"
	"github.com/clvmgo/clvm/serialize"
)

type opKind uint8

const (
	opEmit opKind = iota
	opCombine
)

type work struct {
	node allocator.NodePtr
	kind opKind
}

// Serializer is the back-reference-aware encoder of spec.md §4.3. Its
// TreeCache persists across calls to Add, so later roots can
// back-reference subtrees introduced by earlier ones — the sense in which
// the API is "incremental": a caller streaming a sequence of related
// top-level objects shares one growing table of what's already been
// written instead of starting from an empty stack each time.
type Serializer struct {
	sentinel allocator.NodePtr
	cache    *TreeCache
	lenOf    *objcache.ObjectCache[uint64]
}

// NewSerializer returns an encoder with an empty back-reference table. Its
// Sentinel method returns the placeholder handle recognized by Add.
func NewSerializer() *Serializer {
	return &Serializer{
		sentinel: allocator.Sentinel(),
		cache:    NewTreeCache(),
		lenOf:    objcache.SerializedLength(),
	}
}

// Sentinel returns the unique placeholder node that marks a not-yet-ready
// subtree within a tree passed to Add.
func (s *Serializer) Sentinel() allocator.NodePtr { return s.sentinel }

// Add encodes root, substituting a back-reference for any subtree whose
// tree-hash the Serializer has already written more cheaply than its
// canonical form. If root contains the Sentinel anywhere, Add performs no
// output and no cache updates and returns done=false: per spec.md §4.3,
// "calling add with a tree that still contains the sentinel is valid and
// yields done=false." Once a root free of the Sentinel is supplied,
// Add's output for that single call is identical to encoding root with
// back-references from scratch (determinism), modulo whatever
// back-reference opportunities earlier Add calls made available.
func (s *Serializer) Add(alloc *allocator.Allocator, root allocator.NodePtr) (done bool, out []byte, err error) {
	if containsSentinel(alloc, s.sentinel, root) {
		return false, nil, nil
	}

	checkpoint := s.cache.snapshot()
	out, err = s.encode(alloc, root)
	if err != nil {
		s.cache.restore(checkpoint)
		return false, nil, err
	}
	return true, out, nil
}

func containsSentinel(alloc *allocator.Allocator, sentinel, node allocator.NodePtr) bool {
	stack := []allocator.NodePtr{node}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		if cur == sentinel {
			return true
		}
		if cur.IsSentinel() || cur.IsAtom() {
			continue
		}
		s := alloc.Sexp(cur)
		stack = append(stack, s.Pair.First, s.Pair.Rest)
	}
	return false
}

func (s *Serializer) encode(alloc *allocator.Allocator, root allocator.NodePtr) ([]byte, error) {
	var out []byte
	stack := []work{{node: root, kind: opEmit}}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch w.kind {
		case opCombine:
			length := s.lenOf.Get(alloc, w.node)
			s.cache.Pop2AndCons(alloc, w.node, length)

		case opEmit:
			if path, ok := s.cache.FindBackref(alloc, w.node); ok {
				out = append(out, serialize.BackrefMarker)
				encoded, err := encodePathAtom(path)
				if err != nil {
					return nil, err
				}
				out = append(out, encoded...)
				length := s.lenOf.Get(alloc, w.node)
				s.cache.Push(alloc, w.node, length)
				continue
			}

			sx := alloc.Sexp(w.node)
			if sx.IsPair {
				out = append(out, serialize.PairMarker)
				stack = append(stack, work{node: w.node, kind: opCombine})
				stack = append(stack, work{node: sx.Pair.Rest, kind: opEmit})
				stack = append(stack, work{node: sx.Pair.First, kind: opEmit})
				continue
			}

			encodedAtom, err := encodeAtom(sx.Atom.Bytes)
			if err != nil {
				return nil, err
			}
			out = append(out, encodedAtom...)
			length := s.lenOf.Get(alloc, w.node)
			s.cache.Push(alloc, w.node, length)
		}
	}
	return out, nil
}

func encodeAtom(b []byte) ([]byte, error) {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}, nil
	}
	prefixLen, err := serialize.AtomPrefixLen(len(b))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, prefixLen+len(b))
	out = appendAtomPrefix(out, len(b))
	return append(out, b...), nil
}

// encodePathAtom serializes a path exactly as any other atom: the path's
// bytes, canonically length-prefixed.
func encodePathAtom(path []byte) ([]byte, error) {
	return encodeAtom(path)
}

func appendAtomPrefix(out []byte, length int) []byte {
	switch {
	case length == 0:
		return append(out, 0x80)
	case length < 0x40:
		return append(out, 0x80|byte(length))
	case length < 0x2000:
		return append(out, 0xC0|byte(length>>8), byte(length))
	case length < 0x10_0000:
		return append(out, 0xE0|byte(length>>16), byte(length>>8), byte(length))
	case length < 0x800_0000:
		return append(out, 0xF0|byte(length>>24), byte(length>>16), byte(length>>8), byte(length))
	default:
		return append(out,
			0xF8|byte(length>>32),
			byte(length>>24), byte(length>>16), byte(length>>8), byte(length),
		)
	}
}
