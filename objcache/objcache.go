// Package objcache implements the memoized structural-property caches of
// spec.md §4.4: an ObjectCache[T] is a handle→T mapping computed by a
// folding function over an explicit work stack, so that hashing or
// measuring a long right-leaning list never recurses through Go's call
// stack. The two well-known instances, TreeHash and SerializedLength, live
// in their own files.
package objcache

import "github.com/clvmgo/clvm/allocator"

// AtomFunc computes T for a leaf atom.
type AtomFunc[T any] func(alloc *allocator.Allocator, atom allocator.NodePtr) T

// PairFunc combines the already-computed T values of a pair's two children
// into the T for the pair itself.
type PairFunc[T any] func(alloc *allocator.Allocator, pair allocator.NodePtr, first, rest T) T

// ObjectCache memoizes a fold over a tree, keyed by NodePtr. Results are
// append-only within a cache's lifetime and may be reused across repeated
// Get calls against overlapping subtrees — the common case when hashing a
// program and its sub-expressions during evaluation.
type ObjectCache[T any] struct {
	values map[allocator.NodePtr]T
	atomFn AtomFunc[T]
	pairFn PairFunc[T]
}

// New builds an ObjectCache from its two folding functions.
func New[T any](atomFn AtomFunc[T], pairFn PairFunc[T]) *ObjectCache[T] {
	return &ObjectCache[T]{
		values: make(map[allocator.NodePtr]T),
		atomFn: atomFn,
		pairFn: pairFn,
	}
}

type workKind int8

const (
	workDescend workKind = iota
	workCombine
)

type work struct {
	node allocator.NodePtr
	kind workKind
}

// Get returns the cached T for root, computing (and memoizing) it and any
// uncached descendants first. Uses an explicit stack, not recursion.
func (c *ObjectCache[T]) Get(alloc *allocator.Allocator, root allocator.NodePtr) T {
	if v, ok := c.values[root]; ok {
		return v
	}
	stack := []work{{node: root, kind: workDescend}}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := c.values[w.node]; ok {
			continue
		}
		switch w.kind {
		case workDescend:
			s := alloc.Sexp(w.node)
			if !s.IsPair {
				c.values[w.node] = c.atomFn(alloc, w.node)
				continue
			}
			stack = append(stack,
				work{node: w.node, kind: workCombine},
				work{node: s.Pair.Rest, kind: workDescend},
				work{node: s.Pair.First, kind: workDescend},
			)
		case workCombine:
			s := alloc.Sexp(w.node)
			first := c.values[s.Pair.First]
			rest := c.values[s.Pair.Rest]
			c.values[w.node] = c.pairFn(alloc, w.node, first, rest)
		}
	}
	return c.values[root]
}

// Len reports how many handles currently have a memoized value.
func (c *ObjectCache[T]) Len() int {
	return len(c.values)
}
