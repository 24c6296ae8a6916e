// Package allocator implements the arena described in spec.md §3/§4.1: a
// single owning store for the two node shapes (Atom, Pair) of the CLVM tree
// model, handed out as small copyable NodePtr handles. Nodes live for the
// lifetime of the Allocator and are released only in bulk, by restoring a
// Checkpoint.
//
// The grow-only table-of-records design (a shared byte heap plus parallel
// atom/pair record tables) is the same shape cznic-exp/lldb documents for
// its own Filer-backed block allocator (handles as integer offsets into a
// linear store, checkpoint-style truncation instead of per-node free), cut
// down to a pure in-memory arena since the spec has no on-disk persistence
// requirement (spec.md §1 Non-goals: persistence).
package allocator

import (
	"math/big"

	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/internal/safemath"
)

// Limits bounds the arena's growth, matching spec.md §3's "atom-count and
// pair-count are each bounded" / "total heap bytes is bounded" invariants
// and SPEC_FULL.md's LIMIT_HEAP dialect flag.
type Limits struct {
	MaxAtoms    int
	MaxPairs    int
	MaxHeapSize int64
}

// DefaultLimits mirrors the generous ceilings clvm_rs ships for general use
// (not mempool-restricted). Nothing in this module tightens them when the
// LimitHeap flag is set; tighter ceilings come only from passing other
// Limits to NewWithLimits.
var DefaultLimits = Limits{
	MaxAtoms:    50_000_000,
	MaxPairs:    50_000_000,
	MaxHeapSize: 1 << 31,
}

type atomRecord struct {
	offset int64
	length int64
}

type pairRecord struct {
	first, rest NodePtr
}

// Allocator owns all tree storage for one evaluation. It is not safe for
// concurrent use (spec.md §5): an Allocator is exclusive to one goroutine,
// and concurrent readers must instead work from an immutable Checkpoint
// snapshot taken by the owner.
type Allocator struct {
	limits Limits

	heap  []byte
	atoms []atomRecord
	pairs []pairRecord

	smallIntCount int64 // counter only; small ints carry their value inline
}

// New creates an Allocator with DefaultLimits and preallocates the NIL atom
// at atoms[0], so NilPtr() is always a valid handle into a fresh Allocator.
func New() *Allocator {
	return NewWithLimits(DefaultLimits)
}

// NewWithLimits creates an Allocator bounded by limits.
func NewWithLimits(limits Limits) *Allocator {
	a := &Allocator{limits: limits}
	a.atoms = append(a.atoms, atomRecord{offset: 0, length: 0})
	return a
}

// NilPtr returns the distinguished empty-atom handle (spec.md §3's NIL).
func (a *Allocator) NilPtr() NodePtr {
	return NodePtr{kind: kindAtom, idx: 0}
}

// NewAtom copies bytes into the heap and records a new atom. An all-zero
// one-byte input and the empty input are distinct atoms, as required by
// spec.md §4.1 — they simply get distinct atom records; NewAtom never
// canonicalizes or dedupes on construction.
func (a *Allocator) NewAtom(bytes []byte) (NodePtr, error) {
	if len(a.atoms) >= a.limits.MaxAtoms {
		return NodePtr{}, clvmerr.ErrTooManyAtoms
	}
	newLen, overflow := safemath.SafeAdd(uint64(len(a.heap)), uint64(len(bytes)))
	if overflow || int64(newLen) > a.limits.MaxHeapSize {
		return NodePtr{}, clvmerr.ErrOutOfMemory
	}
	off := int64(len(a.heap))
	a.heap = append(a.heap, bytes...)
	a.atoms = append(a.atoms, atomRecord{offset: off, length: int64(len(bytes))})
	return NodePtr{kind: kindAtom, idx: int32(len(a.atoms) - 1)}, nil
}

// NewSmallNumber constructs an atom for n, avoiding heap storage by
// inlining n directly into the handle whenever n fits a machine word.
func (a *Allocator) NewSmallNumber(n int64) (NodePtr, error) {
	a.smallIntCount++
	if n == 0 {
		// Zero's canonical encoding is the empty atom; keep it indistinguishable
		// from NewAtom(nil) for atom-equality purposes by routing through the
		// heap path instead of a dedicated "small zero" tag.
		return a.NewAtom(nil)
	}
	return NodePtr{kind: kindSmallInt, small: n}, nil
}

// NewNumber constructs an atom whose bytes are the minimal two's-complement
// big-endian representation of n (empty bytes for zero), per spec.md §4.1.
func (a *Allocator) NewNumber(n *big.Int) (NodePtr, error) {
	if word, ok := smallNumberWord(n); ok {
		return a.NewSmallNumber(word)
	}
	return a.NewAtom(bigIntToBytes(n))
}

// NewPair creates an ordered pair of two handles already owned by a.
func (a *Allocator) NewPair(first, rest NodePtr) (NodePtr, error) {
	if len(a.pairs) >= a.limits.MaxPairs {
		return NodePtr{}, clvmerr.ErrTooManyPairs
	}
	a.pairs = append(a.pairs, pairRecord{first: first, rest: rest})
	return NodePtr{kind: kindPair, idx: int32(len(a.pairs) - 1)}, nil
}

// NewConcat concatenates the atom payloads of nodes into one new atom,
// failing if the computed length doesn't match totalLen or any element
// isn't an atom, per spec.md §4.1.
func (a *Allocator) NewConcat(totalLen int, nodes []NodePtr) (NodePtr, error) {
	out := make([]byte, 0, totalLen)
	for _, n := range nodes {
		if n.IsPair() {
			return NodePtr{}, clvmerr.ErrExpectedAtomGotPair
		}
		out = append(out, a.AtomBytes(n)...)
	}
	if len(out) != totalLen {
		return NodePtr{}, clvmerr.ErrBadEncoding
	}
	return a.NewAtom(out)
}

// NewSubstr views the sub-range [start, end) of atom's payload without
// copying, by pointing a new atom record at the same heap bytes (when the
// source atom is heap-backed) or materializing a fresh small slice (when
// the source is an inlined small integer, which has no heap home to view
// into).
func (a *Allocator) NewSubstr(atom NodePtr, start, end int) (NodePtr, error) {
	if atom.IsPair() {
		return NodePtr{}, clvmerr.ErrExpectedAtomGotPair
	}
	full := a.AtomBytes(atom)
	if start < 0 || end < start || end > len(full) {
		return NodePtr{}, clvmerr.ErrBadEncoding
	}
	if atom.kind == kindSmallInt {
		return a.NewAtom(full[start:end])
	}
	rec := a.atoms[atom.idx]
	newRec := atomRecord{offset: rec.offset + int64(start), length: int64(end - start)}
	a.atoms = append(a.atoms, newRec)
	return NodePtr{kind: kindAtom, idx: int32(len(a.atoms) - 1)}, nil
}

// Sexp dereferences handle into either an atom view or a pair view.
func (a *Allocator) Sexp(handle NodePtr) Sexp {
	if handle.IsPair() {
		p := a.pairs[handle.idx]
		return Sexp{IsPair: true, Pair: PairView{First: p.first, Rest: p.rest}}
	}
	return Sexp{Atom: AtomView{Bytes: a.AtomBytes(handle)}}
}

// AtomBytes returns the byte view for an atom handle. Panics if handle is a
// pair; callers that accept either shape must check IsPair first.
func (a *Allocator) AtomBytes(handle NodePtr) []byte {
	switch handle.kind {
	case kindSmallInt:
		return bigIntToBytes(big.NewInt(handle.small))
	case kindAtom:
		rec := a.atoms[handle.idx]
		return a.heap[rec.offset : rec.offset+rec.length]
	default:
		panic("allocator: AtomBytes called on a pair handle")
	}
}

// AtomLen returns the atom's byte length without materializing a slice.
func (a *Allocator) AtomLen(handle NodePtr) int {
	if handle.kind == kindSmallInt {
		return len(bigIntToBytes(big.NewInt(handle.small)))
	}
	return int(a.atoms[handle.idx].length)
}

// AtomEq reports byte-for-byte equality of two atoms. This is distinct from
// numeric equality (spec.md §4.1): "00 01" and "01" are byte-unequal atoms
// even though both encode the integer 1 (the first non-minimally); AtomEq
// never re-encodes, it only compares bytes.
func (a *Allocator) AtomEq(x, y NodePtr) bool {
	xb, yb := a.AtomBytes(x), a.AtomBytes(y)
	if len(xb) != len(yb) {
		return false
	}
	for i := range xb {
		if xb[i] != yb[i] {
			return false
		}
	}
	return true
}

// Number decodes an atom's bytes as a minimal two's-complement big integer.
func (a *Allocator) Number(handle NodePtr) *big.Int {
	if handle.kind == kindSmallInt {
		return big.NewInt(handle.small)
	}
	return bytesToBigInt(a.AtomBytes(handle))
}

// SmallNumber returns (word, true) if handle is inlined as a small integer
// or its atom bytes happen to fit a machine word; (0, false) otherwise.
func (a *Allocator) SmallNumber(handle NodePtr) (int64, bool) {
	if handle.kind == kindSmallInt {
		return handle.small, true
	}
	n := bytesToBigInt(a.AtomBytes(handle))
	return smallNumberWord(n)
}

// AtomCount and PairCount report current table sizes, used by Checkpoint
// and by callers enforcing their own ceilings (e.g. LIMIT_HEAP).
func (a *Allocator) AtomCount() int { return len(a.atoms) }
func (a *Allocator) PairCount() int { return len(a.pairs) }
func (a *Allocator) HeapLen() int64 { return int64(len(a.heap)) }
