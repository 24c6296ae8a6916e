// Package clvm is the public façade spec.md §6 describes: the small set
// of entry points a host embeds this module through, each a thin call
// into the package that actually implements it. Nothing here carries
// behavior of its own — it exists so callers depend on one stable import
// instead of reaching into allocator/serialize/backref/evaluator/opset
// directly.
package clvm

import (
	"context"
	"io"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/backref"
	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/evaluator"
	"github.com/clvmgo/clvm/internal/clvmlog"
	"github.com/clvmgo/clvm/objcache"
	"github.com/clvmgo/clvm/opset"
	"github.com/clvmgo/clvm/serialize"
)

// Re-exported so callers configuring a Run don't need a second import for
// the flag type and dialect constructors.
type (
	Flags     = evaluator.Flags
	OpSet     = evaluator.OpSet
	NodePtr   = allocator.NodePtr
	Allocator = allocator.Allocator
)

const (
	NoUnknownOps = evaluator.NoUnknownOps
	EnableGC     = evaluator.EnableGC
	MempoolMode  = evaluator.MempoolMode
	LimitHeap    = evaluator.LimitHeap
)

// NewAllocator returns an arena with the generous default limits; use
// NewAllocatorWithLimits for a MEMPOOL_MODE-style tightened arena.
func NewAllocator() *allocator.Allocator { return allocator.New() }

func NewAllocatorWithLimits(limits allocator.Limits) *allocator.Allocator {
	return allocator.NewWithLimits(limits)
}

// DefaultDialect is the full operator dialect (spec.md §4.6's operator
// families). The mod and modpow opcodes are defined in opset but not
// registered in it, so this dialect handles them as unknown operators.
// QuotedDialect is the minimal embedding dialect exposing only
// quote/apply/softfork.
func DefaultDialect() OpSet { return opset.NewDefault() }
func QuotedDialect() OpSet  { return opset.NewQuoted() }

// Parse decodes a canonical byte stream into alloc, per spec.md §4.2.
func Parse(alloc *allocator.Allocator, data []byte) (allocator.NodePtr, int, error) {
	return serialize.Decode(alloc, data)
}

// ParseWithBackrefs decodes a byte stream that may contain back-references
// (spec.md §4.3) into alloc.
func ParseWithBackrefs(alloc *allocator.Allocator, data []byte) (allocator.NodePtr, int, error) {
	return backref.Decode(alloc, data)
}

// Emit encodes root canonically, with no back-reference folding.
func Emit(alloc *allocator.Allocator, root allocator.NodePtr) ([]byte, error) {
	return serialize.Encode(alloc, root)
}

// EmitWithBackrefs encodes root using a fresh back-reference table,
// folding any repeated subtree into a shorter reference where doing so is
// strictly cheaper than writing it out again (spec.md §4.3's invariant).
func EmitWithBackrefs(alloc *allocator.Allocator, root allocator.NodePtr) ([]byte, error) {
	s := backref.NewSerializer()
	_, out, err := s.Add(alloc, root)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EmitWithLimit encodes root canonically, failing with LimitExceeded-
// shaped error the moment the output would exceed byteLimit.
func EmitWithLimit(alloc *allocator.Allocator, root allocator.NodePtr, byteLimit int) ([]byte, error) {
	return serialize.EncodeWithLimit(alloc, root, byteLimit)
}

// SerializedLength reports how many bytes a canonical stream occupies
// without building a tree; truncated input is an error.
func SerializedLength(data []byte) (uint64, error) {
	return serialize.SerializedLengthFromBytes(data)
}

// TreeHashOfStream computes a canonical stream's tree-hash directly from
// its bytes, without constructing a tree — spec.md §8's tree-hash
// invariance property holds between this and TreeHash(alloc, node).
func TreeHashOfStream(data []byte) ([32]byte, error) {
	return serialize.TreeHashFromStream(data)
}

// TreeHash computes node's tree-hash structurally, memoizing shared
// subtrees via an ObjectCache.
func TreeHash(alloc *allocator.Allocator, node allocator.NodePtr) [32]byte {
	return objcache.TreeHash().Get(alloc, node)
}

// ParseTriples indexes a single canonical object at the start of data
// without materializing a tree (spec.md §6's external-indexer interface).
func ParseTriples(data []byte) ([]serialize.Triple, error) {
	return serialize.ParseTriples(data)
}

// Config bundles a Run's dialect, flags, cost ceiling and optional tracer.
type Config = evaluator.Config

// NewTracer returns a Config.Tracer that writes opcode-dispatch and
// cost-accounting trace records to w as plain text.
// Tracing is opt-in; a zero-value Config traces nothing.
func NewTracer(w io.Writer) clvmlog.Logger {
	return clvmlog.New(w)
}

// Run reduces program against env under cfg, per spec.md §4.5. ctx, if
// non-nil, is checked at operation-stack pop boundaries and aborts the
// run with ctx.Err() on cancellation.
func Run(ctx context.Context, alloc *allocator.Allocator, program, env allocator.NodePtr, cfg Config) (cost uint64, result allocator.NodePtr, err error) {
	return evaluator.Run(ctx, alloc, program, env, cfg)
}

// InternStats reports what Intern folded away.
type InternStats = allocator.InternStats

// Intern copies root from src into a fresh dst allocator, deduplicating
// any structurally-equal subtrees it encounters (spec.md §4.4): the
// result has the same tree-hash and the same canonical encoding as root,
// but dst's atom_count/pair_count never exceed what a non-deduplicating
// copy would have produced.
func Intern(src *allocator.Allocator, root allocator.NodePtr) (dst *allocator.Allocator, internedRoot allocator.NodePtr, stats InternStats, err error) {
	dst = allocator.New()
	internedRoot, stats, err = allocator.Intern(src, dst, root)
	return dst, internedRoot, stats, err
}

// IsCanonical reports whether data is exactly the canonical encoding of
// the single object it parses to, with no back-references.
func IsCanonical(data []byte) bool { return serialize.IsCanonical(data) }

// ErrRaise, when present in a Run error via errors.Is, means the program
// itself invoked the raise operator; the payload is available on the
// underlying *evaluator.RaiseError via errors.As.
var ErrRaise = clvmerr.ErrRaise
