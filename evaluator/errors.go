package evaluator

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// RaiseError is produced by the hardwired raise path and by any operator
// that wants to surface a user-visible failure together with a payload
// (spec.md §7's "user" error kind). It unwraps to clvmerr.ErrRaise so
// callers that only care whether a run raised, not what with, can use
// errors.Is(err, clvmerr.ErrRaise).
type RaiseError struct {
	Payload allocator.NodePtr
}

func (e *RaiseError) Error() string { return "clvm: raise" }
func (e *RaiseError) Unwrap() error { return clvmerr.ErrRaise }
