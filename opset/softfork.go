package opset

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/evaluator"
)

// runSoftfork implements spec.md §4.5's soft-fork extension mechanism:
// (softfork declared_cost extension_level program env). It runs program
// against env through a nested evaluator.Run frozen to declared_cost, then
// requires the nested run to have spent exactly that much — a forward-
// compatibility gate that lets new node software add operators under a
// declared, auditable cost envelope old software can still charge for
// without understanding.
//
// Only extension_level 0 is implemented: this module's own Default table
// reused unchanged as the "extended" dialect, since no further extension
// table was recoverable from the retrieved reference pack (see
// DESIGN.md).
func runSoftfork(d *Default, alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64, flags evaluator.Flags) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 4 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	if _, derr := requireAtom(alloc, a[0]); derr != nil {
		return 0, allocator.NodePtr{}, derr
	}
	declared := alloc.Number(a[0])
	if !declared.IsUint64() {
		return 0, allocator.NodePtr{}, clvmerr.ErrSoftforkSpecifiedCostMismatch
	}
	budget := declared.Uint64()
	if budget > maxCost {
		return 0, allocator.NodePtr{}, clvmerr.ErrCostExceeded
	}

	extLevel := alloc.Number(a[1])
	if extLevel.Sign() != 0 {
		return 0, allocator.NodePtr{}, clvmerr.ErrUnknownSoftforkExtension
	}

	program, env := a[2], a[3]
	cfg := evaluator.Config{Dialect: d, Flags: flags, MaxCost: budget}
	spent, _, rerr := evaluator.Run(nil, alloc, program, env, cfg)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	if spent != budget {
		return 0, allocator.NodePtr{}, clvmerr.ErrSoftforkSpecifiedCostMismatch
	}
	return budget, alloc.NilPtr(), nil
}
