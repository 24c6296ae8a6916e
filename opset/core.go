package opset

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
	"github.com/clvmgo/clvm/evaluator"
)

// registerCoreOps wires first/rest/cons/listp/eq/if/raise — spec.md
// §4.6's structural family, grounded directly on allocator.Sexp's
// Pair/Atom view (no new allocation needed except for cons).
func registerCoreOps(table map[byte]opFunc) {
	table[opFirst] = opFirstFn
	table[opRest] = opRestFn
	table[opCons] = opConsFn
	table[opListp] = opListpFn
	table[opEq] = opEqFn
	table[opIf] = opIfFn
	table[opRaise] = opRaiseFn
}

func opFirstFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 1 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	sx := alloc.Sexp(a[0])
	if !sx.IsPair {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	return firstCost, sx.Pair.First, nil
}

func opRestFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 1 {
		return 0, allocator.NodePtr{}, clvmerr.ErrRestOfNonCons
	}
	sx := alloc.Sexp(a[0])
	if !sx.IsPair {
		return 0, allocator.NodePtr{}, clvmerr.ErrRestOfNonCons
	}
	return restCost, sx.Pair.Rest, nil
}

func opConsFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 2 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	p, perr := alloc.NewPair(a[0], a[1])
	if perr != nil {
		return 0, allocator.NodePtr{}, perr
	}
	return consCost, p, nil
}

func opListpFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 1 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	result := alloc.NilPtr()
	if alloc.Sexp(a[0]).IsPair {
		result, err = alloc.NewSmallNumber(1)
		if err != nil {
			return 0, allocator.NodePtr{}, err
		}
	}
	return listpCost, result, nil
}

func opEqFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 2 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	lhs, lerr := requireAtom(alloc, a[0])
	if lerr != nil {
		return 0, allocator.NodePtr{}, lerr
	}
	rhs, rerr := requireAtom(alloc, a[1])
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	cost := eqBaseCost + uint64(len(lhs)+len(rhs))*eqCostPerByte
	if !bytesEqual(lhs, rhs) {
		return cost, alloc.NilPtr(), nil
	}
	one, oerr := alloc.NewSmallNumber(1)
	if oerr != nil {
		return 0, allocator.NodePtr{}, oerr
	}
	return cost, one, nil
}

// opIfFn implements spec.md's notoriously eager "i": since evaluator.Run
// already evaluated every argument (reduction rule 3), both branches are
// fully reduced values by the time this runs — if only selects between
// them, it never skips evaluating the one not taken.
func opIfFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 3 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	if isTruthy(alloc, a[0]) {
		return ifCost, a[1], nil
	}
	return ifCost, a[2], nil
}

func opRaiseFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	payload := alloc.NilPtr()
	if len(a) > 0 {
		payload = a[0]
	}
	return raiseCost, allocator.NodePtr{}, &evaluator.RaiseError{Payload: payload}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
