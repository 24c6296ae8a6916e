package opset

import (
	"bytes"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// registerCompareOps wires >s (byte-lexicographic comparison) and the
// boolean connectives not/any/all, which operate on CLVM truthiness
// rather than on bytes.
func registerCompareOps(table map[byte]opFunc) {
	table[opGtBytes] = opGtBytesFn
	table[opNot] = opNotFn
	table[opAny] = opAnyFn
	table[opAll] = opAllFn
}

func opGtBytesFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
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
	cost := grsBaseCost + uint64(len(lhs)+len(rhs))*grsCostPerByte
	if bytes.Compare(lhs, rhs) > 0 {
		one, oerr := alloc.NewSmallNumber(1)
		if oerr != nil {
			return 0, allocator.NodePtr{}, oerr
		}
		return cost, one, nil
	}
	return cost, alloc.NilPtr(), nil
}

func opNotFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 1 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	result := alloc.NilPtr()
	if !isTruthy(alloc, a[0]) {
		var rerr error
		result, rerr = alloc.NewSmallNumber(1)
		if rerr != nil {
			return 0, allocator.NodePtr{}, rerr
		}
	}
	return boolBaseCost + boolCostPerArg, result, nil
}

func opAnyFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	result := alloc.NilPtr()
	for _, n := range a {
		if isTruthy(alloc, n) {
			var rerr error
			result, rerr = alloc.NewSmallNumber(1)
			if rerr != nil {
				return 0, allocator.NodePtr{}, rerr
			}
			break
		}
	}
	return boolBaseCost + uint64(len(a))*boolCostPerArg, result, nil
}

func opAllFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	allTrue := true
	for _, n := range a {
		if !isTruthy(alloc, n) {
			allTrue = false
			break
		}
	}
	result := alloc.NilPtr()
	if allTrue {
		var rerr error
		result, rerr = alloc.NewSmallNumber(1)
		if rerr != nil {
			return 0, allocator.NodePtr{}, rerr
		}
	}
	return boolBaseCost + uint64(len(a))*boolCostPerArg, result, nil
}
