package opset

import (
	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// registerBytesOps wires concat, strlen and substr, spec.md §4.6's
// byte-manipulation family. concat and substr go through
// allocator.NewConcat/NewSubstr so a substr view stays zero-copy exactly
// as allocator.go's own doc comment describes for those constructors.
func registerBytesOps(table map[byte]opFunc) {
	table[opConcat] = opConcatFn
	table[opStrlen] = opStrlenFn
	table[opSubstr] = opSubstrFn
}

func opConcatFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	total := 0
	for _, n := range a {
		if _, aerr := requireAtom(alloc, n); aerr != nil {
			return 0, allocator.NodePtr{}, aerr
		}
		total += alloc.AtomLen(n)
	}
	cost := concatBaseCost + uint64(len(a))*concatCostPerArg + uint64(total)*concatCostPerByte + mallocCost(total)
	result, rerr := alloc.NewConcat(total, a)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

func opStrlenFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 1 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	if _, aerr := requireAtom(alloc, a[0]); aerr != nil {
		return 0, allocator.NodePtr{}, aerr
	}
	n := alloc.AtomLen(a[0])
	cost := strlenBaseCost + uint64(n)*strlenCostPerByte
	result, rerr := alloc.NewSmallNumber(int64(n))
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

func opSubstrFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 2 && len(a) != 3 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	atomBytes, aerr := requireAtom(alloc, a[0])
	if aerr != nil {
		return 0, allocator.NodePtr{}, aerr
	}
	start, serr := substrIndex(alloc, a[1])
	if serr != nil {
		return 0, allocator.NodePtr{}, serr
	}
	end := len(atomBytes)
	if len(a) == 3 {
		end, serr = substrIndex(alloc, a[2])
		if serr != nil {
			return 0, allocator.NodePtr{}, serr
		}
	}
	if start < 0 || end > len(atomBytes) || start > end {
		return 0, allocator.NodePtr{}, clvmerr.ErrBadEncoding
	}
	result, rerr := alloc.NewSubstr(a[0], start, end)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return substrCost, result, nil
}

func substrIndex(alloc *allocator.Allocator, n allocator.NodePtr) (int, error) {
	if _, aerr := requireAtom(alloc, n); aerr != nil {
		return 0, aerr
	}
	v := alloc.Number(n)
	if !v.IsInt64() {
		return 0, clvmerr.ErrBadEncoding
	}
	return int(v.Int64()), nil
}
