package opset

import (
	"math/big"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// registerArithOps wires the variable-arity big-integer family: +, -, *,
// /, divmod, >. Each argument is read as a two's-complement minimal-width
// signed atom via allocator.Number, matching spec.md §4.2's atom-as-
// big-integer convention.
func registerArithOps(table map[byte]opFunc) {
	table[opAdd] = opAddFn
	table[opSub] = opSubFn
	table[opMul] = opMulFn
	table[opDiv] = opDivFn
	table[opDivmod] = opDivmodFn
	table[opGt] = opGtFn
}

func arithNumbers(alloc *allocator.Allocator, args allocator.NodePtr) ([]*big.Int, int, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return nil, 0, err
	}
	nums := make([]*big.Int, len(a))
	totalBytes := 0
	for i, n := range a {
		if _, aerr := requireAtom(alloc, n); aerr != nil {
			return nil, 0, aerr
		}
		nums[i] = alloc.Number(n)
		totalBytes += alloc.AtomLen(n)
	}
	return nums, totalBytes, nil
}

func opAddFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	nums, totalBytes, err := arithNumbers(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	sum := big.NewInt(0)
	for _, n := range nums {
		sum.Add(sum, n)
	}
	cost := arithBaseCost + uint64(len(nums))*arithCostPerArg + uint64(totalBytes)*arithCostPerByte
	result, rerr := alloc.NewNumber(sum)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

func opSubFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	nums, totalBytes, err := arithNumbers(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	acc := big.NewInt(0)
	for i, n := range nums {
		if i == 0 {
			acc.Set(n)
			continue
		}
		acc.Sub(acc, n)
	}
	cost := arithBaseCost + uint64(len(nums))*arithCostPerArg + uint64(totalBytes)*arithCostPerByte
	result, rerr := alloc.NewNumber(acc)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

func opMulFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	product := big.NewInt(1)
	cost := uint64(mulBaseCost)
	prevBytes := 0
	for i, n := range a {
		if _, aerr := requireAtom(alloc, n); aerr != nil {
			return 0, allocator.NodePtr{}, aerr
		}
		v := alloc.Number(n)
		curBytes := alloc.AtomLen(n)
		if i > 0 {
			// Multiplying an accumulator of prevBytes against an operand
			// of curBytes costs like a schoolbook long multiplication:
			// linear in the smaller operand times the larger.
			cost += mulCostPerOp
			small, large := prevBytes, curBytes
			if small > large {
				small, large = large, small
			}
			cost += uint64(small*large) * mulLinearCostPerByte / mulSquareCostPerByteDiv
		}
		product.Mul(product, v)
		prevBytes = len(product.Bytes()) + 1
	}
	result, rerr := alloc.NewNumber(product)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

func opDivFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	nums, totalBytes, err := arithNumbers(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(nums) != 2 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	if nums[1].Sign() == 0 {
		return 0, allocator.NodePtr{}, clvmerr.ErrDivisionByZero
	}
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(nums[0], nums[1], r)
	if r.Sign() != 0 && (r.Sign() < 0) != (nums[1].Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	cost := divBaseCost + uint64(totalBytes)*divCostPerByte
	result, rerr := alloc.NewNumber(q)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

func opDivmodFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	nums, totalBytes, err := arithNumbers(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(nums) != 2 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	if nums[1].Sign() == 0 {
		return 0, allocator.NodePtr{}, clvmerr.ErrDivisionByZero
	}
	// Python-style floor division: adjust Go's truncated QuoRem so the
	// remainder's sign always matches the divisor's, same convention
	// op_div's single-quotient result assumes.
	q, m := new(big.Int), new(big.Int)
	q.QuoRem(nums[0], nums[1], m)
	if m.Sign() != 0 && (m.Sign() < 0) != (nums[1].Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		m.Add(m, nums[1])
	}
	qNode, qerr := alloc.NewNumber(q)
	if qerr != nil {
		return 0, allocator.NodePtr{}, qerr
	}
	mNode, merr := alloc.NewNumber(m)
	if merr != nil {
		return 0, allocator.NodePtr{}, merr
	}
	pair, perr := alloc.NewPair(qNode, mNode)
	if perr != nil {
		return 0, allocator.NodePtr{}, perr
	}
	cost := divmodBaseCost + uint64(totalBytes)*divmodCostPerByte
	return cost, pair, nil
}

func opGtFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	nums, totalBytes, err := arithNumbers(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(nums) != 2 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	cost := grBaseCost + uint64(totalBytes)*grCostPerByte
	if nums[0].Cmp(nums[1]) > 0 {
		one, oerr := alloc.NewSmallNumber(1)
		if oerr != nil {
			return 0, allocator.NodePtr{}, oerr
		}
		return cost, one, nil
	}
	return cost, alloc.NilPtr(), nil
}
