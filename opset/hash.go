package opset

import (
	"crypto/sha256"

	"golang.org/x/crypto/sha3"

	"github.com/clvmgo/clvm/allocator"
	"github.com/clvmgo/clvm/clvmerr"
)

// registerHashOps wires sha256, keccak256 and coinid. sha256/keccak256
// hash the concatenation of every argument's bytes (spec.md §4.6's
// hashing family); coinid is the domain-specific three-argument digest
// supplemented from original_source (see DESIGN.md) rather than named in
// spec.md's operator table.
func registerHashOps(table map[byte]opFunc) {
	table[opSha256] = opSha256Fn
	table[opKeccak256] = opKeccak256Fn
	table[opCoinID] = opCoinIDFn
}

func concatArgBytes(alloc *allocator.Allocator, args allocator.NodePtr) ([]allocator.NodePtr, []byte, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return nil, nil, err
	}
	var buf []byte
	for _, n := range a {
		b, aerr := requireAtom(alloc, n)
		if aerr != nil {
			return nil, nil, aerr
		}
		buf = append(buf, b...)
	}
	return a, buf, nil
}

func opSha256Fn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, buf, err := concatArgBytes(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	digest := sha256.Sum256(buf)
	cost := sha256BaseCost + uint64(len(a))*sha256CostPerArg + uint64(len(buf))*sha256CostPerByte + mallocCost(len(digest))
	result, rerr := alloc.NewAtom(digest[:])
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

func opKeccak256Fn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, buf, err := concatArgBytes(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	digest := sha3.NewLegacyKeccak256()
	digest.Write(buf)
	sum := digest.Sum(nil)
	cost := keccak256BaseCost + uint64(len(a))*keccak256CostPerArg + uint64(len(buf))*keccak256CostPerByte + mallocCost(len(sum))
	result, rerr := alloc.NewAtom(sum)
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}

// opCoinIDFn computes the coin identifier original_source's coin-record
// layer derives a coin's name from: sha256(parent_coin_info || puzzle_hash
// || amount), the three arguments taken in that order.
func opCoinIDFn(alloc *allocator.Allocator, args allocator.NodePtr, maxCost uint64) (uint64, allocator.NodePtr, error) {
	a, err := listArgs(alloc, args)
	if err != nil {
		return 0, allocator.NodePtr{}, err
	}
	if len(a) != 3 {
		return 0, allocator.NodePtr{}, clvmerr.ErrFirstOfNonCons
	}
	var buf []byte
	for _, n := range a {
		b, aerr := requireAtom(alloc, n)
		if aerr != nil {
			return 0, allocator.NodePtr{}, aerr
		}
		buf = append(buf, b...)
	}
	digest := sha256.Sum256(buf)
	cost := coinidBaseCost + uint64(len(buf))*sha256CostPerByte + mallocCost(len(digest))
	result, rerr := alloc.NewAtom(digest[:])
	if rerr != nil {
		return 0, allocator.NodePtr{}, rerr
	}
	return cost, result, nil
}
