package evaluator

import "github.com/clvmgo/clvm/clvmerr"

// CostPool tracks the cost budget remaining for one evaluation, the same
// single-counter, decrement-or-fail shape as the teacher's core.GasPool
// (AddGas/SubGas/Gas), specialized to a fixed starting budget instead of a
// refillable pool — a CLVM run never gets more cost added mid-flight.
type CostPool struct {
	max       uint64
	remaining uint64
}

// NewCostPool returns a pool with max cost available.
func NewCostPool(max uint64) *CostPool {
	return &CostPool{max: max, remaining: max}
}

// Spend deducts amount from the pool. If amount exceeds what remains, the
// pool is left untouched and a *clvmerr.CostError reporting the total that
// would have been spent is returned.
func (p *CostPool) Spend(amount uint64) error {
	if amount > p.remaining {
		return &clvmerr.CostError{Spent: p.Spent() + amount, Max: p.max}
	}
	p.remaining -= amount
	return nil
}

// Remaining reports the cost still available.
func (p *CostPool) Remaining() uint64 { return p.remaining }

// Spent reports the cost consumed so far.
func (p *CostPool) Spent() uint64 { return p.max - p.remaining }
