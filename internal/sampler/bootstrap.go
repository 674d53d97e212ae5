package sampler

import (
	"fmt"

	"blotto-backtest/internal/model"
)

// Sample draws m allocations from pool uniformly and independently, with
// replacement. Duplicates are expected. m == 0 yields an empty population.
// The returned slice shares its elements with pool; callers must not mutate them.
func Sample(pool []model.Allocation, m int, src Source) ([]model.Allocation, error) {
	if len(pool) == 0 {
		return nil, model.ErrEmptyPool
	}
	if m < 0 {
		return nil, fmt.Errorf("%w: population size %d < 0", model.ErrInvalidParameter, m)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is nil", model.ErrInvalidParameter)
	}
	out := make([]model.Allocation, m)
	for i := range out {
		out[i] = pool[src.IntN(len(pool))]
	}
	return out, nil
}

// Bootstrap resamples opponents from a fixed empirical pool. It models an
// opponent as a random member of the observed population.
type Bootstrap struct {
	pool []model.Allocation
	src  Source
}

func NewBootstrap(pool []model.Allocation, src Source) *Bootstrap {
	return &Bootstrap{pool: pool, src: src}
}

func (b *Bootstrap) Sample(m int) ([]model.Allocation, error) {
	return Sample(b.pool, m, b.src)
}

func (b *Bootstrap) PoolSize() int { return len(b.pool) }
