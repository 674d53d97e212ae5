package strategy

import (
	"blotto-backtest/internal/model"
	"blotto-backtest/internal/sampler"
)

// BiasedBattlefields is the only layout the biased generator supports.
const BiasedBattlefields = 10

// Biased draws from hand-tuned, skewed ranges per battlefield: a large
// stake on castle 8, a medium one on castle 7, little on 9 and 10, and the
// remainder spread over the low castles with castle 6 taking what is left.
// It is not uniform over valid allocations.
type Biased struct {
	src sampler.Source
}

func NewBiased(src sampler.Source) *Biased { return &Biased{src: src} }

func (b *Biased) Name() string { return NameBiased }

// Generate treats a negative total as zero.
func (b *Biased) Generate(total int) model.Allocation {
	total = max(total, 0)
	s := make(model.Allocation, BiasedBattlefields)
	left := total

	c8 := b.pick(max(0, total/5-4), min(total/3+4, total+1))
	left -= c8
	c7 := b.pick(max(0, total/8-4), min(left, total/3+4))
	left -= c7
	c9 := b.pick(0, min(left, total/10))
	left -= c9
	c10 := b.pick(0, min(left, total/10))
	left -= c10
	s[6], s[7], s[8], s[9] = c7, c8, c9, c10

	for i := 4; i >= 0; i-- {
		v := b.pick(0, min(left+1, total/3+4))
		s[i] = v
		left -= v
	}
	s[5] = left
	return s
}

// pick is uniform over [lo, hi). An empty range yields hi, which callers
// always bound by the units still unallocated.
func (b *Biased) pick(lo, hi int) int {
	if hi <= lo {
		return max(hi, 0)
	}
	return lo + b.src.IntN(hi-lo)
}
