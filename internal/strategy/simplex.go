package strategy

import (
	"sort"

	"blotto-backtest/internal/model"
	"blotto-backtest/internal/sampler"
)

// Simplex draws uniformly from every allocation of total units over the
// battlefields (stars and bars): choose battlefields-1 bar positions out
// of total+battlefields-1 slots; the gaps between bars are the allocation.
type Simplex struct {
	battlefields int
	src          sampler.Source
}

func NewSimplex(battlefields int, src sampler.Source) *Simplex {
	if battlefields <= 0 {
		battlefields = model.DefaultBattlefields
	}
	return &Simplex{battlefields: battlefields, src: src}
}

func (s *Simplex) Name() string { return NameSimplex }

func (s *Simplex) Generate(total int) model.Allocation {
	if total < 0 {
		total = 0
	}
	slots := total + s.battlefields - 1
	bars := s.chooseBars(slots, s.battlefields-1)

	out := make(model.Allocation, s.battlefields)
	prev := -1
	for i, b := range bars {
		out[i] = b - prev - 1
		prev = b
	}
	out[s.battlefields-1] = slots - prev - 1
	return out
}

// chooseBars picks k distinct positions in [0, n) with Floyd's algorithm,
// returned in ascending order.
func (s *Simplex) chooseBars(n, k int) []int {
	chosen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		t := s.src.IntN(j + 1)
		if _, ok := chosen[t]; ok {
			t = j
		}
		chosen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}
