package analysis

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"blotto-backtest/internal/model"
	"blotto-backtest/internal/montecarlo"
	"blotto-backtest/internal/sampler"
	"blotto-backtest/internal/strategy"
)

type SolveParams struct {
	Totals []int
	// Count is the number of generated candidates per total.
	Count int
	N     int
	M     int
	// Top is how many ranked candidates to keep per total (0 = best only).
	Top int
	// Extra candidates are added to the batch of any total they sum to.
	Extra []model.Allocation
}

// Solution is the selected allocation for one total.
type Solution struct {
	Total      int
	Best       model.Allocation
	Score      float64
	Candidates int
	Top        []Ranked
}

// Solve generates a candidate batch per total and selects the best of each
// against opponents bootstrapped from pool. Every batch is generated before
// any estimate runs, so the candidate sets depend only on the seed, not on n or m.
func Solve(e *montecarlo.Engine, pool []model.Allocation, gen strategy.Generator, src sampler.Source, p SolveParams) ([]Solution, error) {
	if len(pool) == 0 {
		return nil, model.ErrEmptyPool
	}
	if len(p.Totals) == 0 {
		return nil, fmt.Errorf("%w: no totals to solve", model.ErrInvalidParameter)
	}
	if p.Count < 0 {
		return nil, fmt.Errorf("%w: candidate count %d < 0", model.ErrInvalidParameter, p.Count)
	}

	batches := make([][]model.Allocation, len(p.Totals))
	for i, total := range p.Totals {
		batch := strategy.GenerateList(gen, total, p.Count)
		extra := lo.Filter(p.Extra, func(a model.Allocation, _ int) bool {
			return a.Sum() == total
		})
		batches[i] = append(batch, extra...)
	}

	opponents := sampler.NewBootstrap(pool, src)
	log.Debug().Int("pool", opponents.PoolSize()).Int("totals", len(p.Totals)).Msg("solving")
	out := make([]Solution, 0, len(p.Totals))
	for i, total := range p.Totals {
		log.Debug().Int("total", total).Int("candidates", len(batches[i])).
			Int("n", p.N).Int("m", p.M).Str("generator", gen.Name()).Msg("selecting")

		ranked, err := Rank(e, batches[i], opponents, p.N, p.M)
		if err != nil {
			return nil, fmt.Errorf("total %d: %w", total, err)
		}
		keep := min(max(p.Top, 1), len(ranked))
		out = append(out, Solution{
			Total:      total,
			Best:       ranked[0].Allocation,
			Score:      ranked[0].Score,
			Candidates: len(ranked),
			Top:        ranked[:keep],
		})
		log.Debug().Int("total", total).Stringer("best", ranked[0].Allocation).
			Float64("score", ranked[0].Score).Msg("selected")
	}
	return out, nil
}
