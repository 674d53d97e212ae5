package analysis

import (
	"fmt"
	"sort"

	"blotto-backtest/internal/model"
	"blotto-backtest/internal/montecarlo"
)

// Ranked is one candidate with its estimated score. Index is the
// candidate's position in the input.
type Ranked struct {
	Index      int
	Allocation model.Allocation
	Score      float64
}

// SelectBest estimates every candidate with the same engine, sampler, n and m
// and returns the first candidate achieving the maximum estimate.
func SelectBest(e *montecarlo.Engine, candidates []model.Allocation, s montecarlo.OpponentSampler, n, m int) (model.Allocation, float64, error) {
	scored, err := evaluate(e, candidates, s, n, m)
	if err != nil {
		return nil, 0, err
	}
	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[best].Score {
			best = i
		}
	}
	return scored[best].Allocation, scored[best].Score, nil
}

// Rank estimates every candidate and sorts descending by score. Equal
// scores keep input order, so Rank(...)[0] matches SelectBest.
func Rank(e *montecarlo.Engine, candidates []model.Allocation, s montecarlo.OpponentSampler, n, m int) ([]Ranked, error) {
	scored, err := evaluate(e, candidates, s, n, m)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

func evaluate(e *montecarlo.Engine, candidates []model.Allocation, s montecarlo.OpponentSampler, n, m int) ([]Ranked, error) {
	if len(candidates) == 0 {
		return nil, model.ErrEmptyCandidateSet
	}
	if e == nil {
		e = montecarlo.New()
	}
	out := make([]Ranked, 0, len(candidates))
	for idx, c := range candidates {
		score, err := e.Estimate(c, s, n, m)
		if err != nil {
			return nil, fmt.Errorf("candidate %d %v: %w", idx, c, err)
		}
		out = append(out, Ranked{Index: idx, Allocation: c, Score: score})
	}
	return out, nil
}
