package montecarlo

import "blotto-backtest/internal/model"

// TrialRow is one row of per-trial output.
// This is the primary artifact for "what happened" in an estimate.
type TrialRow struct {
	Index int

	PopulationSize int

	Wins   int
	Draws  int
	Losses int

	MeanScore float64
	CumMean   float64
}

type Result struct {
	Strategy model.Allocation
	Trials   []TrialRow

	Mean   float64
	Stdev  float64
	StdErr float64

	Confidence float64
	CILow      float64
	CIHigh     float64
}

// TrialMeans returns the per-trial mean scores in trial order.
func (r *Result) TrialMeans() []float64 {
	out := make([]float64, len(r.Trials))
	for i, t := range r.Trials {
		out[i] = t.MeanScore
	}
	return out
}
