// Package montecarlo estimates a strategy's expected score against an
// opponent population by repeated bootstrap trials.
package montecarlo

import (
	"fmt"

	"blotto-backtest/internal/model"
)

// OpponentSampler produces a fresh opponent population of size m.
type OpponentSampler interface {
	Sample(m int) ([]model.Allocation, error)
}

type Engine struct {
	// Confidence is the two-sided interval (in percent) reported by
	// EstimateDetailed. Zero means DefaultConfidence.
	Confidence float64
}

func New() *Engine { return &Engine{} }

// ScoreAgainstPopulation is the mean of strategy's own score over every
// member of population.
func ScoreAgainstPopulation(strategy model.Allocation, population []model.Allocation) (float64, error) {
	t, err := playPopulation(strategy, population)
	if err != nil {
		return 0, err
	}
	return t.MeanScore, nil
}

func playPopulation(strategy model.Allocation, population []model.Allocation) (TrialRow, error) {
	if len(population) == 0 {
		return TrialRow{}, model.ErrEmptyPopulation
	}
	row := TrialRow{PopulationSize: len(population)}
	total := 0
	for idx, opp := range population {
		p, err := model.Score(strategy, opp)
		if err != nil {
			return TrialRow{}, fmt.Errorf("opponent %d: %w", idx, err)
		}
		total += p.A
		switch model.OutcomeFromScores(p) {
		case model.OutcomeWin:
			row.Wins++
		case model.OutcomeLoss:
			row.Losses++
		default:
			row.Draws++
		}
	}
	row.MeanScore = float64(total) / float64(len(population))
	return row, nil
}

// Estimate runs n trials, each against a fresh population of m opponents,
// and returns the mean of the per-trial average scores.
func (e *Engine) Estimate(strategy model.Allocation, s OpponentSampler, n, m int) (float64, error) {
	res, err := e.EstimateDetailed(strategy, s, n, m)
	if err != nil {
		return 0, err
	}
	return res.Mean, nil
}

// EstimateDetailed is Estimate plus the per-trial ledger and spread statistics.
func (e *Engine) EstimateDetailed(strategy model.Allocation, s OpponentSampler, n, m int) (*Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: trials n=%d, must be >= 1", model.ErrInvalidParameter, n)
	}
	if m < 1 {
		return nil, fmt.Errorf("%w: population size m=%d, must be >= 1", model.ErrInvalidParameter, m)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: opponent sampler is nil", model.ErrInvalidParameter)
	}

	ledger := make([]TrialRow, 0, n)
	var running runningMean
	for idx := 0; idx < n; idx++ {
		population, err := s.Sample(m)
		if err != nil {
			return nil, fmt.Errorf("trial %d sample: %w", idx, err)
		}
		row, err := playPopulation(strategy, population)
		if err != nil {
			return nil, fmt.Errorf("trial %d score: %w", idx, err)
		}
		row.Index = idx
		row.CumMean = running.push(row.MeanScore)
		ledger = append(ledger, row)
	}

	return summarize(strategy, ledger, e.confidence()), nil
}

func (e *Engine) confidence() float64 {
	if e == nil || e.Confidence <= 0 || e.Confidence >= 100 {
		return DefaultConfidence
	}
	return e.Confidence
}
