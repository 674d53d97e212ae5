package montecarlo

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"blotto-backtest/internal/model"
)

const DefaultConfidence = 95.0

// runningMean is the mean of the trial scores pushed so far, updated
// incrementally so each ledger row can carry it.
type runningMean struct {
	n    int
	mean float64
}

func (r *runningMean) push(x float64) float64 {
	r.n++
	r.mean += (x - r.mean) / float64(r.n)
	return r.mean
}

// ZVal returns the two-tailed z-value for a confidence interval given in percent.
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

func summarize(strategy model.Allocation, ledger []TrialRow, confidence float64) *Result {
	means := make([]float64, len(ledger))
	for i, t := range ledger {
		means[i] = t.MeanScore
	}
	res := &Result{
		Strategy:   strategy,
		Trials:     ledger,
		Mean:       stat.Mean(means, nil),
		Confidence: confidence,
	}
	if len(means) > 1 {
		res.Stdev = stat.StdDev(means, nil)
		res.StdErr = stat.StdErr(res.Stdev, float64(len(means)))
	}
	half := ZVal(confidence) * res.StdErr
	res.CILow = res.Mean - half
	res.CIHigh = res.Mean + half
	return res
}
