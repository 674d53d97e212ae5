package montecarlo

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"gonum.org/v1/gonum/stat"

	"blotto-backtest/internal/model"
)

const epsilon = 1e-9

func fuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// trialMeans plays {1,1,1} against single-opponent populations and
// returns the per-trial scores: 6 against {0,0,0}, 3 against {0,0,2},
// 0 against {2,2,2}.
func trialMeans(t *testing.T, opponents ...model.Allocation) []float64 {
	t.Helper()
	out := make([]float64, len(opponents))
	for i, opp := range opponents {
		v, err := ScoreAgainstPopulation(model.Allocation{1, 1, 1}, []model.Allocation{opp})
		if err != nil {
			t.Fatal(err)
		}
		out[i] = v
	}
	return out
}

func TestRunningMeanTracksPrefixMeans(t *testing.T) {
	is := is.New(t)
	means := trialMeans(t,
		model.Allocation{0, 0, 0},
		model.Allocation{0, 0, 2},
		model.Allocation{2, 2, 2},
		model.Allocation{0, 0, 2},
		model.Allocation{0, 0, 0},
	)
	is.Equal(means, []float64{6, 3, 0, 3, 6})

	var r runningMean
	for i, v := range means {
		got := r.push(v)
		is.True(fuzzyEqual(got, stat.Mean(means[:i+1], nil)))
	}
	is.True(fuzzyEqual(r.mean, 3.6))
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(ZVal(95)-1.959963984540054) < 1e-6)
	is.True(math.Abs(ZVal(99)-2.5758293035489) < 1e-6)
}

func TestSummarizeTrialLedger(t *testing.T) {
	is := is.New(t)
	means := trialMeans(t, model.Allocation{0, 0, 0}, model.Allocation{2, 2, 2}, model.Allocation{0, 0, 2})
	ledger := make([]TrialRow, len(means))
	for i, v := range means {
		ledger[i] = TrialRow{Index: i, MeanScore: v}
	}

	res := summarize(nil, ledger, DefaultConfidence)
	// Trial scores 6, 0, 3: sample stdev 3, standard error sqrt(3).
	is.True(fuzzyEqual(res.Mean, 3))
	is.True(fuzzyEqual(res.Stdev, 3))
	is.True(fuzzyEqual(res.StdErr, math.Sqrt(3)))
	half := ZVal(DefaultConfidence) * math.Sqrt(3)
	is.True(fuzzyEqual(res.CILow, 3-half))
	is.True(fuzzyEqual(res.CIHigh, 3+half))
}

func TestSummarizeSingleTrial(t *testing.T) {
	is := is.New(t)
	res := summarize(nil, []TrialRow{{MeanScore: 12.5}}, DefaultConfidence)
	is.True(fuzzyEqual(res.Mean, 12.5))
	is.True(fuzzyEqual(res.Stdev, 0))
	is.True(fuzzyEqual(res.CILow, 12.5))
	is.True(fuzzyEqual(res.CIHigh, 12.5))
}
