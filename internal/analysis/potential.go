package analysis

import (
	"math"
	"sort"

	"blotto-backtest/internal/model"
)

// BattlefieldSummary describes how the empirical pool deploys on one
// battlefield. It is a quick read on where opponents concentrate.
type BattlefieldSummary struct {
	Battlefield int // 1-based
	Value       int // points for winning it

	Min  int
	Max  int
	Mean float64
	P05  float64
	P50  float64
	P95  float64

	// ZeroShare is the fraction of the pool leaving the battlefield empty.
	ZeroShare float64
}

type PoolSummary struct {
	Size         int
	Total        int
	Battlefields []BattlefieldSummary
}

func SummarizePool(pool []model.Allocation) PoolSummary {
	s := PoolSummary{Size: len(pool)}
	if len(pool) == 0 {
		return s
	}
	s.Total = pool[0].Sum()
	n := len(pool[0])

	vals := make([]float64, 0, len(pool))
	for i := 0; i < n; i++ {
		vals = vals[:0]
		sum := 0.0
		minv := math.MaxInt
		maxv := math.MinInt
		zeros := 0
		for _, a := range pool {
			if i >= len(a) {
				continue
			}
			v := a[i]
			vals = append(vals, float64(v))
			sum += float64(v)
			minv = min(minv, v)
			maxv = max(maxv, v)
			if v == 0 {
				zeros++
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		s.Battlefields = append(s.Battlefields, BattlefieldSummary{
			Battlefield: i + 1,
			Value:       i + 1,
			Min:         minv,
			Max:         maxv,
			Mean:        sum / float64(len(vals)),
			P05:         percentileSorted(vals, 0.05),
			P50:         percentileSorted(vals, 0.50),
			P95:         percentileSorted(vals, 0.95),
			ZeroShare:   float64(zeros) / float64(len(vals)),
		})
	}
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
