package strategy

import (
	"fmt"

	"blotto-backtest/internal/model"
)

// Oracle is the exact best response to the empirical pool.
//
// Against an opponent drawn uniformly from the pool, the expected score of
// an allocation is separable: battlefield i contributes (i+1) times the
// fraction of pool members with strictly fewer units there. That makes the
// best response a resource-allocation DP over (battlefield, units used).
//
// Notes:
//   - The result maximizes the expectation the Monte Carlo estimator
//     approximates, so it is a useful reference candidate and ranking tool.
//   - Values are kept as integer counts so ties break deterministically
//     toward fewer units on lower battlefields.
type Oracle struct {
	battlefields int
	// below[i][x] = number of pool members with fewer than x units on battlefield i.
	below [][]int
	size  int

	// solved memoizes Generate by total; callers get clones.
	solved map[int]model.Allocation
}

func NewOracle(pool []model.Allocation, battlefields int) (*Oracle, error) {
	if len(pool) == 0 {
		return nil, model.ErrEmptyPool
	}
	if battlefields <= 0 {
		battlefields = len(pool[0])
	}
	maxUnits := 0
	for idx, a := range pool {
		if len(a) != battlefields {
			return nil, fmt.Errorf("%w: pool member %d has %d battlefields, want %d", model.ErrDimensionMismatch, idx, len(a), battlefields)
		}
		for _, v := range a {
			maxUnits = max(maxUnits, v)
		}
	}

	// counts[i][v] = members placing exactly v on battlefield i.
	below := make([][]int, battlefields)
	for i := range below {
		counts := make([]int, maxUnits+1)
		for _, a := range pool {
			if a[i] >= 0 {
				counts[a[i]]++
			}
		}
		// below[i][x] for x in 0..maxUnits+1; anything above is the full pool.
		row := make([]int, maxUnits+2)
		for x := 1; x < len(row); x++ {
			row[x] = row[x-1] + counts[x-1]
		}
		below[i] = row
	}
	return &Oracle{battlefields: battlefields, below: below, size: len(pool), solved: make(map[int]model.Allocation)}, nil
}

func (o *Oracle) Name() string { return NameOracle }

// wins returns the weighted number of pool members beaten on battlefield i
// by placing x units there.
func (o *Oracle) wins(i, x int) int {
	row := o.below[i]
	if x >= len(row) {
		x = len(row) - 1
	}
	if x < 0 {
		return 0
	}
	return (i + 1) * row[x]
}

// ExpectedScore is the exact mean score of a against the pool.
func (o *Oracle) ExpectedScore(a model.Allocation) (float64, error) {
	if len(a) != o.battlefields {
		return 0, fmt.Errorf("%w: %d vs %d battlefields", model.ErrDimensionMismatch, len(a), o.battlefields)
	}
	sum := 0
	for i, x := range a {
		sum += o.wins(i, x)
	}
	return float64(sum) / float64(o.size), nil
}

// Generate returns the best response for total. The DP runs once per
// distinct total.
func (o *Oracle) Generate(total int) model.Allocation {
	if total < 0 {
		total = 0
	}
	if a, ok := o.solved[total]; ok {
		return a.Clone()
	}
	a := o.solve(total)
	o.solved[total] = a
	return a.Clone()
}

func (o *Oracle) solve(total int) model.Allocation {
	const negInf = -1 << 62
	n := o.battlefields

	// best[i][u] = max weighted wins from battlefields i..n-1 using exactly u units.
	best := make([][]int, n+1)
	choice := make([][]int, n)
	for i := range best {
		best[i] = make([]int, total+1)
	}
	for u := 1; u <= total; u++ {
		best[n][u] = negInf
	}
	for i := n - 1; i >= 0; i-- {
		choice[i] = make([]int, total+1)
		for u := 0; u <= total; u++ {
			bestVal, bestX := negInf, 0
			for x := 0; x <= u; x++ {
				rest := best[i+1][u-x]
				if rest == negInf {
					continue
				}
				if v := o.wins(i, x) + rest; v > bestVal {
					bestVal, bestX = v, x
				}
			}
			best[i][u] = bestVal
			choice[i][u] = bestX
		}
	}

	out := make(model.Allocation, n)
	u := total
	for i := 0; i < n; i++ {
		out[i] = choice[i][u]
		u -= out[i]
	}
	return out
}
