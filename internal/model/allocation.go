package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBattlefields is the number of castles in the reference game.
const DefaultBattlefields = 10

// Allocation is the number of units placed on each battlefield, in order.
// Battlefield i (0-based) is worth i+1 points.
type Allocation []int

func (a Allocation) Len() int { return len(a) }

func (a Allocation) Sum() int {
	s := 0
	for _, v := range a {
		s += v
	}
	return s
}

// Validate checks the fixed-total invariant. The scoring core assumes it
// and never calls this; ingestion and generators do.
func (a Allocation) Validate(total int) error {
	if len(a) == 0 {
		return fmt.Errorf("allocation has no battlefields")
	}
	for i, v := range a {
		if v < 0 {
			return fmt.Errorf("battlefield %d has negative allocation %d", i+1, v)
		}
	}
	if s := a.Sum(); s != total {
		return fmt.Errorf("allocation sums to %d, want %d", s, total)
	}
	return nil
}

func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	copy(out, a)
	return out
}

func (a Allocation) Equal(b Allocation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (a Allocation) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ScorePair holds each player's points from a single match.
type ScorePair struct {
	A int
	B int
}

// MaxScore is the value of all battlefields combined: 1+2+...+n.
func MaxScore(battlefields int) int {
	return battlefields * (battlefields + 1) / 2
}

// Score plays a against b. Each battlefield goes to the strictly larger
// allocation; ties award nothing to either side.
func Score(a, b Allocation) (ScorePair, error) {
	if len(a) != len(b) {
		return ScorePair{}, fmt.Errorf("%w: %d vs %d battlefields", ErrDimensionMismatch, len(a), len(b))
	}
	var p ScorePair
	for i := range a {
		switch {
		case a[i] > b[i]:
			p.A += i + 1
		case a[i] < b[i]:
			p.B += i + 1
		}
	}
	return p, nil
}

// Pool is the empirical opponent population. It is loaded once and treated
// as read-only afterwards.
type Pool struct {
	Total        int
	Battlefields int
	Allocations  []Allocation
}

func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Allocations)
}
