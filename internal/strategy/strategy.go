// Package strategy supplies candidate allocations. None of these generators
// are part of the estimate itself; the selector only sees their output.
package strategy

import (
	"fmt"
	"strings"

	"blotto-backtest/internal/model"
	"blotto-backtest/internal/sampler"
)

// Generator produces allocations summing to a requested total.
type Generator interface {
	Name() string
	Generate(total int) model.Allocation
}

// Params configures a generator built by New.
type Params struct {
	Battlefields int
	// Pool is only used by the oracle generator.
	Pool []model.Allocation
}

const (
	NameBiased  = "biased"
	NameSimplex = "simplex"
	NameOracle  = "oracle"
)

// Names lists the generators New understands.
func Names() []string { return []string{NameBiased, NameSimplex, NameOracle} }

func New(name string, p Params, src sampler.Source) (Generator, error) {
	if p.Battlefields <= 0 {
		p.Battlefields = model.DefaultBattlefields
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameBiased:
		if p.Battlefields != BiasedBattlefields {
			return nil, fmt.Errorf("biased generator needs %d battlefields, got %d", BiasedBattlefields, p.Battlefields)
		}
		return NewBiased(src), nil
	case "", NameSimplex:
		return NewSimplex(p.Battlefields, src), nil
	case NameOracle:
		o, err := NewOracle(p.Pool, p.Battlefields)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unsupported generator: %q", name)
	}
}

// GenerateList returns count allocations from gen, each summing to total.
func GenerateList(gen Generator, total, count int) []model.Allocation {
	out := make([]model.Allocation, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, gen.Generate(total))
	}
	return out
}
