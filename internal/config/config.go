package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blotto-backtest/internal/model"
	"blotto-backtest/internal/sampler"
	"blotto-backtest/internal/strategy"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Pool       PoolConfig      `yaml:"pool"`
	Estimate   EstimateConfig  `yaml:"estimate"`
	Candidates CandidateConfig `yaml:"candidates"`
	Generator  GeneratorConfig `yaml:"generator"`

	// Seed and RNG pick the single random stream used for the whole run.
	Seed uint64 `yaml:"seed"`
	RNG  string `yaml:"rng"`

	// Top is how many ranked candidates to report per total.
	Top int `yaml:"top"`
}

type PoolConfig struct {
	// Path is a local file or an http(s) URL.
	Path         string `yaml:"path"`
	Format       string `yaml:"format"`
	Total        int    `yaml:"total"`
	Battlefields int    `yaml:"battlefields"`
	// NoHeader is set when the first CSV row is data.
	NoHeader bool `yaml:"no_header"`
}

type EstimateConfig struct {
	// N is the number of outer trials, M the opponent population per trial.
	N          int     `yaml:"n"`
	M          int     `yaml:"m"`
	Confidence float64 `yaml:"confidence"`
}

type CandidateConfig struct {
	Totals []int `yaml:"totals"`
	Count  int   `yaml:"count"`
	// Explicit allocations ("0,0,10,...") are added to the batch of the
	// total they sum to.
	Explicit []string `yaml:"explicit"`
}

type GeneratorConfig struct {
	Name string `yaml:"name"`
}

// Default mirrors the reference run: 1500 biased candidates for each of
// 90, 100 and 110 units, 10 trials of 500 opponents, seed 123.
func Default() Config {
	return Config{
		Pool: PoolConfig{
			Path:         "castle-solutions.csv",
			Total:        100,
			Battlefields: model.DefaultBattlefields,
		},
		Estimate: EstimateConfig{N: 10, M: 500, Confidence: 95},
		Candidates: CandidateConfig{
			Totals: []int{90, 100, 110},
			Count:  1500,
		},
		Generator: GeneratorConfig{Name: strategy.NameBiased},
		Seed:      123,
		RNG:       sampler.KindPCG,
		Top:       1,
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config over the defaults, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// Prefer interpreting a relative pool path as relative to the config file
	// directory, but fall back to the provided path (relative to cwd) if that
	// doesn't exist.
	if p := c.Pool.Path; p != "" && !filepath.IsAbs(p) && !isURL(p) {
		cand := filepath.Join(filepath.Dir(path), p)
		if _, err := os.Stat(cand); err == nil {
			c.Pool.Path = cand
		}
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Pool.Path) == "" {
		return errors.New("pool.path is required")
	}
	if c.Pool.Total <= 0 {
		return errors.New("pool.total must be > 0")
	}
	if c.Pool.Battlefields <= 0 {
		return errors.New("pool.battlefields must be > 0")
	}
	if c.Estimate.N < 1 || c.Estimate.M < 1 {
		return fmt.Errorf("%w: estimate.n and estimate.m must be >= 1", model.ErrInvalidParameter)
	}
	if c.Estimate.Confidence <= 0 || c.Estimate.Confidence >= 100 {
		return errors.New("estimate.confidence must be in (0, 100)")
	}
	if len(c.Candidates.Totals) == 0 {
		return errors.New("candidates.totals is required")
	}
	for _, t := range c.Candidates.Totals {
		if t < 0 {
			return fmt.Errorf("candidates.totals: %d is negative", t)
		}
	}
	if c.Candidates.Count < 0 {
		return errors.New("candidates.count must be >= 0")
	}
	if c.Candidates.Count == 0 && len(c.Candidates.Explicit) == 0 {
		return model.ErrEmptyCandidateSet
	}
	if _, err := c.ExplicitCandidates(); err != nil {
		return fmt.Errorf("candidates.explicit: %w", err)
	}
	if !lo.Contains(strategy.Names(), strings.ToLower(c.Generator.Name)) {
		return fmt.Errorf("generator.name %q is not one of %v", c.Generator.Name, strategy.Names())
	}
	if _, err := sampler.NewSource(c.RNG, c.Seed); err != nil {
		return err
	}
	if c.Top < 0 {
		return errors.New("top must be >= 0")
	}
	return nil
}

// ExplicitCandidates parses candidates.explicit. Totals are not checked
// here; each entry joins the batch of whatever total it sums to.
func (c *Config) ExplicitCandidates() ([]model.Allocation, error) {
	return strategy.ParseAllocations(c.Candidates.Explicit, 0, c.Pool.Battlefields)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
