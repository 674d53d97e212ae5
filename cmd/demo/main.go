package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"blotto-backtest/internal/analysis"
	"blotto-backtest/internal/data"
	"blotto-backtest/internal/model"
	"blotto-backtest/internal/montecarlo"
	"blotto-backtest/internal/sampler"
	"blotto-backtest/internal/strategy"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Demo:
// - Build a synthetic opponent pool with the simplex generator
// - Score a few hand-picked allocations against it
// - Select the best biased candidate and compare it to the exact best response
func main() {
	poolSize := flag.Int("pool", 200, "Synthetic pool size")
	total := flag.Int("total", 100, "Units per allocation")
	count := flag.Int("count", 200, "Candidates to generate")
	n := flag.Int("n", 5, "Trials per candidate")
	m := flag.Int("m", 100, "Opponents per trial")
	seed := flag.Uint64("seed", 123, "RNG seed")
	outCSV := flag.String("out", "", "Optional path to write the synthetic pool as CSV (e.g. results/pool.csv)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	src, err := sampler.NewSource(sampler.KindPCG, *seed)
	if err != nil {
		panic(err)
	}
	pool := strategy.GenerateList(strategy.NewSimplex(model.DefaultBattlefields, src), *total, *poolSize)
	log.Info().Int("size", len(pool)).Int("total", *total).Msg("synthetic pool")
	if *outCSV != "" {
		if err := writePool(*outCSV, pool); err != nil {
			panic(err)
		}
		log.Info().Str("path", *outCSV).Msg("wrote synthetic pool")
	}

	engine := montecarlo.New()
	opponents := sampler.NewBootstrap(pool, src)

	even := make(model.Allocation, model.DefaultBattlefields)
	for i := range even {
		even[i] = *total / model.DefaultBattlefields
	}
	even[len(even)-1] += *total - even.Sum()
	back := model.Allocation{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	for i := 5; i < len(back); i++ {
		back[i] = *total / 5
	}
	back[len(back)-1] += *total - back.Sum()

	fmt.Printf("%-8s %-10s %s\n", "name", "score", "allocation")
	for _, c := range []struct {
		name string
		a    model.Allocation
	}{{"even", even}, {"back", back}} {
		score, err := engine.Estimate(c.a, opponents, *n, *m)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-8s %-10.4f %s\n", c.name, score, c.a)
	}

	candidates := strategy.GenerateList(strategy.NewBiased(src), *total, *count)
	best, score, err := analysis.SelectBest(engine, candidates, opponents, *n, *m)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%-8s %-10.4f %s\n", "biased", score, best)

	oracle, err := strategy.NewOracle(pool, model.DefaultBattlefields)
	if err != nil {
		panic(err)
	}
	br := oracle.Generate(*total)
	exact, err := oracle.ExpectedScore(br)
	if err != nil {
		panic(err)
	}
	brScore, err := engine.Estimate(br, opponents, *n, *m)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%-8s %-10.4f %s (exact %.4f)\n", "oracle", brScore, br, exact)
	fmt.Printf("max possible score: %d\n", model.MaxScore(model.DefaultBattlefields))
}

func writePool(path string, pool []model.Allocation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return data.WritePoolCSV(f, pool)
}
