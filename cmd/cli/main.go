package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"blotto-backtest/internal/analysis"
	"blotto-backtest/internal/config"
	"blotto-backtest/internal/data"
	"blotto-backtest/internal/model"
	"blotto-backtest/internal/montecarlo"
	"blotto-backtest/internal/sampler"
	"blotto-backtest/internal/strategy"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "solve":
		cmdSolve(os.Args[2:])
	case "estimate":
		cmdEstimate(os.Args[2:])
	case "score":
		cmdScore(os.Args[2:])
	case "summary":
		cmdSummary(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli solve --config examples/config.yaml")
	fmt.Println("  cli estimate --pool castle-solutions.csv --strategy 0,0,0,0,0,20,20,20,20,20 --n 10 --m 500 --out results/trials.csv --hist")
	fmt.Println("  cli score --a 10,10,10,10,10,10,10,10,10,10 --b 0,0,0,0,0,20,20,20,20,20")
	fmt.Println("  cli summary --pool castle-solutions.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - battlefield i (1-based) is worth i points; ties on a battlefield score nothing")
	fmt.Println("  - solve picks the best generated candidate per total against bootstrapped opponents")
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	verbose := fs.Bool("verbose", false, "Debug logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", *cfgPath).Msg("load config")
		}
		cfg = *loaded
	}

	pool := mustLoadPool(cfg.Pool.Path, cfg.Pool.Format, data.LoadOptions{
		Total:        cfg.Pool.Total,
		Battlefields: cfg.Pool.Battlefields,
		Header:       !cfg.Pool.NoHeader,
	})

	src, err := sampler.NewSource(cfg.RNG, cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("rng")
	}
	gen, err := strategy.New(cfg.Generator.Name, strategy.Params{
		Battlefields: cfg.Pool.Battlefields,
		Pool:         pool.Allocations,
	}, src)
	if err != nil {
		log.Fatal().Err(err).Msg("generator")
	}
	extra, err := cfg.ExplicitCandidates()
	if err != nil {
		log.Fatal().Err(err).Msg("explicit candidates")
	}

	engine := &montecarlo.Engine{Confidence: cfg.Estimate.Confidence}
	solutions, err := analysis.Solve(engine, pool.Allocations, gen, src, analysis.SolveParams{
		Totals: cfg.Candidates.Totals,
		Count:  cfg.Candidates.Count,
		N:      cfg.Estimate.N,
		M:      cfg.Estimate.M,
		Top:    cfg.Top,
		Extra:  extra,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("solve")
	}

	fmt.Printf("%-6s %-10s %-10s %s\n", "total", "candidates", "score", "allocation")
	for _, s := range solutions {
		for i, r := range s.Top {
			total := fmt.Sprint(s.Total)
			count := fmt.Sprint(s.Candidates)
			if i > 0 {
				total, count = "", ""
			}
			fmt.Printf("%-6s %-10s %-10.4f %s\n", total, count, r.Score, r.Allocation)
		}
	}
}

func cmdEstimate(args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	poolPath := fs.String("pool", "castle-solutions.csv", "Pool CSV/JSON path or URL")
	total := fs.Int("total", 100, "Units each pool allocation must sum to")
	battlefields := fs.Int("battlefields", model.DefaultBattlefields, "Number of battlefields")
	strat := fs.String("strategy", "", "Comma-separated allocation to evaluate")
	n := fs.Int("n", 10, "Number of trials")
	m := fs.Int("m", 500, "Opponents per trial")
	seed := fs.Uint64("seed", 123, "RNG seed")
	rng := fs.String("rng", sampler.KindPCG, "RNG kind: pcg or chacha")
	confidence := fs.Float64("confidence", montecarlo.DefaultConfidence, "Confidence level in percent")
	outPath := fs.String("out", "", "Optional: write per-trial CSV here")
	hist := fs.Bool("hist", false, "Print a histogram of per-trial mean scores")
	verbose := fs.Bool("verbose", false, "Debug logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	if *strat == "" {
		fmt.Println("--strategy is required")
		os.Exit(2)
	}
	a, err := strategy.ParseAllocation(*strat)
	if err != nil {
		log.Fatal().Err(err).Msg("parse strategy")
	}

	pool := mustLoadPool(*poolPath, "", data.LoadOptions{Total: *total, Battlefields: *battlefields, Header: true})
	src, err := sampler.NewSource(*rng, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("rng")
	}

	engine := &montecarlo.Engine{Confidence: *confidence}
	res, err := engine.EstimateDetailed(a, sampler.NewBootstrap(pool.Allocations, src), *n, *m)
	if err != nil {
		log.Fatal().Err(err).Msg("estimate")
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			log.Fatal().Err(err).Msg("create output dir")
		}
		if err := montecarlo.WriteTrialsCSV(*outPath, res.Trials); err != nil {
			log.Fatal().Err(err).Msg("write trials")
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Trials), *outPath)
	}

	fmt.Printf("strategy=%s score=%.4f stdev=%.4f stderr=%.4f\n", a, res.Mean, res.Stdev, res.StdErr)
	fmt.Printf("%.0f%% CI [%.4f, %.4f] over %d trials of %d opponents\n", res.Confidence, res.CILow, res.CIHigh, len(res.Trials), *m)

	if *hist && len(res.Trials) > 1 {
		h := histogram.Hist(min(15, len(res.Trials)), res.TrialMeans())
		if err := histogram.Fprint(os.Stdout, h, histogram.Linear(40)); err != nil {
			log.Fatal().Err(err).Msg("print histogram")
		}
	}
}

func cmdScore(args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	aStr := fs.String("a", "", "First allocation, comma-separated")
	bStr := fs.String("b", "", "Second allocation, comma-separated")
	_ = fs.Parse(args)
	setupLogging(false)

	a, err := strategy.ParseAllocation(*aStr)
	if err != nil {
		log.Fatal().Err(err).Msg("parse --a")
	}
	b, err := strategy.ParseAllocation(*bStr)
	if err != nil {
		log.Fatal().Err(err).Msg("parse --b")
	}
	p, err := model.Score(a, b)
	if err != nil {
		log.Fatal().Err(err).Msg("score")
	}
	fmt.Printf("a=%s b=%s\n", a, b)
	fmt.Printf("score %d-%d (%s for a, max %d)\n", p.A, p.B, model.OutcomeFromScores(p), model.MaxScore(len(a)))
}

func cmdSummary(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	poolPath := fs.String("pool", "castle-solutions.csv", "Pool CSV/JSON path or URL")
	total := fs.Int("total", 100, "Units each pool allocation must sum to")
	battlefields := fs.Int("battlefields", model.DefaultBattlefields, "Number of battlefields")
	verbose := fs.Bool("verbose", false, "Debug logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	pool := mustLoadPool(*poolPath, "", data.LoadOptions{Total: *total, Battlefields: *battlefields, Header: true})
	s := analysis.SummarizePool(pool.Allocations)

	fmt.Printf("pool=%s size=%d total=%d\n", *poolPath, s.Size, s.Total)
	fmt.Printf("%-6s %-6s %-6s %-6s %-8s %-8s %-8s %-8s %-6s\n", "field", "value", "min", "max", "mean", "p05", "p50", "p95", "zero%")
	for _, b := range s.Battlefields {
		fmt.Printf(
			"%-6d %-6d %-6d %-6d %-8.2f %-8.1f %-8.1f %-8.1f %-6.1f\n",
			b.Battlefield,
			b.Value,
			b.Min,
			b.Max,
			b.Mean,
			b.P05,
			b.P50,
			b.P95,
			100*b.ZeroShare,
		)
	}
}

func mustLoadPool(location, format string, opts data.LoadOptions) *model.Pool {
	pool, stats, err := data.LoadPool(context.Background(), location, format, opts)
	if err != nil {
		log.Fatal().Err(err).Str("pool", location).Msg("load pool")
	}
	if skipped := stats.Malformed + stats.WrongTotal; skipped > 0 {
		log.Info().Int("kept", stats.Kept).Int("malformed", stats.Malformed).
			Int("wrong_total", stats.WrongTotal).Msg("skipped pool rows")
	}
	log.Debug().Str("pool", location).Int("size", pool.Len()).Msg("pool ready")
	return pool
}
