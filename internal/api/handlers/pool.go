package handlers

import (
	"context"
	"fmt"
	"net/http"

	"blotto-backtest/internal/analysis"
	"blotto-backtest/internal/api/models"
	"blotto-backtest/internal/config"
	"blotto-backtest/internal/data"
	"blotto-backtest/internal/model"
	"blotto-backtest/internal/montecarlo"
	"blotto-backtest/internal/sampler"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// PoolSource resolves the empirical pool a request runs against.
type PoolSource struct {
	Cache    *data.PoolCache
	Settings *config.Server
}

func NewPoolSource(settings *config.Server) *PoolSource {
	return &PoolSource{
		Cache:    data.NewPoolCache(settings.PoolCacheTTL),
		Settings: settings,
	}
}

func (p *PoolSource) loadOptions() data.LoadOptions {
	return data.LoadOptions{
		Total:        p.Settings.PoolTotal,
		Battlefields: p.Settings.PoolBattlefields,
		Header:       true,
	}
}

// Server returns the configured pool and its load stats.
func (p *PoolSource) Server(ctx context.Context) (*model.Pool, data.LoadStats, error) {
	return p.Cache.Get(ctx, p.Settings.PoolPath, p.Settings.PoolFormat, p.loadOptions())
}

// opponents builds a seeded bootstrap sampler over the request's inline
// pool, or the server pool when none is given. The resolved pool and the
// source are returned too, so callers can build generators over the same
// opponents and draw candidates from the same stream.
func (p *PoolSource) opponents(ctx context.Context, opts models.RunOptions) (*sampler.Bootstrap, []model.Allocation, sampler.Source, error) {
	pool := opts.Pool
	if len(pool) == 0 {
		loaded, _, err := p.Server(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		pool = loaded.Allocations
	}
	src, err := sampler.NewSource(opts.RNG, opts.Seed)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", model.ErrInvalidParameter, err)
	}
	return sampler.NewBootstrap(pool, src), pool, src, nil
}

// checkWork rejects requests whose total scoring work n*m*candidates
// exceeds MaxWork. Each factor is bounded before multiplying so the
// product cannot overflow.
func (p *PoolSource) checkWork(opts models.RunOptions, candidates int) error {
	limit := p.Settings.MaxWork
	factors := []int64{int64(max(opts.N, 1)), int64(max(opts.M, 1)), int64(max(candidates, 1))}
	work := int64(1)
	for _, f := range factors {
		if f > limit || work > limit/f {
			return fmt.Errorf("%w: n=%d m=%d candidates=%d exceeds work limit %d",
				model.ErrInvalidParameter, opts.N, opts.M, candidates, limit)
		}
		work *= f
	}
	return nil
}

// PoolHandler handles pool-related requests
type PoolHandler struct {
	pools *PoolSource
}

func NewPoolHandler(pools *PoolSource) *PoolHandler {
	return &PoolHandler{pools: pools}
}

// DescribePool handles GET /api/v1/pool
func (h *PoolHandler) DescribePool(c *gin.Context) {
	pool, stats, err := h.pools.Server(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	summary := analysis.SummarizePool(pool.Allocations)
	c.JSON(http.StatusOK, models.PoolResponse{
		Source:     h.pools.Settings.PoolPath,
		Size:       summary.Size,
		Total:      pool.Total,
		RowsRead:   stats.Rows,
		Malformed:  stats.Malformed,
		WrongTotal: stats.WrongTotal,
		Battlefields: lo.Map(summary.Battlefields, func(b analysis.BattlefieldSummary, _ int) models.BattlefieldSummary {
			return models.BattlefieldSummary{
				Battlefield: b.Battlefield,
				Value:       b.Value,
				Min:         b.Min,
				Max:         b.Max,
				Mean:        b.Mean,
				P05:         b.P05,
				P50:         b.P50,
				P95:         b.P95,
				ZeroShare:   b.ZeroShare,
			}
		}),
	})
}

func trialRows(res *montecarlo.Result) []models.TrialRow {
	return lo.Map(res.Trials, func(t montecarlo.TrialRow, _ int) models.TrialRow {
		return models.TrialRow{
			Index:          t.Index,
			PopulationSize: t.PopulationSize,
			Wins:           t.Wins,
			Draws:          t.Draws,
			Losses:         t.Losses,
			MeanScore:      t.MeanScore,
			CumMean:        t.CumMean,
		}
	})
}
