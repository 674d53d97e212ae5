package handlers

import (
	"fmt"
	"net/http"

	"blotto-backtest/internal/analysis"
	"blotto-backtest/internal/api/models"
	"blotto-backtest/internal/model"
	"blotto-backtest/internal/montecarlo"
	"blotto-backtest/internal/strategy"

	"github.com/gin-gonic/gin"
)

// maxGenerated bounds generate.count and generate.total independently of
// MaxWork. The oracle's table grows with the total.
const maxGenerated = 100000

// SelectHandler handles candidate selection requests
type SelectHandler struct {
	pools *PoolSource
}

// NewSelectHandler creates a new select handler
func NewSelectHandler(pools *PoolSource) *SelectHandler {
	return &SelectHandler{pools: pools}
}

// SelectBest handles POST /api/v1/select
func (h *SelectHandler) SelectBest(c *gin.Context) {
	var req models.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	count := len(req.Candidates)
	if req.Generate != nil {
		if req.Generate.Count < 0 || req.Generate.Count > maxGenerated {
			writeCoreError(c, fmt.Errorf("%w: generate.count must be in [0, %d]", model.ErrInvalidParameter, maxGenerated))
			return
		}
		if req.Generate.Total < 0 || req.Generate.Total > maxGenerated {
			writeCoreError(c, fmt.Errorf("%w: generate.total must be in [0, %d]", model.ErrInvalidParameter, maxGenerated))
			return
		}
		count += req.Generate.Count
	}
	if err := h.pools.checkWork(req.Options, count); err != nil {
		writeCoreError(c, err)
		return
	}

	opponents, pool, src, err := h.pools.opponents(c.Request.Context(), req.Options)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	var candidates []model.Allocation
	if req.Generate != nil {
		gen, err := strategy.New(req.Generate.Generator, strategy.Params{
			Battlefields: battlefields(pool),
			Pool:         pool,
		}, src)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_GENERATOR", err)
			return
		}
		candidates = strategy.GenerateList(gen, req.Generate.Total, req.Generate.Count)
	}
	candidates = append(candidates, req.Candidates...)

	ranked, err := analysis.Rank(montecarlo.New(), candidates, opponents, req.Options.N, req.Options.M)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	top := req.Top
	if top <= 0 {
		top = 1
	}
	if top > len(ranked) {
		top = len(ranked)
	}
	rankings := make([]models.Ranking, top)
	for i, r := range ranked[:top] {
		rankings[i] = models.Ranking{
			Rank:       i + 1,
			Index:      r.Index,
			Allocation: r.Allocation,
			Score:      r.Score,
		}
	}

	c.JSON(http.StatusOK, models.SelectResponse{
		Best:       ranked[0].Allocation,
		Score:      ranked[0].Score,
		Candidates: len(ranked),
		Rankings:   rankings,
	})
}

func battlefields(pool []model.Allocation) int {
	if len(pool) == 0 {
		return 0
	}
	return len(pool[0])
}
