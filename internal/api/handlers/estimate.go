package handlers

import (
	"net/http"

	"blotto-backtest/internal/api/models"
	"blotto-backtest/internal/montecarlo"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// EstimateHandler handles estimate-related requests
type EstimateHandler struct {
	pools *PoolSource
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(pools *PoolSource) *EstimateHandler {
	return &EstimateHandler{pools: pools}
}

// RunEstimate handles POST /api/v1/estimate
func (h *EstimateHandler) RunEstimate(c *gin.Context) {
	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	if err := h.pools.checkWork(req.Options, 1); err != nil {
		writeCoreError(c, err)
		return
	}

	opponents, _, _, err := h.pools.opponents(c.Request.Context(), req.Options)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	engine := &montecarlo.Engine{Confidence: req.Confidence}
	res, err := engine.EstimateDetailed(req.Strategy, opponents, req.Options.N, req.Options.M)
	if err != nil {
		writeCoreError(c, err)
		return
	}
	log.Debug().Stringer("strategy", req.Strategy).Float64("score", res.Mean).
		Int("n", req.Options.N).Int("m", req.Options.M).Int("pool", opponents.PoolSize()).Msg("estimated")

	resp := models.EstimateResponse{
		Strategy: req.Strategy,
		Summary: models.EstimateSummary{
			Score:      res.Mean,
			Stdev:      res.Stdev,
			StdErr:     res.StdErr,
			Confidence: res.Confidence,
			CILow:      res.CILow,
			CIHigh:     res.CIHigh,
			Trials:     len(res.Trials),
			Population: req.Options.M,
			Seed:       req.Options.Seed,
		},
	}
	if req.IncludeTrials {
		resp.Trials = trialRows(res)
	}
	c.JSON(http.StatusOK, resp)
}
