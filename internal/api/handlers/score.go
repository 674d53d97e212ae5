package handlers

import (
	"net/http"

	"blotto-backtest/internal/api/models"
	"blotto-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// ScoreMatch handles POST /api/v1/score
func ScoreMatch(c *gin.Context) {
	var req models.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	p, err := model.Score(req.A, req.B)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ScoreResponse{
		ScoreA:   p.A,
		ScoreB:   p.B,
		Outcome:  string(model.OutcomeFromScores(p)),
		MaxScore: model.MaxScore(len(req.A)),
	})
}
