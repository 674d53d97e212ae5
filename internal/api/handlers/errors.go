package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"blotto-backtest/internal/api/models"
	"blotto-backtest/internal/data"
	"blotto-backtest/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// writeCoreError maps estimation errors onto API codes. Everything the core
// returns is a caller error, so those are all 4xx. A missing server pool is
// a deployment problem and answers 503.
func writeCoreError(c *gin.Context, err error) {
	var remoteErr *data.RemoteError
	switch {
	case errors.Is(err, model.ErrDimensionMismatch):
		writeError(c, http.StatusBadRequest, "DIMENSION_MISMATCH", err)
	case errors.Is(err, model.ErrEmptyPool):
		writeError(c, http.StatusBadRequest, "EMPTY_POOL", err)
	case errors.Is(err, model.ErrEmptyPopulation):
		writeError(c, http.StatusBadRequest, "EMPTY_POPULATION", err)
	case errors.Is(err, model.ErrInvalidParameter):
		writeError(c, http.StatusBadRequest, "INVALID_PARAMETER", err)
	case errors.Is(err, model.ErrEmptyCandidateSet):
		writeError(c, http.StatusBadRequest, "EMPTY_CANDIDATES", err)
	case errors.Is(err, fs.ErrNotExist):
		writeError(c, http.StatusServiceUnavailable, "POOL_UNAVAILABLE", err)
	case errors.As(err, &remoteErr):
		status := http.StatusBadGateway
		if remoteErr.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    remoteErr.Code,
				Message: remoteErr.Message,
				Details: map[string]interface{}{
					"status_code": remoteErr.StatusCode,
					"retry_after": remoteErr.RetryAfter,
				},
			},
		})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
	}
}
