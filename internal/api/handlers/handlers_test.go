package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blotto-backtest/internal/api/models"
	"blotto-backtest/internal/config"
	"blotto-backtest/internal/model"
)

var toyPool = []model.Allocation{{0, 0, 0}, {1, 1, 1}}

func newTestRouter(t *testing.T, settings *config.Server) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if settings == nil {
		settings = &config.Server{
			PoolPath:         filepath.Join(t.TempDir(), "missing.csv"),
			PoolTotal:        3,
			PoolBattlefields: 3,
			MaxWork:          1_000_000,
		}
	}
	pools := NewPoolSource(settings)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/score", ScoreMatch)
	api.POST("/estimate", NewEstimateHandler(pools).RunEstimate)
	api.POST("/select", NewSelectHandler(pools).SelectBest)
	api.GET("/generators", ListGenerators)
	api.GET("/pool", NewPoolHandler(pools).DescribePool)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorDetail {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestScoreMatch(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/v1/score", models.ScoreRequest{
		A: model.Allocation{2, 3, 0},
		B: model.Allocation{1, 3, 4},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ScoreResponse{ScoreA: 1, ScoreB: 3, Outcome: "LOSS", MaxScore: 6}, resp)

	w = do(t, r, http.MethodPost, "/api/v1/score", models.ScoreRequest{
		A: model.Allocation{1, 2},
		B: model.Allocation{1, 2, 3},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DIMENSION_MISMATCH", decodeError(t, w).Code)
}

func TestRunEstimate(t *testing.T) {
	r := newTestRouter(t, nil)

	req := models.EstimateRequest{
		Strategy:      model.Allocation{2, 2, 2},
		Options:       models.RunOptions{N: 4, M: 10, Seed: 5, Pool: toyPool},
		IncludeTrials: true,
	}
	w := do(t, r, http.MethodPost, "/api/v1/estimate", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.EstimateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 6.0, resp.Summary.Score, 1e-12)
	assert.Equal(t, 4, resp.Summary.Trials)
	assert.Equal(t, 10, resp.Summary.Population)
	assert.Equal(t, 95.0, resp.Summary.Confidence)
	require.Len(t, resp.Trials, 4)
	assert.Equal(t, 10, resp.Trials[0].Wins)

	// Same seed, same answer.
	w2 := do(t, r, http.MethodPost, "/api/v1/estimate", req)
	assert.Equal(t, w.Body.String(), w2.Body.String())
}

func TestRunEstimateErrors(t *testing.T) {
	r := newTestRouter(t, nil)

	cases := []struct {
		name   string
		req    models.EstimateRequest
		status int
		code   string
	}{
		{
			name:   "zero trials",
			req:    models.EstimateRequest{Strategy: model.Allocation{1, 1, 1}, Options: models.RunOptions{N: 0, M: 1, Pool: toyPool}},
			status: http.StatusBadRequest,
			code:   "INVALID_PARAMETER",
		},
		{
			name:   "dimension mismatch",
			req:    models.EstimateRequest{Strategy: model.Allocation{1, 1}, Options: models.RunOptions{N: 1, M: 1, Pool: toyPool}},
			status: http.StatusBadRequest,
			code:   "DIMENSION_MISMATCH",
		},
		{
			name:   "unknown rng",
			req:    models.EstimateRequest{Strategy: model.Allocation{1, 1, 1}, Options: models.RunOptions{N: 1, M: 1, RNG: "dice", Pool: toyPool}},
			status: http.StatusBadRequest,
			code:   "INVALID_PARAMETER",
		},
		{
			name:   "too much work",
			req:    models.EstimateRequest{Strategy: model.Allocation{1, 1, 1}, Options: models.RunOptions{N: 10000, M: 10000, Pool: toyPool}},
			status: http.StatusBadRequest,
			code:   "INVALID_PARAMETER",
		},
		{
			name:   "overflowing work",
			req:    models.EstimateRequest{Strategy: model.Allocation{1, 1, 1}, Options: models.RunOptions{N: 1 << 32, M: 1 << 32, Pool: toyPool}},
			status: http.StatusBadRequest,
			code:   "INVALID_PARAMETER",
		},
		{
			name:   "missing server pool",
			req:    models.EstimateRequest{Strategy: model.Allocation{1, 1, 1}, Options: models.RunOptions{N: 1, M: 1}},
			status: http.StatusServiceUnavailable,
			code:   "POOL_UNAVAILABLE",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/v1/estimate", tc.req)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}
}

func TestSelectBest(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/v1/select", models.SelectRequest{
		Candidates: []model.Allocation{{3, 0, 0}, {2, 2, 2}, {1, 1, 1}, {4, 4, 4}},
		Options:    models.RunOptions{N: 5, M: 20, Seed: 1, Pool: toyPool},
		Top:        2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// {2,2,2} and {4,4,4} both take every field; the earlier one wins the tie.
	assert.Equal(t, []int{2, 2, 2}, resp.Best)
	assert.InDelta(t, 6.0, resp.Score, 1e-12)
	assert.Equal(t, 4, resp.Candidates)
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, 1, resp.Rankings[0].Index)
	assert.Equal(t, 3, resp.Rankings[1].Index)
}

func TestSelectBestGenerated(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/v1/select", models.SelectRequest{
		Generate:   &models.GenerateSpec{Generator: "simplex", Total: 3, Count: 5},
		Candidates: []model.Allocation{{1, 1, 1}},
		Options:    models.RunOptions{N: 2, M: 5, Seed: 3, Pool: toyPool},
		Top:        10,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Candidates)
	assert.Len(t, resp.Rankings, 6)
	for _, rk := range resp.Rankings {
		assert.Equal(t, 3, model.Allocation(rk.Allocation).Sum())
	}
}

func TestSelectBestErrors(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/v1/select", models.SelectRequest{
		Options: models.RunOptions{N: 1, M: 1, Pool: toyPool},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_CANDIDATES", decodeError(t, w).Code)

	w = do(t, r, http.MethodPost, "/api/v1/select", models.SelectRequest{
		Generate: &models.GenerateSpec{Generator: "nope", Total: 3, Count: 2},
		Options:  models.RunOptions{N: 1, M: 1, Pool: toyPool},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_GENERATOR", decodeError(t, w).Code)
}

func TestSelectBestGenerateBounds(t *testing.T) {
	r := newTestRouter(t, nil)

	for name, spec := range map[string]models.GenerateSpec{
		"huge total":     {Generator: "oracle", Total: 1_000_000_000, Count: 1},
		"negative total": {Generator: "simplex", Total: -100, Count: 1},
		"huge count":     {Generator: "simplex", Total: 3, Count: maxGenerated + 1},
	} {
		t.Run(name, func(t *testing.T) {
			spec := spec
			w := do(t, r, http.MethodPost, "/api/v1/select", models.SelectRequest{
				Generate: &spec,
				Options:  models.RunOptions{N: 1, M: 1, Pool: toyPool},
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_PARAMETER", decodeError(t, w).Code)
		})
	}
}

func TestSelectBestOracleServerPool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.csv")
	csv := "c1,c2,c3\n0,0,3\n1,1,1\n0,0,3\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	r := newTestRouter(t, &config.Server{
		PoolPath:         path,
		PoolTotal:        3,
		PoolBattlefields: 3,
		MaxWork:          10_000,
	})
	w := do(t, r, http.MethodPost, "/api/v1/select", models.SelectRequest{
		Generate: &models.GenerateSpec{Generator: "oracle", Total: 3, Count: 2},
		Options:  models.RunOptions{N: 2, M: 5, Seed: 1},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Candidates)
	assert.Equal(t, 3, model.Allocation(resp.Best).Sum())
}

func TestCheckWork(t *testing.T) {
	p := &PoolSource{Settings: &config.Server{MaxWork: 1000}}

	assert.NoError(t, p.checkWork(models.RunOptions{N: 10, M: 10}, 10))
	assert.ErrorIs(t, p.checkWork(models.RunOptions{N: 10, M: 10}, 11), model.ErrInvalidParameter)
	assert.ErrorIs(t, p.checkWork(models.RunOptions{N: 1 << 32, M: 1 << 32}, 1), model.ErrInvalidParameter)
	assert.ErrorIs(t, p.checkWork(models.RunOptions{N: 1, M: 1}, 1<<40), model.ErrInvalidParameter)
	// Non-positive values are left for the estimator to reject.
	assert.NoError(t, p.checkWork(models.RunOptions{N: 0, M: -1}, 0))
}

func TestListGenerators(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(t, r, http.MethodGet, "/api/v1/generators", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Generators []models.GeneratorInfo `json:"generators"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	names := make([]string, len(resp.Generators))
	for i, g := range resp.Generators {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"biased", "simplex", "oracle"}, names)
}

func TestDescribePool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.csv")
	csv := "c1,c2,c3\n0,0,3\n1,1,1\n2,2,2\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	r := newTestRouter(t, &config.Server{
		PoolPath:         path,
		PoolTotal:        3,
		PoolBattlefields: 3,
		MaxWork:          1000,
	})
	w := do(t, r, http.MethodGet, "/api/v1/pool", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.PoolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Size)
	assert.Equal(t, 3, resp.RowsRead)
	assert.Equal(t, 1, resp.WrongTotal)
	require.Len(t, resp.Battlefields, 3)
	assert.Equal(t, 3, resp.Battlefields[2].Value)

	// The server pool now backs requests without an inline pool.
	w = do(t, r, http.MethodPost, "/api/v1/estimate", models.EstimateRequest{
		Strategy: model.Allocation{1, 1, 1},
		Options:  models.RunOptions{N: 2, M: 3},
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
