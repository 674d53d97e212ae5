package models

import "blotto-backtest/internal/model"

// ScoreRequest represents the request body for scoring one match
type ScoreRequest struct {
	A model.Allocation `json:"a" binding:"required"`
	B model.Allocation `json:"b" binding:"required"`
}

// RunOptions are the Monte Carlo settings shared by estimate and select.
// N and M are validated by the estimator itself, not by binding tags, so
// bad values surface as INVALID_PARAMETER.
type RunOptions struct {
	N    int    `json:"n"`
	M    int    `json:"m"`
	Seed uint64 `json:"seed,omitempty"`
	RNG  string `json:"rng,omitempty"` // "pcg" (default) or "chacha"
	// Pool optionally replaces the server's empirical pool for this request.
	Pool []model.Allocation `json:"pool,omitempty"`
}

// EstimateRequest represents the request body for estimating one strategy
type EstimateRequest struct {
	Strategy      model.Allocation `json:"strategy" binding:"required"`
	Options       RunOptions       `json:"options"`
	Confidence    float64          `json:"confidence,omitempty"`
	IncludeTrials bool             `json:"include_trials,omitempty"`
}

// GenerateSpec asks the server to build candidates with a generator
type GenerateSpec struct {
	Generator string `json:"generator" binding:"required"`
	Total     int    `json:"total"`
	Count     int    `json:"count"`
}

// SelectRequest represents the request body for picking the best candidate.
// Candidates and Generate may be combined; generated candidates come first.
type SelectRequest struct {
	Candidates []model.Allocation `json:"candidates,omitempty"`
	Generate   *GenerateSpec      `json:"generate,omitempty"`
	Options    RunOptions         `json:"options"`
	Top        int                `json:"top,omitempty"` // default: 1
}
