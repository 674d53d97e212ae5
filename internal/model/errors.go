package model

import "errors"

var (
	ErrDimensionMismatch = errors.New("allocations have different numbers of battlefields")
	ErrEmptyPool         = errors.New("empirical pool is empty")
	ErrEmptyPopulation   = errors.New("opponent population is empty")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrEmptyCandidateSet = errors.New("no candidates to select from")
)
