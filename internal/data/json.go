package data

import (
	"encoding/json"
	"fmt"
	"os"

	"blotto-backtest/internal/model"
)

// poolFile is the JSON pool layout:
//
//	{"total": 100, "allocations": [[0,0,10,...], ...]}
type poolFile struct {
	Total       int                `json:"total"`
	Allocations []model.Allocation `json:"allocations"`
}

// LoadPoolJSON reads a JSON pool. Members that do not match the declared
// total or the battlefield count are dropped, like the CSV loader does.
func LoadPoolJSON(path string, opts LoadOptions) (*model.Pool, LoadStats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	var f poolFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, LoadStats{}, fmt.Errorf("%s: %w", path, err)
	}
	if f.Total != 0 && opts.Total == 0 {
		opts.Total = f.Total
	}
	if opts.Battlefields <= 0 {
		opts.Battlefields = model.DefaultBattlefields
	}

	var stats LoadStats
	pool := &model.Pool{Total: opts.Total, Battlefields: opts.Battlefields}
	for _, a := range f.Allocations {
		stats.Rows++
		if len(a) != opts.Battlefields || a.Validate(a.Sum()) != nil {
			stats.Malformed++
			continue
		}
		if a.Sum() != opts.Total {
			stats.WrongTotal++
			continue
		}
		pool.Allocations = append(pool.Allocations, a)
		stats.Kept++
	}
	if len(pool.Allocations) == 0 {
		return nil, stats, model.ErrEmptyPool
	}
	return pool, stats, nil
}
