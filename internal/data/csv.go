package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"blotto-backtest/internal/model"
)

// LoadOptions controls how raw rows become pool members.
type LoadOptions struct {
	// Total is the unit count every kept row must sum to.
	Total int
	// Battlefields is the number of leading columns read from each row.
	// Any further columns (free-text explanations, ids) are ignored.
	Battlefields int
	// Header means the first row holds column names.
	Header bool
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Total: 100, Battlefields: model.DefaultBattlefields, Header: true}
}

// LoadStats reports what ingestion kept and dropped.
type LoadStats struct {
	Rows       int
	Kept       int
	Malformed  int
	WrongTotal int
}

func LoadPoolCSV(path string, opts LoadOptions) (*model.Pool, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer f.Close()
	pool, stats, err := DecodePoolCSV(f, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return pool, stats, nil
}

// DecodePoolCSV reads allocations from CSV. Rows that do not parse as
// non-negative integers are counted as malformed; rows that parse but do
// not sum to opts.Total are counted as wrong-total. Both are skipped.
func DecodePoolCSV(in io.Reader, opts LoadOptions) (*model.Pool, LoadStats, error) {
	if opts.Battlefields <= 0 {
		opts.Battlefields = model.DefaultBattlefields
	}
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var stats LoadStats
	pool := &model.Pool{Total: opts.Total, Battlefields: opts.Battlefields}
	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		line++
		if line == 1 && opts.Header {
			if len(rec) < opts.Battlefields {
				return nil, stats, fmt.Errorf("header has %d columns, need at least %d", len(rec), opts.Battlefields)
			}
			continue
		}
		stats.Rows++

		a, ok := parseRow(rec, opts.Battlefields)
		if !ok {
			stats.Malformed++
			log.Debug().Int("line", line).Msg("skipping malformed row")
			continue
		}
		if a.Sum() != opts.Total {
			stats.WrongTotal++
			continue
		}
		pool.Allocations = append(pool.Allocations, a)
		stats.Kept++
	}

	log.Debug().Int("rows", stats.Rows).Int("kept", stats.Kept).
		Int("malformed", stats.Malformed).Int("wrong_total", stats.WrongTotal).Msg("pool loaded")
	if len(pool.Allocations) == 0 {
		return nil, stats, model.ErrEmptyPool
	}
	return pool, stats, nil
}

func parseRow(rec []string, battlefields int) (model.Allocation, bool) {
	if len(rec) < battlefields {
		return nil, false
	}
	a := make(model.Allocation, battlefields)
	for i := 0; i < battlefields; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(rec[i]))
		if err != nil || v < 0 {
			return nil, false
		}
		a[i] = v
	}
	return a, true
}

// WritePoolCSV writes a pool in the layout DecodePoolCSV reads.
func WritePoolCSV(out io.Writer, pool []model.Allocation) error {
	w := csv.NewWriter(out)
	if len(pool) > 0 {
		header := make([]string, len(pool[0]))
		for i := range header {
			header[i] = fmt.Sprintf("Castle %d", i+1)
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for _, a := range pool {
		row := make([]string, len(a))
		for i, v := range a {
			row[i] = strconv.Itoa(v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
