package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"blotto-backtest/internal/model"
)

// ParseAllocation parses "a,b,c,..." (spaces, brackets and semicolons are
// tolerated) into an allocation.
func ParseAllocation(s string) (model.Allocation, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("invalid allocation %q, expected comma-separated integers", s)
	}
	out := make(model.Allocation, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid battlefield %d in %q", i+1, s)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative battlefield %d in %q", i+1, s)
		}
		out[i] = v
	}
	return out, nil
}

// ParseAllocations parses each entry and checks it against total and
// battlefields. Zero values skip the respective check.
func ParseAllocations(entries []string, total, battlefields int) ([]model.Allocation, error) {
	out := make([]model.Allocation, 0, len(entries))
	for idx, e := range entries {
		a, err := ParseAllocation(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", idx, err)
		}
		if battlefields > 0 && len(a) != battlefields {
			return nil, fmt.Errorf("entry %d: %w: got %d battlefields, want %d", idx, model.ErrDimensionMismatch, len(a), battlefields)
		}
		if total > 0 {
			if err := a.Validate(total); err != nil {
				return nil, fmt.Errorf("entry %d: %w", idx, err)
			}
		}
		out = append(out, a)
	}
	return out, nil
}
