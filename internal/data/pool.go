package data

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"blotto-backtest/internal/model"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// LoadPool reads a pool from a local path or an http(s) URL. An empty
// format is inferred from the extension, defaulting to CSV.
func LoadPool(ctx context.Context, location, format string, opts LoadOptions) (*model.Pool, LoadStats, error) {
	if format == "" {
		format = FormatCSV
		if strings.EqualFold(filepath.Ext(location), ".json") {
			format = FormatJSON
		}
	}
	remote := strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")

	switch strings.ToLower(format) {
	case FormatCSV:
		if remote {
			return NewRemoteClient().FetchPoolCSV(ctx, location, opts)
		}
		return LoadPoolCSV(location, opts)
	case FormatJSON:
		if remote {
			return nil, LoadStats{}, fmt.Errorf("json pools must be local files")
		}
		return LoadPoolJSON(location, opts)
	default:
		return nil, LoadStats{}, fmt.Errorf("unsupported pool format: %q", format)
	}
}
