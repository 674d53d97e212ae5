package data

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"blotto-backtest/internal/model"
)

// RemoteClient downloads pool CSVs over HTTP, e.g. the published
// castle-solutions datasets.
type RemoteClient struct {
	Client *http.Client
}

func NewRemoteClient() *RemoteClient {
	return &RemoteClient{
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RemoteError is a non-200 response from the pool host.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *RemoteError) Error() string {
	return e.Message
}

// FetchPoolCSV downloads url and decodes it with DecodePoolCSV.
func (c *RemoteClient) FetchPoolCSV(ctx context.Context, url string, opts LoadOptions) (*model.Pool, LoadStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("url", url).Dur("duration", duration).Msg("pool request failed")
		return nil, LoadStats{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Info().Str("url", url).Int("status", resp.StatusCode).Dur("duration", duration).Msg("pool response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, LoadStats{}, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "POOL_NOT_FOUND",
			Message:    fmt.Sprintf("pool not found at %s", url),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, LoadStats{}, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, LoadStats{}, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "REMOTE_ERROR",
			Message:    fmt.Sprintf("pool host returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	pool, stats, err := DecodePoolCSV(resp.Body, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", url, err)
	}
	return pool, stats, nil
}
