package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/llehouerou/remoteplay/internal/logging"
)

// ErrTooLarge is returned when a response exceeds the configured size limit.
var ErrTooLarge = errors.New("response too large")

// FetchConfig controls how remote tracks are downloaded.
type FetchConfig struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
	MaxBytes     int64
}

// Fetcher downloads a whole track into memory so the decoder can seek in it.
type Fetcher struct {
	client   *retryablehttp.Client
	maxBytes int64
	log      *zap.Logger
}

// NewFetcher creates a fetcher backed by a retrying HTTP client.
func NewFetcher(cfg FetchConfig, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		client.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		client.RetryWaitMax = cfg.RetryWaitMax
	}
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	client.Logger = logging.NewLeveled(log.Named("http"))

	return &Fetcher{
		client:   client,
		maxBytes: cfg.MaxBytes,
		log:      log,
	}
}

// Fetch downloads url and returns its body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: over %s", ErrTooLarge, humanize.IBytes(uint64(f.maxBytes))) //nolint:gosec // maxBytes is positive
	}

	f.log.Debug("fetched stream",
		zap.String("url", url),
		zap.String("size", humanize.IBytes(uint64(len(data)))))
	return data, nil
}
