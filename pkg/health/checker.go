package health

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CheckerConfig tunes dependency probes
type CheckerConfig struct {
	Timeout time.Duration
}

// DefaultCheckerConfig returns the probe defaults
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{Timeout: 2 * time.Second}
}

// HTTPEndpointChecker returns a probe that succeeds when url answers with a
// non-5xx status. The trip listing backend serves a banner at its root, so
// the readiness probe hits that instead of the full listing.
func HTTPEndpointChecker(url string, cfg CheckerConfig) func(ctx context.Context) error {
	client := &http.Client{Timeout: cfg.Timeout}

	return func(ctx context.Context) error {
		if url == "" {
			return fmt.Errorf("endpoint url is empty")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build probe request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("probe %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("probe %s: status %d", url, resp.StatusCode)
		}
		return nil
	}
}
