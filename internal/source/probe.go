package source

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/reckoner-cli/internal/fetcher"
)

// ProbeResult reports one candidate URL's availability.
type ProbeResult struct {
	URL       string
	Available bool
}

// Probe checks every candidate URL for date in parallel with HEAD requests.
// Probing is read-only and shares no mutable state, so it is the one
// operation safe to run concurrently; results are aggregated after all
// probes finish and returned in candidate priority order.
func Probe(ctx context.Context, f fetcher.Fetcher, baseURL string, date time.Time, concurrency int) []ProbeResult {
	if concurrency < 1 {
		concurrency = 1
	}

	candidates := CandidateURLs(baseURL, date)
	results := make([]ProbeResult, len(candidates))

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range candidates {
		g.Go(func() error {
			ok, err := f.IsAvailable(gCtx, u)
			if err != nil {
				zap.L().Debug("source: probe failed", zap.String("url", u), zap.Error(err))
				ok = false
			}
			mu.Lock()
			results[i] = ProbeResult{URL: u, Available: ok}
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}
