package source

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reckoner-cli/internal/fetcher"
)

// ErrNotFound reports that no candidate URL yielded a document for the
// requested date (including the prior-business-day fallback).
var ErrNotFound = eris.New("source: document not found")

// Document is a successfully acquired price sheet.
type Document struct {
	Date time.Time // date the document was requested for
	URL  string    // candidate that answered
	Body []byte
}

// Options configures the Acquirer.
type Options struct {
	BaseURL          string
	CandidateDelay   time.Duration // pause between candidate attempts
	FallbackPriorDay bool          // retry the previous business day on failure
}

// Acquirer walks the candidate URL chain for a date, first success wins.
type Acquirer struct {
	fetcher fetcher.Fetcher
	opts    Options
}

// NewAcquirer creates an Acquirer using the given fetcher.
func NewAcquirer(f fetcher.Fetcher, opts Options) *Acquirer {
	return &Acquirer{fetcher: f, opts: opts}
}

// Acquire tries every candidate URL for date in priority order, then once
// more for the previous business day when enabled. Transient fetch failures
// never propagate; the only errors returned are ErrNotFound, context
// cancellation, and caller mistakes (zero date).
func (a *Acquirer) Acquire(ctx context.Context, date time.Time) (*Document, error) {
	if date.IsZero() {
		return nil, eris.New("source: zero date")
	}

	doc, err := a.acquireDay(ctx, date)
	if err == nil {
		return doc, nil
	}
	if !eris.Is(err, ErrNotFound) {
		return nil, err
	}

	if a.opts.FallbackPriorDay {
		prior := PrevBusinessDay(date)
		zap.L().Info("source: falling back to prior business day",
			zap.String("date", date.Format(time.DateOnly)),
			zap.String("prior", prior.Format(time.DateOnly)),
		)
		doc, err = a.acquireDay(ctx, prior)
		if err == nil {
			return doc, nil
		}
		if !eris.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	return nil, eris.Wrapf(ErrNotFound, "date %s", date.Format(time.DateOnly))
}

func (a *Acquirer) acquireDay(ctx context.Context, date time.Time) (*Document, error) {
	candidates := CandidateURLs(a.opts.BaseURL, date)

	for i, u := range candidates {
		if i > 0 && a.opts.CandidateDelay > 0 {
			if err := sleepCtx(ctx, a.opts.CandidateDelay); err != nil {
				return nil, err
			}
		}

		body, err := a.fetcher.Fetch(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			zap.L().Debug("source: candidate failed",
				zap.String("url", u),
				zap.Int("candidate", i+1),
				zap.Int("total", len(candidates)),
				zap.Error(err),
			)
			continue
		}

		zap.L().Info("source: acquired document",
			zap.String("date", date.Format(time.DateOnly)),
			zap.String("url", u),
			zap.Int("bytes", len(body)),
		)
		return &Document{Date: date, URL: u, Body: body}, nil
	}

	return nil, ErrNotFound
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
