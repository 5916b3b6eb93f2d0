// Package runner sequences acquisition, validation, extraction, and
// reconciliation across one or more business days.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/reckoner-cli/internal/catalog"
	"github.com/sells-group/reckoner-cli/internal/document"
	"github.com/sells-group/reckoner-cli/internal/extract"
	"github.com/sells-group/reckoner-cli/internal/ledger"
	"github.com/sells-group/reckoner-cli/internal/runlog"
	"github.com/sells-group/reckoner-cli/internal/source"
)

// Acquirer obtains the day's document.
type Acquirer interface {
	Acquire(ctx context.Context, date time.Time) (*source.Document, error)
}

// Validator decides whether bytes are a usable document.
type Validator interface {
	Validate(ctx context.Context, data []byte) bool
}

// Pipeline extracts product prices from document text.
type Pipeline interface {
	Run(text string, cat *catalog.Catalog) extract.Result
}

// Reconciler merges a day's values into the ledgers.
type Reconciler interface {
	Reconcile(date time.Time, values map[string]decimal.Decimal) ledger.Outcome
}

// Options configures a Runner.
type Options struct {
	PDFDir    string        // local document cache; empty disables caching
	DateDelay time.Duration // pacing between processed dates
	DryRun    bool          // leave the filesystem untouched: no cache writes
}

// Summary is the outcome of one run.
type Summary struct {
	DatesTotal      int
	Acquired        int
	ProductFailures int // per-product persistence failures across all dates
	DatesPersisted  int // dates where at least one ledger row was written
}

// SuccessRate returns the acquisition success percentage. A zero-date run
// is trivially 100%.
func (s Summary) SuccessRate() float64 {
	if s.DatesTotal == 0 {
		return 100
	}
	return float64(s.Acquired) / float64(s.DatesTotal) * 100
}

// Failed reports whether the run should surface a non-zero exit: over a
// non-empty date range, either nothing was acquired or every ledger write
// failed on every date. Partial persistence failures degrade gracefully;
// total loss does not.
func (s Summary) Failed() bool {
	return s.DatesTotal > 0 && (s.Acquired == 0 || s.DatesPersisted == 0)
}

// Runner drives the pipeline for a range of dates, one date start-to-finish
// before the next; the ledgers' read-modify-write cycle is not safe under
// concurrent writers.
type Runner struct {
	acquirer  Acquirer
	validator Validator
	extractor document.Extractor
	pipeline  Pipeline
	rec       Reconciler
	cat       *catalog.Catalog
	log       *runlog.RunLog
	opts      Options
}

// New creates a Runner.
func New(a Acquirer, v Validator, ex document.Extractor, p Pipeline, rec Reconciler, cat *catalog.Catalog, log *runlog.RunLog, opts Options) *Runner {
	return &Runner{
		acquirer:  a,
		validator: v,
		extractor: ex,
		pipeline:  p,
		rec:       rec,
		cat:       cat,
		log:       log,
		opts:      opts,
	}
}

// BusinessDays expands an inclusive date range into its weekdays.
func BusinessDays(from, to time.Time) []time.Time {
	var days []time.Time
	for d := ledger.Day(from); !d.After(ledger.Day(to)); d = d.AddDate(0, 0, 1) {
		if !source.IsWeekend(d) {
			days = append(days, d)
		}
	}
	return days
}

// Run processes every business day in [from, to] and returns the summary.
// Individual date failures degrade gracefully; the only errors returned are
// contract violations and context cancellation.
func (r *Runner) Run(ctx context.Context, from, to time.Time) (Summary, error) {
	if from.IsZero() || to.IsZero() {
		return Summary{}, eris.New("runner: zero date in range")
	}
	if to.Before(from) {
		return Summary{}, eris.Errorf("runner: range end %s before start %s",
			to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	days := BusinessDays(from, to)
	summary := Summary{DatesTotal: len(days)}

	runID, err := r.log.Start(ctx, from, to)
	if err != nil {
		zap.L().Warn("runner: run log unavailable", zap.Error(err))
	}

	for i, day := range days {
		if i > 0 && r.opts.DateDelay > 0 {
			if err := sleepCtx(ctx, r.opts.DateDelay); err != nil {
				return summary, err
			}
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		acquired := r.processDate(ctx, runID, day, &summary)
		if acquired {
			summary.Acquired++
		}
	}

	if err := r.log.Complete(ctx, runID, summary.DatesTotal, summary.Acquired); err != nil {
		zap.L().Warn("runner: run log completion failed", zap.Error(err))
	}

	zap.L().Info("runner: run complete",
		zap.Int("dates", summary.DatesTotal),
		zap.Int("acquired", summary.Acquired),
		zap.String("success_rate", fmt.Sprintf("%.1f%%", summary.SuccessRate())),
		zap.Int("dates_persisted", summary.DatesPersisted),
		zap.Int("product_failures", summary.ProductFailures),
	)

	return summary, nil
}

// processDate runs the full chain for one date and reports whether a
// document was acquired (from cache or network).
func (r *Runner) processDate(ctx context.Context, runID string, day time.Time, summary *Summary) bool {
	log := zap.L().With(zap.String("date", day.Format(time.DateOnly)))

	doc := r.cachedDocument(ctx, day)
	if doc == nil {
		var err error
		doc, err = r.acquirer.Acquire(ctx, day)
		if err != nil {
			if !eris.Is(err, source.ErrNotFound) && ctx.Err() == nil {
				log.Warn("acquisition error", zap.Error(err))
			} else {
				log.Warn("no document found")
			}
			// Reconcile anyway: forward-fill keeps the series continuous.
			if r.reconcile(ctx, runID, day, extract.Result{}, false, "", summary) {
				summary.DatesPersisted++
			}
			return false
		}
		r.cacheDocument(doc)
	}

	if !r.validator.Validate(ctx, doc.Body) {
		log.Warn("document failed validation, treating as missing",
			zap.String("url", doc.URL),
		)
		if r.reconcile(ctx, runID, day, extract.Result{}, false, "", summary) {
			summary.DatesPersisted++
		}
		return false
	}

	text, err := document.TextFromBytes(ctx, r.extractor, doc.Body)
	if err != nil {
		log.Warn("text extraction failed", zap.Error(err))
		text = ""
	}

	result := r.pipeline.Run(text, r.cat)
	log.Info("extraction complete",
		zap.Int("resolved", len(result.Values)),
		zap.Int("catalog", r.cat.Len()),
	)

	// A prior-business-day document carries that day's readings: record
	// them under their own date, then let the requested date forward-fill.
	if !ledger.Day(doc.Date).Equal(day) {
		priorOK := r.reconcile(ctx, runID, doc.Date, result, true, doc.URL, summary)
		dayOK := r.reconcile(ctx, runID, day, extract.Result{}, true, doc.URL, summary)
		if priorOK || dayOK {
			summary.DatesPersisted++
		}
		return true
	}

	if r.reconcile(ctx, runID, day, result, true, doc.URL, summary) {
		summary.DatesPersisted++
	}
	return true
}

// reconcile merges one date and reports whether any product's row made it
// into its ledger.
func (r *Runner) reconcile(ctx context.Context, runID string, day time.Time, result extract.Result, acquired bool, url string, summary *Summary) bool {
	out := r.rec.Reconcile(day, result.Values)
	summary.ProductFailures += len(out.Failed)

	if err := r.log.RecordDate(ctx, runID, day, acquired, url, len(result.Values)); err != nil {
		zap.L().Warn("runner: run log record failed", zap.Error(err))
	}

	return len(out.Failed) < r.cat.Len()
}

// cachedDocument returns a previously stored, still-valid document for day.
// Anything unreadable or invalid falls through to re-acquisition.
func (r *Runner) cachedDocument(ctx context.Context, day time.Time) *source.Document {
	if r.opts.PDFDir == "" {
		return nil
	}
	path := filepath.Join(r.opts.PDFDir, source.CanonicalFilename(day))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if !r.validator.Validate(ctx, data) {
		return nil
	}
	zap.L().Debug("runner: using cached document", zap.String("path", path))
	return &source.Document{Date: day, URL: "file://" + path, Body: data}
}

func (r *Runner) cacheDocument(doc *source.Document) {
	if r.opts.PDFDir == "" || r.opts.DryRun {
		return
	}
	if err := os.MkdirAll(r.opts.PDFDir, 0o755); err != nil {
		zap.L().Warn("runner: create pdf dir failed", zap.Error(err))
		return
	}
	path := filepath.Join(r.opts.PDFDir, source.CanonicalFilename(doc.Date))
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		zap.L().Warn("runner: cache write failed", zap.String("path", path), zap.Error(err))
	}
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
