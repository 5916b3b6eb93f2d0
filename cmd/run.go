package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reckoner-cli/internal/catalog"
	"github.com/sells-group/reckoner-cli/internal/document"
	"github.com/sells-group/reckoner-cli/internal/extract"
	"github.com/sells-group/reckoner-cli/internal/fetcher"
	"github.com/sells-group/reckoner-cli/internal/ledger"
	"github.com/sells-group/reckoner-cli/internal/runlog"
	"github.com/sells-group/reckoner-cli/internal/runner"
	"github.com/sells-group/reckoner-cli/internal/source"
)

var (
	runDate   string
	runFrom   string
	runTo     string
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, extract, and reconcile price sheets for a date or range",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		from, to, err := resolveRange(runDate, runFrom, runTo, time.Now())
		if err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:      cfg.HTTP.UserAgent,
			Timeout:        cfg.HTTP.HTTPTimeout(),
			MaxRetries:     cfg.HTTP.MaxRetries,
			RequestsPerSec: cfg.HTTP.RequestsPerSec,
		})
		acq := source.NewAcquirer(f, source.Options{
			BaseURL:          cfg.Source.BaseURL,
			CandidateDelay:   cfg.Source.CandidateDelay(),
			FallbackPriorDay: cfg.Source.FallbackPriorDay,
		})

		extractor := document.NewPdfToText(cfg.PDF.PdfToTextPath)
		validator := document.NewValidator(document.ValidatorOptions{
			MinBytes:      cfg.Validate.MinBytes,
			TextPrefixLen: cfg.Validate.TextPrefixLen,
			Markers:       cfg.Validate.MarkerKeywords,
		}, extractor)

		pipe := extract.NewPipeline(extract.Options{
			PriceRange: extract.NewRange(cfg.Extract.MinPrice, cfg.Extract.MaxPrice),
			WindowSize: cfg.Extract.WindowSize,
		})

		store, err := ledger.NewStore(cfg.Data.LedgerDir)
		if err != nil {
			return eris.Wrap(err, "open ledger store")
		}
		rec := ledger.NewReconciler(store, cat).WithDryRun(runDryRun)

		log, err := runlog.Open(cfg.RunLog.Path)
		if err != nil {
			zap.L().Warn("run log unavailable, continuing without history", zap.Error(err))
		}
		defer log.Close() //nolint:errcheck

		r := runner.New(acq, validator, extractor, pipe, rec, cat, log, runner.Options{
			PDFDir:    cfg.Data.PDFDir,
			DateDelay: cfg.Source.DateDelay(),
			DryRun:    runDryRun,
		})

		summary, err := r.Run(ctx, from, to)
		if err != nil {
			return eris.Wrap(err, "run")
		}

		if summary.Failed() {
			if summary.Acquired == 0 {
				return eris.Errorf("no price sheet acquired for any of %d dates", summary.DatesTotal)
			}
			return eris.Errorf("ledger persistence failed for every product across %d dates", summary.DatesTotal)
		}
		return nil
	},
}

// resolveRange turns the --date / --from / --to flags into an inclusive
// range. --date wins over the pair; all unset means today.
func resolveRange(date, from, to string, now time.Time) (time.Time, time.Time, error) {
	if date != "" {
		if from != "" || to != "" {
			return time.Time{}, time.Time{}, eris.New("--date cannot be combined with --from/--to")
		}
		d, err := parseDate(date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return d, d, nil
	}

	if from == "" && to == "" {
		today := ledger.Day(now)
		return today, today, nil
	}
	if from == "" {
		return time.Time{}, time.Time{}, eris.New("--to requires --from")
	}

	f, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t := ledger.Day(now)
	if to != "" {
		if t, err = parseDate(to); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return f, t, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "parse date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

func init() {
	runCmd.Flags().StringVar(&runDate, "date", "", "single date to process (YYYY-MM-DD, default today)")
	runCmd.Flags().StringVar(&runFrom, "from", "", "start of backfill range (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runTo, "to", "", "end of backfill range (YYYY-MM-DD, default today)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "extract and report without writing ledgers or caching PDFs")
	rootCmd.AddCommand(runCmd)
}
