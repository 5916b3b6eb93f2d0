package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/reckoner-cli/internal/fetcher"
	"github.com/sells-group/reckoner-cli/internal/source"
)

var (
	verifyDate        string
	verifyConcurrency int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Probe every candidate URL for a date without downloading",
	Long:  "Issues HEAD requests against each candidate spelling of the day's price sheet URL and reports which respond. Useful when the publisher changes its naming convention.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		date := time.Now()
		if verifyDate != "" {
			var err error
			if date, err = parseDate(verifyDate); err != nil {
				return err
			}
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:      cfg.HTTP.UserAgent,
			Timeout:        cfg.HTTP.HTTPTimeout(),
			MaxRetries:     cfg.HTTP.MaxRetries,
			RequestsPerSec: cfg.HTTP.RequestsPerSec,
		})

		concurrency := verifyConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Source.ProbeConcurrency
		}

		results := source.Probe(ctx, f, cfg.Source.BaseURL, date, concurrency)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STATUS\tURL")
		available := 0
		for _, res := range results {
			status := "missing"
			if res.Available {
				status = "ok"
				available++
			}
			fmt.Fprintf(w, "%s\t%s\n", status, res.URL)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d of %d candidates available for %s\n",
			available, len(results), date.Format(time.DateOnly))
		if available == 0 {
			return eris.Errorf("no candidate URL available for %s", date.Format(time.DateOnly))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyDate, "date", "", "date to probe (YYYY-MM-DD, default today)")
	verifyCmd.Flags().IntVar(&verifyConcurrency, "concurrency", 0, "parallel HEAD requests (default from config)")
	rootCmd.AddCommand(verifyCmd)
}
