package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reckoner-cli/internal/catalog"
	"github.com/sells-group/reckoner-cli/internal/ledger"
	"github.com/sells-group/reckoner-cli/internal/runlog"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the price ledgers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}
		store, err := ledger.NewStore(cfg.Data.LedgerDir)
		if err != nil {
			return eris.Wrap(err, "open ledger store")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tROWS\tFIRST\tLAST\tLAST RATE")
		for _, p := range cat.Products() {
			l, err := store.Load(p.ID)
			if err != nil {
				fmt.Fprintf(w, "%s\t-\t-\t-\terror: %v\n", p.ID, err)
				continue
			}
			if len(l.Entries) == 0 {
				fmt.Fprintf(w, "%s\t0\t-\t-\t-\n", p.ID)
				continue
			}
			first := l.Entries[0]
			last, _ := l.Last()
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
				p.ID,
				len(l.Entries),
				first.Date.Format(time.DateOnly),
				last.Date.Format(time.DateOnly),
				last.Rate.String(),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		log, err := runlog.Open(cfg.RunLog.Path)
		if err != nil {
			zap.L().Warn("run log unavailable", zap.Error(err))
			return nil
		}
		defer log.Close() //nolint:errcheck

		if d, err := log.LastAcquired(ctx); err == nil && d != nil {
			fmt.Printf("\nLast successful acquisition: %s\n", d.Format(time.DateOnly))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
