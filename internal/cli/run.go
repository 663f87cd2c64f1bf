package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gold-trackers/goldwatch/internal/reconcile"
	"github.com/gold-trackers/goldwatch/pkg/models"
)

var (
	runURL      string
	runStore    string
	runSheet    string
	runDate     string
	runDebugDir string
)

// runCmd executes one scrape-merge-persist cycle
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape the target page once and upsert the results into the store",
	Long: `Runs the full pipeline: render the target page (escalating from a
headless to a visible browser when extraction comes up empty), extract
today's listings, merge them into the persisted store with date+product
last-wins dedup, and rewrite the store.

The command exits non-zero when every attempt yields no records, so a
broken extraction strategy is never reported as a quiet success.`,
	Example: `  # Scrape with defaults (MMTC-PAMP gold shop into gold_prices.xlsx)
  goldwatch run

  # Use a CSV store and an explicit date
  goldwatch run --store prices.csv --date 2026-08-26

  # Debug a flaky page with verbose logs
  goldwatch run -v --debug-dir ./debug`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runURL, "url", "", "Target page URL (default: the MMTC-PAMP gold shop)")
	runCmd.Flags().StringVar(&runStore, "store", "", "Persisted store path (.xlsx or .csv)")
	runCmd.Flags().StringVar(&runSheet, "sheet", "", "Worksheet name for .xlsx stores")
	runCmd.Flags().StringVar(&runDate, "date", "", "Observation date (YYYY-MM-DD, default today)")
	runCmd.Flags().StringVar(&runDebugDir, "debug-dir", "", "Directory for empty-result diagnostic artifacts")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	application := GetApp()
	if application == nil {
		return fmt.Errorf("application not initialized")
	}

	date := runDate
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", runDate)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := application.Orchestrator.Run(ctx, date)
	if err != nil {
		return err
	}

	existing, err := application.Store.ReadAll()
	if err != nil {
		return fmt.Errorf("read persisted store: %w", err)
	}

	merged := reconcile.Merge(existing, records)

	if err := application.Store.OverwriteAll(merged); err != nil {
		return fmt.Errorf("persist store: %w", err)
	}

	log.Info().
		Str("date", date).
		Int("scraped", len(records)).
		Int("total_rows", len(merged.Rows)).
		Str("store", application.Config.StorePath).
		Msg("Run completed")

	fmt.Fprintf(cmd.OutOrStdout(), "Upserted %d listings for %s (%d rows total) into %s\n",
		len(records), date, len(merged.Rows), application.Config.StorePath)
	return nil
}
