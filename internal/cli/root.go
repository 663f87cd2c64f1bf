package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gold-trackers/goldwatch/internal/app"
	"github.com/gold-trackers/goldwatch/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "goldwatch",
	Short:   "Scrapes gold bullion listings into a spreadsheet store",
	Long:    `Goldwatch extracts product/price listings from one JavaScript-rendered shop page and upserts them into a spreadsheet, deduplicated by date and product name.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). An error exits non-zero so
// the invoking scheduler can flag the run as failed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Lazily initialize the application before running commands (avoid
	// starting it for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.NavTimeout)
		defer cancel()
		application, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		SetApp(cmd, application)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		application := GetApp()
		if application == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), application.Config.NavTimeout)
		defer cancel()
		if err := application.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Error during shutdown")
		}
		SetApp(cmd, nil)
	}
}
