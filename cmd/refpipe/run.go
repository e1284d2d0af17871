package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/camberhealth/refpipe/internal/db"
	"github.com/camberhealth/refpipe/internal/etl"
	"github.com/camberhealth/refpipe/internal/exitcode"
	"github.com/camberhealth/refpipe/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bronze→silver→gold pipeline for one client",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&cfg.ClientName, "client", "", "Client display name (required)")
	f.StringVar(&cfg.PracticeName, "practice", "", "Practice name (defaults to \"<client> Main\")")
	_ = runCmd.MarkFlagRequired("client")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file invalid")
		os.Exit(exitcode.ValidationError)
	}
	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := etl.Run(ctx, pool, log, &cfg)
	if err != nil {
		if pe, ok := err.(*etl.PipelineError); ok {
			log.Error().Err(pe.Err).
				Str("phase", pe.Phase).
				Int64("silver_rows", summary.SilverRows).
				Int64("summary_rows", summary.SummaryRows).
				Int64("breakdown_rows", summary.BreakdownRows).
				Msg("pipeline failed")
			if pe.Phase == etl.PhaseBootstrap {
				os.Exit(exitcode.BootstrapError)
			}
			os.Exit(exitcode.TransformError)
		}
		log.Error().Err(err).Msg("pipeline failed")
		os.Exit(exitcode.TransformError)
	}

	if !summary.Success {
		fmt.Printf("Pipeline finished without data: %s\n", summary.Message)
		return nil
	}

	fmt.Printf("Pipeline complete: %d silver facts, %d summary rows, %d breakdown rows (%.1fs)\n",
		summary.SilverRows, summary.SummaryRows, summary.BreakdownRows,
		summary.DurationTotal.Seconds())
	return nil
}
