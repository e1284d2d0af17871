package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/camberhealth/refpipe/internal/db"
	"github.com/camberhealth/refpipe/internal/exitcode"
	"github.com/camberhealth/refpipe/internal/ingest"
	"github.com/camberhealth/refpipe/internal/logging"
	"github.com/camberhealth/refpipe/internal/refdata"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load practice-management Parquet exports into the bronze layer",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.ClientName, "client", "", "Client display name (required)")
	f.StringVar(&cfg.PracticeName, "practice", "", "Practice name (defaults to \"<client> Main\")")
	f.StringVar(&cfg.AppointmentsPath, "appointments", "", "Path to appointment export Parquet file")
	f.StringVar(&cfg.ReferralsPath, "referrals", "", "Path to referral export Parquet file")
	_ = loadCmd.MarkFlagRequired("client")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
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
	if cfg.AppointmentsPath == "" && cfg.ReferralsPath == "" {
		log.Error().Msg("at least one of --appointments or --referrals is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	clientID, err := refdata.EnsureClient(ctx, pool, cfg.ClientName)
	if err != nil {
		log.Error().Err(err).Msg("resolve client failed")
		os.Exit(exitcode.LoadError)
	}
	practiceID, err := refdata.EnsurePractice(ctx, pool, clientID, cfg.EffectivePracticeName())
	if err != nil {
		log.Error().Err(err).Msg("resolve practice failed")
		os.Exit(exitcode.LoadError)
	}

	if cfg.AppointmentsPath != "" {
		summary, err := ingest.LoadAppointments(ctx, pool, log, clientID, practiceID, cfg.AppointmentsPath)
		if err != nil {
			log.Error().Err(err).Msg("appointment load failed")
			os.Exit(exitcode.LoadError)
		}
		fmt.Printf("Appointments: %d loaded, %d rejected, %d replaced (%.1fs)\n",
			summary.RowsLoaded, summary.RowsRejected, summary.RowsReplaced,
			summary.Duration.Seconds())
	}

	if cfg.ReferralsPath != "" {
		summary, err := ingest.LoadReferrals(ctx, pool, log, clientID, practiceID, cfg.ReferralsPath)
		if err != nil {
			log.Error().Err(err).Msg("referral load failed")
			os.Exit(exitcode.LoadError)
		}
		fmt.Printf("Referrals: %d loaded, %d rejected, %d replaced (%.1fs)\n",
			summary.RowsLoaded, summary.RowsRejected, summary.RowsReplaced,
			summary.Duration.Seconds())
	}

	return nil
}
