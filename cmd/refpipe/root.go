package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/camberhealth/refpipe/internal/config"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "refpipe",
	Short: "Bronze→Silver→Gold referral intake pipeline",
	Long:  "Loads practice-management exports into the bronze layer and promotes them into canonical intake facts and monthly referral metrics in Postgres.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "Path to YAML config file (calendar span, per-client cutoffs and mapping seeds)")
}

// loadConfigFile merges the optional YAML config file into cfg.
func loadConfigFile() error {
	if configPath == "" {
		return nil
	}
	return cfg.LoadFromFile(configPath)
}
