package main

import (
	"os"

	"github.com/camberhealth/refpipe/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
