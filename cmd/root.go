package cmd

import (
	"fmt"
	"os"

	"erp-core/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "erp-core",
	Short: "ERP Core Service",
	Long: `ERP Core hosts the operational backbone of the ERP: the attendance
ingestion endpoint for hardware punch-clocks and the reservation expiry sweep.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level to match CLI expectations
		// (readable timestamps instead of epoch).
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
