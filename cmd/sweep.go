package cmd

import (
	"context"
	"fmt"
	"time"

	"erp-core/core/config"
	"erp-core/core/database"
	"erp-core/core/logger"
	"erp-core/feature/reservation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sweepCmd runs one reservation expiry cycle. It is meant to be invoked by
// an external scheduler (cron, systemd timer); "nothing to expire" is a
// normal zero exit.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Expire stale reservations and release their units",
	Long: `Runs one reservation expiry sweep cycle.

Every active reservation past its expiry time is marked expired inside a
single transaction, and its inventory unit is released back to 'available'
when the unit is still reserved. The command prints the number of
reservations expired and exits zero, including when nothing was expirable.

Example crontab entry (every five minutes):

  */5 * * * * /usr/local/bin/erp-core sweep`,
	RunE: runSweep,
}

func init() {
	RootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting reservation expiry sweep")

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := reservation.NewService(db, l)

	count, err := svc.Sweep(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("sweep cycle failed: %w", err)
	}

	l.Info("Sweep cycle complete", zap.Int("expired", count))
	fmt.Printf("Expired %d reservation(s)\n", count)

	return nil
}
