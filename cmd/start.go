package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"erp-core/core/config"
	"erp-core/core/database"
	"erp-core/core/loader"
	"erp-core/core/logger"
	"erp-core/core/middleware/rayid"

	"erp-core/feature/attendance"
	attendancemodels "erp-core/feature/attendance/models"
	"erp-core/feature/reservation"
	reservationmodels "erp-core/feature/reservation/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "erp-core/docs/swagger"
)

// @title ERP Core API
// @version 1.0
// @description Attendance ingestion and reservation maintenance endpoints.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ERP core server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (required, every feature persists through it)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}

		if err := db.AutoMigrate(
			&attendancemodels.AttendanceDevice{},
			&attendancemodels.Employee{},
			&attendancemodels.AttendanceRecord{},
			&reservationmodels.Reservation{},
			&reservationmodels.Unit{},
		); err != nil {
			logg.Fatal("Schema migration failed", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			BodyLimit:             cfg.Server.BodyLimit,
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()

		attendanceFeature, err := attendance.NewFeature(db, logg, cfg.Attendance)
		if err != nil {
			logg.Fatal("Failed to create attendance feature", zap.Error(err))
		}
		mgr.Register(attendanceFeature)
		mgr.Register(reservation.NewFeature(db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
