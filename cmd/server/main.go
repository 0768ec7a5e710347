package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-keyledger/internal/adapters/http/middleware"
	"campus-keyledger/internal/adapters/http/routes"
	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/config"
	"campus-keyledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed lookup tables and the initial superuser
	if err := config.SeedReferenceData(db); err != nil {
		log.Printf("Warning: Failed to seed reference data: %v", err)
	}

	// Start scheduled ledger housekeeping
	autoService := services.NewLedgerAutoService(
		repositories.NewBorrowingRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg.Ledger.SummaryCronSpec,
		time.Duration(cfg.Ledger.OverdueHours)*time.Hour,
	)
	if err := autoService.Start(); err != nil {
		log.Fatalf("Failed to start ledger auto service: %v", err)
	}
	defer autoService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "campus-keyledger",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
