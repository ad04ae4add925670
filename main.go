// Package main provides the main entry point for the email feedback service
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirphl/email-feedback/app/handlers"
	"github.com/amirphl/email-feedback/app/router"
	businessflow "github.com/amirphl/email-feedback/business_flow"
	"github.com/amirphl/email-feedback/config"
	"github.com/amirphl/email-feedback/logger"
	"github.com/amirphl/email-feedback/migrations"
	"github.com/amirphl/email-feedback/repository"
	"github.com/amirphl/email-feedback/tracing"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router          router.Router
	config          *config.ProductionConfig
	log             *logger.Logger
	db              *gorm.DB
	shutdownTracing tracing.ShutdownFunc
}

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	appLog.Info("Starting email feedback service",
		"environment", cfg.Deployment.Environment,
		"version", cfg.Deployment.Version,
	)

	app, err := initializeApplication(context.Background(), cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to initialize application", "error", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		if err := app.router.Start(cfg.Server.Address()); err != nil {
			appLog.Fatal("Failed to start server", "error", err)
		}
	}()

	<-sigChan
	appLog.Info("Shutting down gracefully...")
	app.shutdown()
	appLog.Info("Server stopped")
}

// initializeApplication builds the dependency graph behind the router
func initializeApplication(ctx context.Context, cfg *config.ProductionConfig, appLog *logger.Logger) (*Application, error) {
	shutdownTracing, err := tracing.Init(ctx, appLog, cfg.Tracing, cfg.Deployment)
	if err != nil {
		return nil, err
	}

	db, err := initializeDatabase(cfg.Database, appLog)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, cfg.Database.DSN()); err != nil {
			return nil, err
		}
		appLog.Info("Database migrations applied")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Repositories
	ratingRepo := repository.NewEmailRatingRepository(db)

	// Business flows
	submissionFlow := businessflow.NewRatingSubmissionFlow(ratingRepo, appLog)
	dashboardFlow := businessflow.NewRatingDashboardFlow(ratingRepo, appLog)

	// Handlers
	ratingHandler := handlers.NewRatingHandler(submissionFlow, appLog, cfg.Server.RequestTimeout)
	dashboardHandler := handlers.NewRatingDashboardHandler(
		dashboardFlow,
		appLog,
		cfg.Dashboard.Title,
		cfg.Server.RequestTimeout,
		cfg.Dashboard.ExportTimeout,
	)

	r := router.NewFiberRouter(cfg, appLog, sqlDB, ratingHandler, dashboardHandler)

	return &Application{
		router:          r,
		config:          cfg,
		log:             appLog,
		db:              db,
		shutdownTracing: shutdownTracing,
	}, nil
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, appLog *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.New(appLog, gormlogger.Config{
			SlowThreshold:             cfg.SlowQueryTime,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	appLog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return db, nil
}

// shutdown stops the server and releases tracing and database resources
func (a *Application) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.router.GetApp().ShutdownWithContext(ctx); err != nil {
		a.log.Error("Error during server shutdown", "error", err)
	}

	if err := a.shutdownTracing(ctx); err != nil {
		a.log.Error("Error flushing traces", "error", err)
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database", "error", err)
		}
	}
}
