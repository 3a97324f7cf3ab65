package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"cashflow/internal/config"
	"cashflow/internal/database"
	"cashflow/internal/logger"
	"cashflow/internal/router"
	"cashflow/internal/services"
	"cashflow/internal/validator"
)

// @title           Cash Flow Manager API
// @version         1.0
// @description     JSON endpoints of the Cash Flow Manager: record deletion, lookup quick-adds and dependent dropdown lookups.

// @host      localhost:8080
// @BasePath  /

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	svc := router.NewServices(dbManager.DB())

	if appConfig.SeedDefaults {
		if err := services.SeedDefaults(svc.Statuses, svc.Types); err != nil {
			return fmt.Errorf("failed to seed default lookups: %w", err)
		}
	}

	engine, err := router.New(svc)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	log.Infof("Starting Cash Flow Manager on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
