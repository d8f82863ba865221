package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/handlers"
	"github.com/ternarybob/brevis/internal/interfaces"
	"github.com/ternarybob/brevis/internal/server"
	"github.com/ternarybob/brevis/internal/services/delivery"
	"github.com/ternarybob/brevis/internal/services/llm"
	"github.com/ternarybob/brevis/internal/services/render"
	"github.com/ternarybob/brevis/internal/services/report"
	"github.com/ternarybob/brevis/internal/services/scheduler"
	"github.com/ternarybob/brevis/internal/services/transform"
	"github.com/ternarybob/brevis/internal/services/warehouse"
	"github.com/ternarybob/brevis/internal/storage/badger"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	serverPort   = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP  = flag.Int("p", 0, "Server port (shorthand, overrides config)")
	serverHost   = flag.String("host", "", "Server host (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	// Parse command-line flags
	flag.Parse()

	// Handle version flag
	if *showVersion || *showVersionV {
		fmt.Printf("Brevis version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Merge port flags (shorthand takes precedence)
	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner
	var err error

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("brevis.toml"); err == nil {
			configFiles = append(configFiles, "brevis.toml")
		} else if _, err := os.Stat("deployments/local/brevis.toml"); err == nil {
			// Fallback: check deployments/local for users running from project root
			configFiles = append(configFiles, "deployments/local/brevis.toml")
		}
	}

	// 1. Load configuration (default -> file1 -> file2 -> ... -> env -> CLI)
	// Later config files override earlier ones
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		// Use temporary logger for startup errors
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	// 2. Apply command-line flag overrides (highest priority)
	common.ApplyFlagOverrides(config, finalPort, *serverHost)

	// 3. Initialize logger with final configuration
	logger = common.InitLogger(config)

	// 4. Print banner
	common.PrintBanner(common.GetFullVersion())

	logger.Info().
		Strs("config_files", configFiles).
		Int("port", config.Server.Port).
		Str("host", config.Server.Host).
		Str("provider", string(config.LLM.DefaultProvider)).
		Msg("Application configuration loaded")

	// Storage (optional: archiving is disabled when no path is configured)
	var db *badger.BadgerDB
	var reportStorage interfaces.ReportStorage
	if config.Storage.Badger.Path != "" {
		db, err = badger.NewBadgerDB(logger, &config.Storage.Badger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize storage")
		}
		defer db.Close()
		reportStorage = badger.NewReportStorage(db, logger)
	} else {
		logger.Warn().Msg("No storage path configured, report archiving disabled")
	}

	// Warehouse record source
	warehouseClient := warehouse.NewClient(
		config.Warehouse.BaseURL,
		config.Warehouse.APIKey,
		warehouse.WithLogger(logger),
		warehouse.WithRateLimit(config.Warehouse.RateLimit),
		warehouse.WithTimeout(config.Warehouse.RequestTimeout),
	)

	// Generation provider factory
	providerFactory := llm.NewProviderFactory(&config.Gemini, &config.Claude, &config.LLM, logger)
	defer providerFactory.Close()

	model := providerFactory.GetDefaultModel(providerFactory.DetectProvider(""))

	// Report pipeline
	generator := report.NewGenerator(providerFactory, &config.Report, model, logger)
	transformer := transform.NewService(logger)
	renderer := render.NewService(&config.Render, logger)
	reportService := report.NewService(warehouseClient, generator, transformer, renderer, reportStorage, &config.Report, logger)

	// Delivery
	deliveryService := delivery.NewService(&config.Delivery, logger)

	// Scheduler
	schedulerService := scheduler.NewService(reportService, deliveryService, &config.Schedule, logger)
	if err := schedulerService.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer schedulerService.Stop()

	// HTTP server
	healthHandler := handlers.NewHealthHandler(reportStorage, logger)
	reportHandler := handlers.NewReportHandler(reportService, deliveryService, reportStorage, logger)
	srv := server.New(config, healthHandler, reportHandler, logger)

	// Start server in goroutine
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Fatal().Str("panic", fmt.Sprintf("%v", r)).Msg("Server goroutine panicked")
			}
		}()

		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Give goroutine a moment to start
	time.Sleep(100 * time.Millisecond)

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("Interrupt signal received")

	// Graceful shutdown
	logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}
