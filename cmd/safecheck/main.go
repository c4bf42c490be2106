package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/safecheck/safecheck/internal/adapters/httpapi"
	"github.com/safecheck/safecheck/internal/config"
	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/di"
	"github.com/safecheck/safecheck/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	cfg *config.Config,
	mailSource ports.MailSource,
	apiServer *httpapi.Server,
	verdictCache core.VerdictCache,
) error {
	defer logger.Sync()

	// Start the SMTP ingest source
	if cfg.GetSMTP().Enabled {
		if err := mailSource.Start(); err != nil {
			logger.Fatal("Failed to start mail source", zap.Error(err))
			return err
		}
	}

	// Start the HTTP API
	if cfg.GetHTTP().Enabled {
		if err := apiServer.Start(); err != nil {
			logger.Fatal("Failed to start HTTP API", zap.Error(err))
			return err
		}
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the mail source
	if cfg.GetSMTP().Enabled {
		if err := mailSource.Stop(); err != nil {
			logger.Error("Failed to stop mail source", zap.Error(err))
		}
	}

	// Stop the HTTP API
	if cfg.GetHTTP().Enabled {
		if err := apiServer.Stop(); err != nil {
			logger.Error("Failed to stop HTTP API", zap.Error(err))
		}
	}

	// Stop the cache if needed
	if stopper, ok := verdictCache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
