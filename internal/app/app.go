package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/TextForge/internal/config"
	"github.com/GoArmGo/TextForge/internal/core/ports"
	"github.com/GoArmGo/TextForge/internal/database/client"
	"github.com/GoArmGo/TextForge/internal/handler"
)

// App bundles the initialized application for either run mode.
type App struct {
	Config          *config.Config
	logger          *slog.Logger
	dbClient        *client.Client
	handler         *handler.Handler
	archiveConsumer ports.ArchiveConsumer
	archiveStorage  ports.FileStorage
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	h *handler.Handler,
	archiveConsumer ports.ArchiveConsumer,
	archiveStorage ports.FileStorage,
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		dbClient:        dbClient,
		handler:         h,
		archiveConsumer: archiveConsumer,
		archiveStorage:  archiveStorage,
	}
}

// LoggerIns exposes the application logger.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run starts the selected mode and blocks until a termination signal.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = a.runServer(ctx)
	case "worker":
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("unknown mode: %s (use 'server' or 'worker')", mode)
	}
	if err != nil {
		return err
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown releases application resources.
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	if closer, ok := a.archiveConsumer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}
