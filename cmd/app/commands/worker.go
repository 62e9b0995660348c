package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allisson/crm/internal/app"
	"github.com/allisson/crm/internal/config"
	outboxUseCase "github.com/allisson/crm/internal/outbox/usecase"
)

// RunWorker starts the outbox worker and blocks until SIGINT/SIGTERM.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting worker", slog.String("version", version))
	defer closeContainer(container, logger)

	worker, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runWorker(ctx, worker)
}

// runWorker treats cancellation as a clean stop.
func runWorker(ctx context.Context, worker outboxUseCase.UseCase) error {
	if err := worker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker error: %w", err)
	}
	return nil
}
