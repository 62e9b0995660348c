// Package usecase runs the outbox worker that hands pending events to the notification processor.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/crm/internal/database"
	"github.com/allisson/crm/internal/outbox/domain"
)

// Config holds outbox worker configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error

	// GetPendingEvents claims up to limit pending events, oldest first. Rows stay locked
	// until the surrounding transaction ends.
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)

	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers a single event.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the outbox worker.
type UseCase interface {
	// Start polls for pending events until ctx is cancelled.
	Start(ctx context.Context) error

	// ProcessEvents handles one batch of pending events.
	ProcessEvents(ctx context.Context) error
}

type outboxUseCase struct {
	config     Config
	txManager  database.TxManager
	outboxRepo OutboxEventRepository
	processor  EventProcessor
	logger     *slog.Logger
	now        func() time.Time
}

// Start polls for pending events until ctx is cancelled.
func (uc *outboxUseCase) Start(ctx context.Context) error {
	uc.logger.Info("starting outbox worker",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
		slog.Int("max_retries", uc.config.MaxRetries),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox worker")
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process outbox events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents claims a batch inside a transaction so concurrent workers never deliver the
// same event twice.
func (uc *outboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		uc.logger.Debug("processing outbox events", slog.Int("count", len(events)))

		for _, event := range events {
			uc.apply(event, uc.processor.Process(ctx, event))
			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

// apply records the delivery outcome on event. A failed event stays pending until it reaches
// MaxRetries.
func (uc *outboxUseCase) apply(event *domain.OutboxEvent, processErr error) {
	now := uc.now().UTC()
	event.UpdatedAt = now

	if processErr == nil {
		event.Status = domain.OutboxEventStatusProcessed
		event.ProcessedAt = &now
		event.LastError = nil
		return
	}

	uc.logger.Error("failed to process outbox event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.Int("retries", event.Retries+1),
		slog.Any("error", processErr),
	)

	event.Retries++
	message := processErr.Error()
	event.LastError = &message
	if event.Retries >= uc.config.MaxRetries {
		event.Status = domain.OutboxEventStatusFailed
	}
}

// NewOutboxUseCase creates the outbox worker.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	processor EventProcessor,
	logger *slog.Logger,
) UseCase {
	return &outboxUseCase{
		config:     config,
		txManager:  txManager,
		outboxRepo: outboxRepo,
		processor:  processor,
		logger:     logger,
		now:        time.Now,
	}
}
