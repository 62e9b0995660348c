package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	notificationDomain "github.com/allisson/crm/internal/notification/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
)

// EventProcessor turns outbox events into notifications. Sign-in and recovery links are
// opened and passed to the AuthLinkSender.
type EventProcessor struct {
	notificationRepo NotificationRepository
	links            LinkOpener
	sender           AuthLinkSender
	logger           *slog.Logger
	now              func() time.Time
}

// NewEventProcessor creates the processor used by the outbox worker.
func NewEventProcessor(
	notificationRepo NotificationRepository,
	links LinkOpener,
	sender AuthLinkSender,
	logger *slog.Logger,
) *EventProcessor {
	return &EventProcessor{
		notificationRepo: notificationRepo,
		links:            links,
		sender:           sender,
		logger:           logger,
		now:              time.Now,
	}
}

// Process handles a single outbox event. Unknown event types are skipped.
func (p *EventProcessor) Process(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	switch event.EventType {
	case outboxDomain.EventMagicLinkRequested, outboxDomain.EventRecoveryRequested:
		var payload outboxDomain.AuthLinkPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		url, err := p.links.Open(ctx, payload.SealedLink)
		if err != nil {
			return err
		}
		return p.sender.Send(ctx, AuthLink{
			EventID:   event.ID,
			EventType: event.EventType,
			UserID:    payload.UserID,
			Email:     payload.Email,
			URL:       url,
		})

	case outboxDomain.EventOrganizationSwitched:
		var payload outboxDomain.OrganizationSwitchedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		return p.notify(ctx, payload.UserID, payload.OrgID, notificationDomain.KindOrganizationSwitched,
			"Active organization changed",
			fmt.Sprintf("You are now working in organization %s as %s.", payload.OrgID, payload.Role),
		)

	case outboxDomain.EventTransactionCreated:
		var payload outboxDomain.TransactionCreatedPayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		return p.notify(ctx, payload.UserID, payload.OrgID, notificationDomain.KindTransactionCreated,
			"Purchase recorded",
			fmt.Sprintf("A purchase of %d %s was recorded for product %s.", payload.Amount, payload.Currency, payload.ProductID),
		)

	default:
		p.logger.WarnContext(ctx, "skipping unknown outbox event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
		)
		return nil
	}
}

func (p *EventProcessor) notify(ctx context.Context, userID, orgID uuid.UUID, kind, title, body string) error {
	return p.notificationRepo.Create(ctx, &notificationDomain.Notification{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		OrgID:     &orgID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: p.now().UTC(),
	})
}
