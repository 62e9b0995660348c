package usecase

import (
	"context"
	"log/slog"
)

type logLinkSender struct {
	logger *slog.Logger
}

// NewLogLinkSender returns the sender used when no mail transport is configured. It records
// that a link is ready by event and user id only.
func NewLogLinkSender(logger *slog.Logger) AuthLinkSender {
	return &logLinkSender{logger: logger}
}

func (s *logLinkSender) Send(ctx context.Context, link AuthLink) error {
	s.logger.InfoContext(ctx, "auth link ready for delivery",
		slog.String("event_id", link.EventID.String()),
		slog.String("event_type", link.EventType),
		slog.String("user_id", link.UserID.String()),
	)
	return nil
}
