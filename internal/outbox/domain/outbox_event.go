// Package domain defines the transactional outbox events emitted by the CRM.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the status of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Event types written by the use cases.
const (
	EventMagicLinkRequested   = "auth.magic_link_requested"
	EventRecoveryRequested    = "auth.recovery_requested"
	EventOrganizationSwitched = "organization.switched"
	EventTransactionCreated   = "transaction.created"
)

// OutboxEvent is a pending side effect stored in the same transaction as the change that caused it.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent builds a pending event with payload encoded as JSON.
func NewEvent(eventType string, payload any) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}

	now := time.Now().UTC()
	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(data),
		Status:    OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *OutboxEvent) Decode(v any) error {
	if err := json.Unmarshal([]byte(e.Payload), v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.EventType, err)
	}
	return nil
}

// AuthLinkPayload is carried by magic-link and recovery events. SealedLink holds the
// encrypted callback URL; the plaintext code is never persisted.
type AuthLinkPayload struct {
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	SealedLink string    `json:"sealed_link"`
}

// OrganizationSwitchedPayload is carried by organization.switched.
type OrganizationSwitchedPayload struct {
	UserID uuid.UUID `json:"user_id"`
	OrgID  uuid.UUID `json:"org_id"`
	Role   string    `json:"role"`
}

// TransactionCreatedPayload is carried by transaction.created.
type TransactionCreatedPayload struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	OrgID         uuid.UUID `json:"org_id"`
	UserID        uuid.UUID `json:"user_id"`
	ProductID     uuid.UUID `json:"product_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
}
