// Package domain defines purchase transactions recorded against catalog prices.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

var allStatuses = []Status{StatusPending, StatusSucceeded, StatusFailed, StatusRefunded}

// StatusValues returns every valid status as a string, for validation rules.
func StatusValues() []any {
	values := make([]any, 0, len(allStatuses))
	for _, s := range allStatuses {
		values = append(values, string(s))
	}
	return values
}

// Transaction records that a member of an organization bought a product at a price.
// Amount and Currency are copied from the price when the transaction is created.
type Transaction struct {
	ID        uuid.UUID
	OrgID     uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	PriceID   uuid.UUID
	Amount    int64
	Currency  string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows transaction listings. An empty Status matches every status.
type Filter struct {
	Status Status
}
