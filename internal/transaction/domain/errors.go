package domain

import (
	"github.com/allisson/crm/internal/errors"
)

// Transaction errors.
var (
	// ErrTransactionNotFound indicates the transaction does not exist in the organization.
	ErrTransactionNotFound = errors.Wrap(errors.ErrNotFound, "transaction not found")

	// ErrBuyerNotMember indicates the buyer does not belong to the organization.
	ErrBuyerNotMember = errors.Wrap(errors.ErrInvalidInput, "buyer is not a member of the organization")

	// ErrInactivePrice indicates a purchase against an archived price.
	ErrInactivePrice = errors.Wrap(errors.ErrInvalidInput, "price is not active")
)
