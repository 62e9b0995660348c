// Package domain defines the product catalog of an organization.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is something an organization sells. Prices hang off a product.
type Product struct {
	ID          uuid.UUID
	OrgID       uuid.UUID
	Name        string
	Description string
	Active      bool
	Prices      []*Price
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Price is an amount in minor currency units for a product.
type Price struct {
	ID        uuid.UUID
	OrgID     uuid.UUID
	ProductID uuid.UUID
	Amount    int64
	Currency  string
	Active    bool
	CreatedAt time.Time
}

// ProductFilter narrows product listings. A nil Active lists every product.
type ProductFilter struct {
	Active *bool
}
