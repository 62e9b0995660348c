package domain

import (
	"github.com/allisson/crm/internal/errors"
)

// Catalog errors. Records of other organizations are reported as not found.
var (
	// ErrProductNotFound indicates the product does not exist in the organization.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")

	// ErrPriceNotFound indicates the price does not exist in the organization.
	ErrPriceNotFound = errors.Wrap(errors.ErrNotFound, "price not found")

	// ErrInactiveProduct indicates a price was added to an archived product.
	ErrInactiveProduct = errors.Wrap(errors.ErrInvalidInput, "product is not active")
)
