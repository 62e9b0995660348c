// Package dto provides data transfer objects for the catalog endpoints.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
	customValidation "github.com/allisson/crm/internal/validation"
)

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create product request is valid.
func (r *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// CreatePriceRequest adds a price to a product. Amount is in minor units.
type CreatePriceRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Validate checks if the create price request is valid.
func (r *CreatePriceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Amount, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Currency, validation.Required, customValidation.Currency),
	)
}

// PriceResponse is the public view of a price.
type PriceResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse is the public view of a product. Prices are only included on detail reads.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
	Prices      []PriceResponse `json:"prices,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MapPriceToResponse converts a price into its response.
func MapPriceToResponse(price *catalogDomain.Price) PriceResponse {
	return PriceResponse{
		ID:        price.ID.String(),
		ProductID: price.ProductID.String(),
		Amount:    price.Amount,
		Currency:  price.Currency,
		Active:    price.Active,
		CreatedAt: price.CreatedAt,
	}
}

// MapProductToResponse converts a product and its loaded prices into a response.
func MapProductToResponse(product *catalogDomain.Product) ProductResponse {
	response := ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for _, price := range product.Prices {
		response.Prices = append(response.Prices, MapPriceToResponse(price))
	}
	return response
}

// MapProductsToResponse converts a list of products.
func MapProductsToResponse(products []*catalogDomain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, MapProductToResponse(product))
	}
	return responses
}
