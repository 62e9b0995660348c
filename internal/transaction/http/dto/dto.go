// Package dto provides data transfer objects for the transaction endpoints.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
	transactionUseCase "github.com/allisson/crm/internal/transaction/usecase"
	customValidation "github.com/allisson/crm/internal/validation"
)

// CreateTransactionRequest records a purchase for a member of the organization.
type CreateTransactionRequest struct {
	UserID  string `json:"user_id"`
	PriceID string `json:"price_id"`
	Status  string `json:"status,omitempty"`
}

// Validate checks if the create transaction request is valid.
func (r *CreateTransactionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required, customValidation.UUID),
		validation.Field(&r.PriceID, validation.Required, customValidation.UUID),
		validation.Field(&r.Status, validation.In(transactionDomain.StatusValues()...)),
	)
}

// ToInput converts a validated request into use case input.
func (r *CreateTransactionRequest) ToInput() transactionUseCase.CreateInput {
	return transactionUseCase.CreateInput{
		UserID:  uuid.MustParse(r.UserID),
		PriceID: uuid.MustParse(r.PriceID),
		Status:  transactionDomain.Status(r.Status),
	}
}

// TransactionResponse is the public view of a transaction.
type TransactionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	PriceID   string    `json:"price_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PurchaseResponse tells whether the caller bought a product.
type PurchaseResponse struct {
	ProductID string `json:"product_id"`
	Purchased bool   `json:"purchased"`
}

// MapTransactionToResponse converts a transaction into its response.
func MapTransactionToResponse(transaction *transactionDomain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        transaction.ID.String(),
		UserID:    transaction.UserID.String(),
		ProductID: transaction.ProductID.String(),
		PriceID:   transaction.PriceID.String(),
		Amount:    transaction.Amount,
		Currency:  transaction.Currency,
		Status:    string(transaction.Status),
		CreatedAt: transaction.CreatedAt,
		UpdatedAt: transaction.UpdatedAt,
	}
}

// MapTransactionsToResponse converts a list of transactions.
func MapTransactionsToResponse(transactions []*transactionDomain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, MapTransactionToResponse(transaction))
	}
	return responses
}
