package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
)

func TestCreateTransactionRequest_Validate(t *testing.T) {
	userID := uuid.Must(uuid.NewV7()).String()
	priceID := uuid.Must(uuid.NewV7()).String()

	tests := []struct {
		name    string
		request CreateTransactionRequest
		wantErr bool
	}{
		{"valid without status", CreateTransactionRequest{UserID: userID, PriceID: priceID}, false},
		{"valid with status", CreateTransactionRequest{UserID: userID, PriceID: priceID, Status: "pending"}, false},
		{"unknown status", CreateTransactionRequest{UserID: userID, PriceID: priceID, Status: "paid"}, true},
		{"malformed user id", CreateTransactionRequest{UserID: "abc", PriceID: priceID}, true},
		{"missing price id", CreateTransactionRequest{UserID: userID}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTransactionRequest_ToInput(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	priceID := uuid.Must(uuid.NewV7())

	input := (&CreateTransactionRequest{UserID: userID.String(), PriceID: priceID.String(), Status: "failed"}).ToInput()
	assert.Equal(t, userID, input.UserID)
	assert.Equal(t, priceID, input.PriceID)
	assert.Equal(t, transactionDomain.StatusFailed, input.Status)
}
