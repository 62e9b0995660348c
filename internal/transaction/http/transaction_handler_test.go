package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authHTTP "github.com/allisson/crm/internal/auth/http"
	authMocks "github.com/allisson/crm/internal/auth/usecase/mocks"
	"github.com/allisson/crm/internal/httputil"
	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
	"github.com/allisson/crm/internal/transaction/http/dto"
	transactionUseCase "github.com/allisson/crm/internal/transaction/usecase"
	transactionMocks "github.com/allisson/crm/internal/transaction/usecase/mocks"
)

func setupTransactionTestHandler(
	t *testing.T,
) (*TransactionHandler, *transactionMocks.MockTransactionUseCase, *authMocks.MockGate) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	transactions := &transactionMocks.MockTransactionUseCase{}
	gate := &authMocks.MockGate{}
	authorizer := authHTTP.NewAuthorizer(gate, &authMocks.MockSessionUseCase{}, authHTTP.CookieConfig{}, logger)

	return NewTransactionHandler(transactions, authorizer, logger), transactions, gate
}

func createTestContext(method, path string, body any, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	c.Request = httptest.NewRequest(method, path, bodyReader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	return c, w
}

func authorized(role authDomain.Role, orgID uuid.UUID) *authDomain.AuthDecision {
	identity := &authDomain.Identity{ID: uuid.Must(uuid.NewV7()), Email: "jane@example.com"}
	return &authDomain.AuthDecision{
		Authorized: true,
		Identity:   identity,
		Profile:    &authDomain.Profile{UserID: identity.ID, Role: role, OrgID: &orgID},
	}
}

func TestTransactionHandler_ListHandler(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())
	param := gin.Param{Key: "org_id", Value: orgID.String()}

	t.Run("Success", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)
		filter := transactionDomain.Filter{Status: transactionDomain.StatusSucceeded}

		gate.On("Authorize", mock.Anything, mock.Anything, transactionReaders.InOrg(orgID)).
			Return(authorized(authDomain.RoleSales, orgID), nil).
			Once()
		transactions.On("List", mock.Anything, orgID, filter, 5, 20).
			Return([]*transactionDomain.Transaction{{ID: uuid.Must(uuid.NewV7()), OrgID: orgID, Status: "succeeded"}}, 26, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/?status=succeeded&offset=5&limit=20", nil, param)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response httputil.ListResponse[dto.TransactionResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 26, response.Total)
		assert.Equal(t, 5, response.Offset)
		assert.Equal(t, 20, response.Limit)
		require.Len(t, response.Data, 1)
		assert.Equal(t, "succeeded", response.Data[0].Status)
	})

	t.Run("Error_MemberForbidden", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, transactionReaders.InOrg(orgID)).
			Return(&authDomain.AuthDecision{Reason: authDomain.ReasonForbidden}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/", nil, param)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		transactions.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidStatus", func(t *testing.T) {
		handler, _, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(authorized(authDomain.RoleOwner, orgID), nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/?status=paid", nil, param)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_Downstream", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(authorized(authDomain.RoleAdmin, orgID), nil).
			Once()
		transactions.On("List", mock.Anything, orgID, transactionDomain.Filter{}, 0, 50).
			Return(nil, 0, errors.New("database error")).
			Once()

		c, w := createTestContext(http.MethodGet, "/", nil, param)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTransactionHandler_GetHandler(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())
	transactionID := uuid.Must(uuid.NewV7())
	params := []gin.Param{{Key: "org_id", Value: orgID.String()}, {Key: "transaction_id", Value: transactionID.String()}}

	t.Run("Success", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(authorized(authDomain.RoleSales, orgID), nil).
			Once()
		transactions.On("Get", mock.Anything, orgID, transactionID).
			Return(&transactionDomain.Transaction{ID: transactionID, OrgID: orgID, Amount: 700}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/", nil, params...)
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(authorized(authDomain.RoleSales, orgID), nil).
			Once()
		transactions.On("Get", mock.Anything, orgID, transactionID).
			Return(nil, transactionDomain.ErrTransactionNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/", nil, params...)
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTransactionHandler_CreateHandler(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())
	param := gin.Param{Key: "org_id", Value: orgID.String()}
	userID := uuid.Must(uuid.NewV7())
	priceID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(authorized(authDomain.RoleSales, orgID), nil).
			Once()
		transactions.On("Create", mock.Anything, orgID, transactionUseCase.CreateInput{UserID: userID, PriceID: priceID}).
			Return(&transactionDomain.Transaction{
				ID:      uuid.Must(uuid.NewV7()),
				OrgID:   orgID,
				UserID:  userID,
				PriceID: priceID,
				Status:  transactionDomain.StatusSucceeded,
			}, nil).
			Once()

		body := dto.CreateTransactionRequest{UserID: userID.String(), PriceID: priceID.String()}
		c, w := createTestContext(http.MethodPost, "/", body, param)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.TransactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, priceID.String(), response.PriceID)
	})

	t.Run("Error_BuyerNotMember", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(authorized(authDomain.RoleAdmin, orgID), nil).
			Once()
		transactions.On("Create", mock.Anything, orgID, mock.Anything).
			Return(nil, transactionDomain.ErrBuyerNotMember).
			Once()

		body := dto.CreateTransactionRequest{UserID: userID.String(), PriceID: priceID.String()}
		c, w := createTestContext(http.MethodPost, "/", body, param)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		handler, transactions, gate := setupTransactionTestHandler(t)

		gate.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(authorized(authDomain.RoleAdmin, orgID), nil).
			Once()

		body := dto.CreateTransactionRequest{UserID: "nope", PriceID: priceID.String()}
		c, w := createTestContext(http.MethodPost, "/", body, param)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTransactionHandler_PurchaseHandler(t *testing.T) {
	orgID := uuid.Must(uuid.NewV7())
	productID := uuid.Must(uuid.NewV7())
	params := []gin.Param{{Key: "org_id", Value: orgID.String()}, {Key: "product_id", Value: productID.String()}}

	handler, transactions, gate := setupTransactionTestHandler(t)
	decision := authorized(authDomain.RoleMember, orgID)

	gate.On("Authorize", mock.Anything, mock.Anything, authDomain.AnyRole().InOrg(orgID)).Return(decision, nil).Once()
	transactions.On("HasPurchased", mock.Anything, orgID, decision.Identity.ID, productID).Return(true, nil).Once()

	c, w := createTestContext(http.MethodGet, "/", nil, params...)
	handler.PurchaseHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Purchased)
	assert.Equal(t, productID.String(), response.ProductID)
}
