// Package http provides HTTP handlers for transactions and purchase checks.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authHTTP "github.com/allisson/crm/internal/auth/http"
	"github.com/allisson/crm/internal/httputil"
	transactionDomain "github.com/allisson/crm/internal/transaction/domain"
	"github.com/allisson/crm/internal/transaction/http/dto"
	transactionUseCase "github.com/allisson/crm/internal/transaction/usecase"
	customValidation "github.com/allisson/crm/internal/validation"
)

var transactionReaders = authDomain.RequireRoles(authDomain.RoleAdmin, authDomain.RoleOwner, authDomain.RoleSales)

// TransactionHandler handles transaction and purchase endpoints.
type TransactionHandler struct {
	transactions transactionUseCase.TransactionUseCase
	authorizer   *authHTTP.Authorizer
	logger       *slog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(
	transactions transactionUseCase.TransactionUseCase,
	authorizer *authHTTP.Authorizer,
	logger *slog.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		authorizer:   authorizer,
		logger:       logger,
	}
}

// ListHandler lists the transactions of the organization.
// GET /v1/organizations/:org_id/transactions?status&offset&limit - Admin, owner or sales.
func (h *TransactionHandler) ListHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, transactionReaders)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	transactions, total, err := h.transactions.List(c.Request.Context(), orgID, filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.ListResponse[dto.TransactionResponse]{
		Data:   dto.MapTransactionsToResponse(transactions),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// GetHandler returns a transaction of the organization.
// GET /v1/organizations/:org_id/transactions/:transaction_id - Admin, owner or sales.
func (h *TransactionHandler) GetHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, transactionReaders)
	if !ok {
		return
	}

	transactionID, err := httputil.ParseUUIDParam(c, "transaction_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	transaction, err := h.transactions.Get(c.Request.Context(), orgID, transactionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(transaction))
}

// CreateHandler records a purchase.
// POST /v1/organizations/:org_id/transactions - Admin, owner or sales.
func (h *TransactionHandler) CreateHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, transactionReaders)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	transaction, err := h.transactions.Create(c.Request.Context(), orgID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTransactionToResponse(transaction))
}

// PurchaseHandler reports whether the caller bought the product.
// GET /v1/organizations/:org_id/purchases/:product_id - Any role in the same organization.
func (h *TransactionHandler) PurchaseHandler(c *gin.Context) {
	decision, orgID, ok := h.authorizer.AuthorizeOrg(c, authDomain.AnyRole())
	if !ok {
		return
	}

	productID, err := httputil.ParseUUIDParam(c, "product_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	purchased, err := h.transactions.HasPurchased(c.Request.Context(), orgID, decision.Identity.ID, productID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PurchaseResponse{ProductID: productID.String(), Purchased: purchased})
}

func parseFilter(c *gin.Context) (transactionDomain.Filter, error) {
	status := c.Query("status")
	if status == "" {
		return transactionDomain.Filter{}, nil
	}
	if !slices.Contains(transactionDomain.StatusValues(), any(status)) {
		return transactionDomain.Filter{}, fmt.Errorf("invalid status parameter: %q", status)
	}
	return transactionDomain.Filter{Status: transactionDomain.Status(status)}, nil
}
