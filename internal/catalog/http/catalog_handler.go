// Package http provides HTTP handlers for the product catalog.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authHTTP "github.com/allisson/crm/internal/auth/http"
	catalogDomain "github.com/allisson/crm/internal/catalog/domain"
	"github.com/allisson/crm/internal/catalog/http/dto"
	catalogUseCase "github.com/allisson/crm/internal/catalog/usecase"
	"github.com/allisson/crm/internal/httputil"
	customValidation "github.com/allisson/crm/internal/validation"
)

var catalogEditors = authDomain.RequireRoles(authDomain.RoleAdmin, authDomain.RoleOwner)

// CatalogHandler handles product and price endpoints.
type CatalogHandler struct {
	catalog    catalogUseCase.CatalogUseCase
	authorizer *authHTTP.Authorizer
	logger     *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(
	catalog catalogUseCase.CatalogUseCase,
	authorizer *authHTTP.Authorizer,
	logger *slog.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalog:    catalog,
		authorizer: authorizer,
		logger:     logger,
	}
}

// ListProductsHandler lists the products of the organization.
// GET /v1/organizations/:org_id/products?active&offset&limit - Any role in the same organization.
func (h *CatalogHandler) ListProductsHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, authDomain.AnyRole())
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	filter, err := parseProductFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	products, total, err := h.catalog.ListProducts(c.Request.Context(), orgID, filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.ListResponse[dto.ProductResponse]{
		Data:   dto.MapProductsToResponse(products),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// GetProductHandler returns a product with its prices.
// GET /v1/organizations/:org_id/products/:product_id - Any role in the same organization.
func (h *CatalogHandler) GetProductHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, authDomain.AnyRole())
	if !ok {
		return
	}

	productID, err := httputil.ParseUUIDParam(c, "product_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), orgID, productID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// CreateProductHandler adds a product to the catalog.
// POST /v1/organizations/:org_id/products - Admin or owner of the same organization.
func (h *CatalogHandler) CreateProductHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, catalogEditors)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), orgID, req.Name, req.Description)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProductToResponse(product))
}

// CreatePriceHandler adds a price to a product.
// POST /v1/organizations/:org_id/products/:product_id/prices - Admin or owner of the same organization.
func (h *CatalogHandler) CreatePriceHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, catalogEditors)
	if !ok {
		return
	}

	productID, err := httputil.ParseUUIDParam(c, "product_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	price, err := h.catalog.CreatePrice(c.Request.Context(), orgID, productID, req.Amount, req.Currency)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPriceToResponse(price))
}

func parseProductFilter(c *gin.Context) (catalogDomain.ProductFilter, error) {
	raw, present := c.GetQuery("active")
	if !present {
		return catalogDomain.ProductFilter{}, nil
	}
	active, err := strconv.ParseBool(raw)
	if err != nil {
		return catalogDomain.ProductFilter{}, fmt.Errorf("invalid active parameter: must be true or false")
	}
	return catalogDomain.ProductFilter{Active: &active}, nil
}
