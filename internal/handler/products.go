package handler

import (
	"net/http"
	"strconv"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products *service.ProductService
	ledger   *service.LedgerService
}

func NewProductHandler(products *service.ProductService, ledger *service.LedgerService) *ProductHandler {
	return &ProductHandler{products: products, ledger: ledger}
}

// List godoc
// @Summary      List products
// @Tags         products
// @Param        search  query  string  false  "Filter by name"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {array}  dto.ProductResponse
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := dto.ProductFilter{}
	if !bindQueryAndValidate(c, &filter) {
		return
	}

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, service.ProductToResponse(&products[i]))
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get a product
// @Tags         products
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ProductToResponse(product))
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Param        payload  body  dto.CreateProductRequest  true  "Product"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	req := dto.CreateProductRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.ProductToResponse(product))
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Param        id       path  string                    true  "Product id"
// @Param        payload  body  dto.UpdateProductRequest  true  "Fields to change"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req := dto.UpdateProductRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ProductToResponse(product))
}

// Delete godoc
// @Summary      Delete a product
// @Description  Products with purchases or sales on record cannot be deleted.
// @Tags         products
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      400  {object}  apierror.APIError
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Manually adjust stock
// @Description  Applies a signed delta through the stock ledger, recording an audit movement.
// @Tags         products
// @Param        id       path  string                  true  "Product id"
// @Param        payload  body  dto.AdjustStockRequest  true  "Adjustment"
// @Success      200  {object}  dto.ProductResponse
// @Failure      409  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req := dto.AdjustStockRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.ledger.AdjustStock(c.Request.Context(), id, req.Delta, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ProductToResponse(product))
}
