package handler

import (
	"net/http"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	ledger *service.LedgerService
}

func NewSaleHandler(ledger *service.LedgerService) *SaleHandler {
	return &SaleHandler{ledger: ledger}
}

// List godoc
// @Summary      List sales, newest first
// @Tags         sales
// @Success      200  {array}  dto.SaleResponse
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.ledger.ListSales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, service.SaleToResponse(&sales[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get a sale
// @Tags         sales
// @Param        id  path  string  true  "Sale id"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sale, err := h.ledger.GetSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.SaleToResponse(sale))
}

// Create godoc
// @Summary      Record a sale
// @Description  Rejected with 409 when the product lacks sufficient stock. Total and profit are derived server-side.
// @Tags         sales
// @Param        payload  body  dto.CreateSaleRequest  true  "Sale"
// @Success      201  {object}  dto.SaleResponse
// @Failure      409  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	req := dto.CreateSaleRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.ledger.RecordSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.SaleToResponse(sale))
}

// Update godoc
// @Summary      Update a sale
// @Description  Old quantity returns to stock, new quantity leaves it; the result must stay non-negative.
// @Tags         sales
// @Param        id       path  string                 true  "Sale id"
// @Param        payload  body  dto.UpdateSaleRequest  true  "Fields to change"
// @Success      200  {object}  dto.SaleResponse
// @Failure      409  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req := dto.UpdateSaleRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.ledger.UpdateSale(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.SaleToResponse(sale))
}

// Delete godoc
// @Summary      Delete a sale
// @Description  Returns the sold quantity to stock.
// @Tags         sales
// @Param        id  path  string  true  "Sale id"
// @Success      204
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteSale(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
