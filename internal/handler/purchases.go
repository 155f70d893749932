package handler

import (
	"net/http"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	ledger *service.LedgerService
}

func NewPurchaseHandler(ledger *service.LedgerService) *PurchaseHandler {
	return &PurchaseHandler{ledger: ledger}
}

// List godoc
// @Summary      List purchases, newest first
// @Tags         purchases
// @Success      200  {array}  dto.PurchaseResponse
// @Security     BearerAuth
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.ledger.ListPurchases(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, service.PurchaseToResponse(&purchases[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get a purchase
// @Tags         purchases
// @Param        id  path  string  true  "Purchase id"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	purchase, err := h.ledger.GetPurchase(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.PurchaseToResponse(purchase))
}

// Create godoc
// @Summary      Record a purchase
// @Description  Adds the quantity to the product's stock atomically. Total cost is derived server-side.
// @Tags         purchases
// @Param        payload  body  dto.CreatePurchaseRequest  true  "Purchase"
// @Success      201  {object}  dto.PurchaseResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	req := dto.CreatePurchaseRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	purchase, err := h.ledger.RecordPurchase(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.PurchaseToResponse(purchase))
}

// Update godoc
// @Summary      Update a purchase
// @Description  Applies the net stock delta; rejected if stock would go negative.
// @Tags         purchases
// @Param        id       path  string                     true  "Purchase id"
// @Param        payload  body  dto.UpdatePurchaseRequest  true  "Fields to change"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      409  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /purchases/{id} [put]
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req := dto.UpdatePurchaseRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	purchase, err := h.ledger.UpdatePurchase(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.PurchaseToResponse(purchase))
}

// Delete godoc
// @Summary      Delete a purchase
// @Description  Takes the quantity back out of stock; rejected if stock would go negative.
// @Tags         purchases
// @Param        id  path  string  true  "Purchase id"
// @Success      204
// @Failure      409  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeletePurchase(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
