package handler

import (
	"net/http"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	ledger *service.LedgerService
}

func NewInventoryHandler(ledger *service.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Movements godoc
// @Summary      Stock movement audit trail
// @Description  Every stock change, newest first: purchases, sales, their updates and deletes, and manual adjustments.
// @Tags         inventory
// @Param        productId  query  string  false  "Filter by product"
// @Param        type       query  string  false  "Filter by movement type"
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  dto.StockMovementListResponse
// @Security     BearerAuth
// @Router       /inventory/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	filter := dto.StockMovementFilter{}
	if !bindQueryAndValidate(c, &filter) {
		return
	}

	movements, total, err := h.ledger.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, service.MovementToResponse(&movements[i]))
	}
	c.JSON(http.StatusOK, dto.StockMovementListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}
