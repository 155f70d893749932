package handler

import (
	"net/http"

	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Metrics godoc
// @Summary      Dashboard metrics
// @Description  Sales, inventory and customer summaries plus top products and recent activity. Cached between mutations.
// @Tags         dashboard
// @Success      200  {object}  dto.DashboardMetrics
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.dashboard.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// SalesSummary godoc
// @Summary      Sales summary for the trailing 30 days
// @Tags         dashboard
// @Success      200  {array}  dto.SalesSummary
// @Security     BearerAuth
// @Router       /summary/sales [get]
func (h *DashboardHandler) SalesSummary(c *gin.Context) {
	rows, err := h.dashboard.SalesSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// InventorySummary godoc
// @Summary      Inventory summary
// @Tags         dashboard
// @Success      200  {array}  dto.InventorySummary
// @Security     BearerAuth
// @Router       /summary/inventory [get]
func (h *DashboardHandler) InventorySummary(c *gin.Context) {
	rows, err := h.dashboard.InventorySummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CustomerSummary godoc
// @Summary      Customer summary
// @Tags         dashboard
// @Success      200  {array}  dto.CustomerSummary
// @Security     BearerAuth
// @Router       /summary/customers [get]
func (h *DashboardHandler) CustomerSummary(c *gin.Context) {
	rows, err := h.dashboard.CustomerSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
