package handler

import (
	"net/http"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate godoc
// @Summary      Generate the inventory report PDF
// @Description  Builds the report and streams it back as a file download.
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Security     BearerAuth
// @Router       /reports/inventory [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	path, err := h.reports.GenerateInventoryReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "inventory_report.pdf")
}

// Email godoc
// @Summary      Email the inventory report
// @Description  Generates the report and queues it for delivery; returns 202 once queued.
// @Tags         reports
// @Param        payload  body  dto.EmailReportRequest  true  "Recipient"
// @Success      202
// @Failure      400  {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /reports/inventory/email [post]
func (h *ReportHandler) Email(c *gin.Context) {
	req := dto.EmailReportRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.reports.EmailInventoryReport(c.Request.Context(), req.To); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
