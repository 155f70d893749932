package infra

// pdf.go — Inventory report generation using go-pdf/fpdf.
// Produces an A4 table of the full catalog: name, stock on hand, unit cost,
// stock value, and a LOW marker for products at or below the threshold.
// The output file is saved to storagePath/inventory_report_{timestamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockdash/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateInventoryReportPDF writes an inventory report for the given
// products and returns the absolute path to the generated file.
func GenerateInventoryReportPDF(products []model.Product, lowStockThreshold int, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	now := time.Now()
	fileName := fmt.Sprintf("inventory_report_%s.pdf", now.Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core Helvetica is cp1252; product names must be translated or they
	// render as mojibake.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Inventory Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, now.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.40 // product name
	col2 := contentW * 0.12 // stock
	col3 := contentW * 0.18 // unit cost
	col4 := contentW * 0.20 // stock value
	col5 := contentW * 0.10 // low flag

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Stock", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "Unit Cost", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Value", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "", "B", 1, "C", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	totalValue := decimal.Zero
	lowCount := 0
	for _, p := range products {
		name := p.Name
		if runes := []rune(name); len(runes) > 48 {
			name = string(runes[:45]) + "..."
		}
		value := p.CostPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
		totalValue = totalValue.Add(value)

		flag := ""
		if p.StockQuantity <= lowStockThreshold {
			flag = "LOW"
			lowCount++
		}

		pdf.CellFormat(col1, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", p.StockQuantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+p.CostPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+value.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, flag, "", 1, "C", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, fmt.Sprintf("%d products, %d low on stock", len(products), lowCount), "", 0, "L", false, 0, "")
	pdf.CellFormat(col4+col5, 7, "$"+totalValue.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
