package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"          validate:"required,min=1,max=120"`
	CostPrice     decimal.Decimal `json:"costPrice"     validate:"min=0"`
	Price         decimal.Decimal `json:"price"         validate:"min=0"`
	StockQuantity *int            `json:"stockQuantity" validate:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"          validate:"omitempty,min=1,max=120"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity" validate:"omitempty,min=0"`
}

// AdjustStockRequest applies a signed manual delta to a product's stock.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=2,max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     string          `json:"createdAt"`
}
