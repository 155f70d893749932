package dto

import "github.com/shopspring/decimal"

// CreatePurchaseRequest accepts totalCost for wire compatibility with the
// dashboard client, but the ledger always recomputes it as quantity × unitCost.
type CreatePurchaseRequest struct {
	ProductID string           `json:"productId" validate:"required,uuid"`
	Quantity  int              `json:"quantity"  validate:"required,gt=0"`
	UnitCost  decimal.Decimal  `json:"unitCost"  validate:"min=0"`
	TotalCost *decimal.Decimal `json:"totalCost"` // ignored, derived server-side
}

type UpdatePurchaseRequest struct {
	ProductID *string          `json:"productId" validate:"omitempty,uuid"`
	Quantity  *int             `json:"quantity"  validate:"omitempty,gt=0"`
	UnitCost  *decimal.Decimal `json:"unitCost"`
	TotalCost *decimal.Decimal `json:"totalCost"` // ignored, derived server-side
}

type PurchaseResponse struct {
	PurchaseID string           `json:"purchaseId"`
	ProductID  string           `json:"productId"`
	Quantity   int              `json:"quantity"`
	UnitCost   decimal.Decimal  `json:"unitCost"`
	TotalCost  decimal.Decimal  `json:"totalCost"`
	CreatedAt  string           `json:"createdAt"`
	Product    *ProductResponse `json:"product,omitempty"`
}
