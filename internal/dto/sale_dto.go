package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest accepts totalAmount/profit for wire compatibility with
// the dashboard client, but the ledger always recomputes both.
type CreateSaleRequest struct {
	ProductID   string           `json:"productId"  validate:"required,uuid"`
	CustomerID  string           `json:"customerId" validate:"required,uuid"`
	Quantity    int              `json:"quantity"   validate:"required,gt=0"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"  validate:"min=0"`
	TotalAmount *decimal.Decimal `json:"totalAmount"` // ignored, derived server-side
	Profit      *decimal.Decimal `json:"profit"`      // ignored, derived server-side
}

type UpdateSaleRequest struct {
	ProductID   *string          `json:"productId"  validate:"omitempty,uuid"`
	CustomerID  *string          `json:"customerId" validate:"omitempty,uuid"`
	Quantity    *int             `json:"quantity"   validate:"omitempty,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	TotalAmount *decimal.Decimal `json:"totalAmount"` // ignored, derived server-side
	Profit      *decimal.Decimal `json:"profit"`      // ignored, derived server-side
}

type SaleResponse struct {
	SaleID      string            `json:"saleId"`
	ProductID   string            `json:"productId"`
	CustomerID  string            `json:"customerId"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Profit      decimal.Decimal   `json:"profit"`
	CreatedAt   string            `json:"createdAt"`
	Product     *ProductResponse  `json:"product,omitempty"`
	Customer    *CustomerResponse `json:"customer,omitempty"`
}
