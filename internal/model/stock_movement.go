package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types, one per ledger mutation kind.
const (
	MovementPurchase       = "purchase"
	MovementSale           = "sale"
	MovementPurchaseUpdate = "purchase_update"
	MovementSaleUpdate     = "sale_update"
	MovementPurchaseDelete = "purchase_delete"
	MovementSaleDelete     = "sale_delete"
	MovementManualAdjust   = "manual_adjust"
)

// StockMovement records every stock change on a product, one row per
// ledger mutation. Created inside the same transaction as the change it
// describes, so the movement history always reconciles with StockQuantity.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"` // "purchase" | "sale" | "purchase_update" | "sale_update" | "purchase_delete" | "sale_delete" | "manual_adjust"
	Quantity    int       `gorm:"not null"` // positive = stock in, negative = stock out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // purchase_id or sale_id if applicable
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
