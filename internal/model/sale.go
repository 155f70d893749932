package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an outbound stock event: units sold to a customer at a price.
// TotalAmount and Profit are derived on every write; Profit captures the
// product's cost price at the time of the record's last write.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Profit      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Product  *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}
