package service

import (
	"time"

	"stockdash/internal/dto"
	"stockdash/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Model-to-DTO converters shared by handlers and the dashboard builder.
// Responses carry camelCase fields matching the dashboard client.

func ProductToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ProductID:     p.ID.String(),
		Name:          p.Name,
		CostPrice:     p.CostPrice,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func PurchaseToResponse(p *model.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		PurchaseID: p.ID.String(),
		ProductID:  p.ProductID.String(),
		Quantity:   p.Quantity,
		UnitCost:   p.UnitCost,
		TotalCost:  p.TotalCost,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if p.Product != nil {
		product := ProductToResponse(p.Product)
		resp.Product = &product
	}
	return resp
}

func SaleToResponse(s *model.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		SaleID:      s.ID.String(),
		ProductID:   s.ProductID.String(),
		CustomerID:  s.CustomerID.String(),
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalAmount: s.TotalAmount,
		Profit:      s.Profit,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
	if s.Product != nil {
		product := ProductToResponse(s.Product)
		resp.Product = &product
	}
	if s.Customer != nil {
		customer := CustomerToResponse(s.Customer)
		resp.Customer = &customer
	}
	return resp
}

func CustomerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		CustomerID: c.ID.String(),
		Name:       c.Name,
		Phone:      c.Phone,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}

func MovementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	resp := dto.StockMovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.Product != nil {
		resp.ProductName = m.Product.Name
	}
	if m.ReferenceID != nil {
		ref := m.ReferenceID.String()
		resp.ReferenceID = &ref
	}
	return resp
}

func UserToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Active:   u.Active,
	}
}
