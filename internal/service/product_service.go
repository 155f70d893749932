package service

import (
	"context"
	"fmt"

	"stockdash/internal/dto"
	"stockdash/internal/model"
	"stockdash/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ProductService handles catalog CRUD. Stock is only touched here in two
// controlled ways: the initial quantity at creation and explicit updates,
// both of which go through the ledger's movement trail.
type ProductService struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	movements repository.StockMovementRepository
	cache     DashboardInvalidator
	log       zerolog.Logger
}

func NewProductService(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	sales repository.SaleRepository,
	movements repository.StockMovementRepository,
	cache DashboardInvalidator,
	log zerolog.Logger,
) *ProductService {
	return &ProductService{
		products:  products,
		purchases: purchases,
		sales:     sales,
		movements: movements,
		cache:     cache,
		log:       log,
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateDashboard(ctx)
	}
}

// Create adds a product. A non-zero initial stock gets its own movement row
// so the audit trail reconciles from the very first unit.
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	if req.CostPrice.IsNegative() || req.Price.IsNegative() {
		return nil, fmt.Errorf("prices must not be negative: %w", ErrInvalidArgument)
	}

	initial := 0
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("initial stock must not be negative: %w", ErrInvalidArgument)
		}
		initial = *req.StockQuantity
	}

	product := &model.Product{
		Name:          req.Name,
		CostPrice:     req.CostPrice,
		Price:         req.Price,
		StockQuantity: initial,
	}
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.CreateTx(tx, product); err != nil {
			return err
		}
		if initial == 0 {
			return nil
		}
		movement := &model.StockMovement{
			ProductID:   product.ID,
			Type:        model.MovementManualAdjust,
			Quantity:    initial,
			StockBefore: 0,
			StockAfter:  initial,
			Reason:      "initial stock",
		}
		return s.movements.CreateTx(tx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", product.ID.String()).Str("name", product.Name).Msg("product created")
	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "product")
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.products.List(ctx, filter)
}

// Update edits name and prices. A stock quantity in the payload is applied
// as a manual adjustment to the target value, keeping the movement trail
// consistent rather than overwriting the column silently.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error) {
	var product *model.Product
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return mapNotFound(err, "product")
		}

		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.CostPrice != nil {
			if req.CostPrice.IsNegative() {
				return fmt.Errorf("cost price must not be negative: %w", ErrInvalidArgument)
			}
			p.CostPrice = *req.CostPrice
		}
		if req.Price != nil {
			if req.Price.IsNegative() {
				return fmt.Errorf("price must not be negative: %w", ErrInvalidArgument)
			}
			p.Price = *req.Price
		}

		if req.StockQuantity != nil && *req.StockQuantity != p.StockQuantity {
			if *req.StockQuantity < 0 {
				return fmt.Errorf("stock must not be negative: %w", ErrInvalidArgument)
			}
			movement := &model.StockMovement{
				ProductID:   p.ID,
				Type:        model.MovementManualAdjust,
				Quantity:    *req.StockQuantity - p.StockQuantity,
				StockBefore: p.StockQuantity,
				StockAfter:  *req.StockQuantity,
				Reason:      "stock set on product update",
			}
			if err := s.movements.CreateTx(tx, movement); err != nil {
				return err
			}
			p.StockQuantity = *req.StockQuantity
		}

		if err := s.products.SaveTx(tx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", id.String()).Msg("product updated")
	s.invalidate(ctx)
	return product, nil
}

// Delete removes a product without history. Products referenced by
// purchases or sales are kept so the ledger stays reconstructible.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return mapNotFound(err, "product")
	}

	purchaseCount, err := s.purchases.CountByProductID(ctx, id)
	if err != nil {
		return err
	}
	saleCount, err := s.sales.CountByProductID(ctx, id)
	if err != nil {
		return err
	}
	if purchaseCount > 0 || saleCount > 0 {
		return fmt.Errorf("product has %d purchases and %d sales on record: %w",
			purchaseCount, saleCount, ErrInvalidArgument)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("product_id", id.String()).Msg("product deleted")
	s.invalidate(ctx)
	return nil
}
