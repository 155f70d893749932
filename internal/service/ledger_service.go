package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"stockdash/internal/config"
	"stockdash/internal/dto"
	"stockdash/internal/model"
	"stockdash/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardInvalidator drops cached dashboard payloads after a ledger commit.
type DashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context)
}

// LowStockNotifier is told when a committed mutation leaves a product at or
// below the low-stock threshold.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, productID uuid.UUID, name string, stock int)
}

// LedgerService owns every stock-affecting mutation. Purchases and sales are
// never written directly: each operation locks the affected product row,
// checks that the resulting stock stays non-negative, recomputes derived
// totals, and commits the record, the stock change and an audit movement in
// one transaction.
type LedgerService struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	movements repository.StockMovementRepository
	cfg       *config.Config
	cache     DashboardInvalidator
	alerts    LowStockNotifier
	log       zerolog.Logger
}

func NewLedgerService(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	movements repository.StockMovementRepository,
	cfg *config.Config,
	cache DashboardInvalidator,
	alerts LowStockNotifier,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		products:  products,
		purchases: purchases,
		sales:     sales,
		customers: customers,
		movements: movements,
		cfg:       cfg,
		cache:     cache,
		alerts:    alerts,
		log:       log,
	}
}

// runTx wraps fn in a database transaction. A nil db runs fn directly with a
// nil tx, which keeps the service testable against in-memory repositories.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func mapNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s id %q: %w", what, raw, ErrInvalidArgument)
	}
	return id, nil
}

// afterCommit runs the side effects that must only happen once the
// transaction is durable: cache invalidation and low-stock alerting.
func (s *LedgerService) afterCommit(ctx context.Context, productID uuid.UUID, name string, stockAfter int) {
	if s.cache != nil {
		s.cache.InvalidateDashboard(ctx)
	}
	if s.alerts != nil && stockAfter <= s.cfg.LowStockThreshold {
		s.alerts.NotifyLowStock(ctx, productID, name, stockAfter)
	}
}

// ─── Purchases ───────────────────────────────────────────────────────────────

// RecordPurchase adds stock: creates the purchase, increments the product's
// stock and writes the audit movement atomically. Under the "latest" cost
// policy the product's cost price follows the purchase's unit cost.
func (s *LedgerService) RecordPurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*model.Purchase, error) {
	productID, err := parseID(req.ProductID, "product")
	if err != nil {
		return nil, err
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost must not be negative: %w", ErrInvalidArgument)
	}

	var (
		purchase   *model.Purchase
		name       string
		stockAfter int
	)
	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		product, err := s.products.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return mapNotFound(err, "product")
		}

		purchase = &model.Purchase{
			ProductID: productID,
			Quantity:  req.Quantity,
			UnitCost:  req.UnitCost,
			TotalCost: req.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity))),
		}
		if err := s.purchases.CreateTx(tx, purchase); err != nil {
			return err
		}
		if err := s.products.UpdateStockTx(tx, productID, req.Quantity); err != nil {
			return err
		}

		stockAfter = product.StockQuantity + req.Quantity
		name = product.Name
		movement := &model.StockMovement{
			ProductID:   productID,
			Type:        model.MovementPurchase,
			Quantity:    req.Quantity,
			StockBefore: product.StockQuantity,
			StockAfter:  stockAfter,
			Reason:      "purchase recorded",
			ReferenceID: &purchase.ID,
		}
		if err := s.movements.CreateTx(tx, movement); err != nil {
			return err
		}

		if s.cfg.CostPricePolicy == config.CostPolicyLatest && !product.CostPrice.Equal(req.UnitCost) {
			if err := s.products.UpdateCostPriceTx(tx, productID, req.UnitCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("purchase_id", purchase.ID.String()).
		Str("product_id", productID.String()).
		Int("quantity", req.Quantity).
		Int("stock_after", stockAfter).
		Msg("purchase recorded")
	s.afterCommit(ctx, productID, name, stockAfter)
	return purchase, nil
}

// UpdatePurchase rewrites a purchase and applies the net stock delta. When
// the purchase moves to another product, both product rows are locked in
// ascending id order to avoid deadlocks, the old product gives back the old
// quantity and the new product receives the new one.
func (s *LedgerService) UpdatePurchase(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*model.Purchase, error) {
	var reqProductID uuid.UUID
	if req.ProductID != nil {
		var err error
		reqProductID, err = parseID(*req.ProductID, "product")
		if err != nil {
			return nil, err
		}
	}
	if req.UnitCost != nil && req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost must not be negative: %w", ErrInvalidArgument)
	}

	var (
		existing     *model.Purchase
		newProductID uuid.UUID
		newQty       int
		name         string
		stockAfter   int
	)
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		// Lock the purchase row before the product rows: the delta must be
		// computed against the quantity no concurrent writer can change.
		var err error
		existing, err = s.purchases.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return mapNotFound(err, "purchase")
		}

		newProductID = existing.ProductID
		if req.ProductID != nil {
			newProductID = reqProductID
		}
		newQty = existing.Quantity
		if req.Quantity != nil {
			newQty = *req.Quantity
		}
		newUnitCost := existing.UnitCost
		if req.UnitCost != nil {
			newUnitCost = *req.UnitCost
		}

		if newProductID == existing.ProductID {
			product, err := s.products.FindByIDForUpdateTx(tx, existing.ProductID)
			if err != nil {
				return mapNotFound(err, "product")
			}
			delta := newQty - existing.Quantity
			after := product.StockQuantity + delta
			if after < 0 {
				return fmt.Errorf("reducing purchase would leave product %s at %d units: %w",
					product.Name, after, ErrInsufficientStock)
			}
			if delta != 0 {
				if err := s.products.UpdateStockTx(tx, existing.ProductID, delta); err != nil {
					return err
				}
				movement := &model.StockMovement{
					ProductID:   existing.ProductID,
					Type:        model.MovementPurchaseUpdate,
					Quantity:    delta,
					StockBefore: product.StockQuantity,
					StockAfter:  after,
					Reason:      "purchase updated",
					ReferenceID: &existing.ID,
				}
				if err := s.movements.CreateTx(tx, movement); err != nil {
					return err
				}
			}
			name = product.Name
			stockAfter = after
		} else {
			oldProduct, newProduct, err := s.lockPair(tx, existing.ProductID, newProductID)
			if err != nil {
				return err
			}
			oldAfter := oldProduct.StockQuantity - existing.Quantity
			if oldAfter < 0 {
				return fmt.Errorf("moving purchase would leave product %s at %d units: %w",
					oldProduct.Name, oldAfter, ErrInsufficientStock)
			}
			if err := s.products.UpdateStockTx(tx, oldProduct.ID, -existing.Quantity); err != nil {
				return err
			}
			if err := s.products.UpdateStockTx(tx, newProduct.ID, newQty); err != nil {
				return err
			}
			out := &model.StockMovement{
				ProductID:   oldProduct.ID,
				Type:        model.MovementPurchaseUpdate,
				Quantity:    -existing.Quantity,
				StockBefore: oldProduct.StockQuantity,
				StockAfter:  oldAfter,
				Reason:      "purchase moved to another product",
				ReferenceID: &existing.ID,
			}
			in := &model.StockMovement{
				ProductID:   newProduct.ID,
				Type:        model.MovementPurchaseUpdate,
				Quantity:    newQty,
				StockBefore: newProduct.StockQuantity,
				StockAfter:  newProduct.StockQuantity + newQty,
				Reason:      "purchase moved from another product",
				ReferenceID: &existing.ID,
			}
			if err := s.movements.CreateTx(tx, out); err != nil {
				return err
			}
			if err := s.movements.CreateTx(tx, in); err != nil {
				return err
			}
			name = newProduct.Name
			stockAfter = newProduct.StockQuantity + newQty
		}

		existing.ProductID = newProductID
		existing.Quantity = newQty
		existing.UnitCost = newUnitCost
		existing.TotalCost = newUnitCost.Mul(decimal.NewFromInt(int64(newQty)))
		existing.Product = nil
		if err := s.purchases.UpdateTx(tx, existing); err != nil {
			return err
		}

		if s.cfg.CostPricePolicy == config.CostPolicyLatest && req.UnitCost != nil {
			if err := s.products.UpdateCostPriceTx(tx, newProductID, newUnitCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("purchase_id", existing.ID.String()).
		Str("product_id", newProductID.String()).
		Int("quantity", newQty).
		Msg("purchase updated")
	s.afterCommit(ctx, newProductID, name, stockAfter)
	return existing, nil
}

// DeletePurchase removes a purchase and takes its quantity back out of
// stock. The delete is rejected when the stock already sold past that
// quantity, otherwise the ledger would go negative.
func (s *LedgerService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	var (
		existing   *model.Purchase
		name       string
		stockAfter int
	)
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		// The purchase row is locked first so a concurrent delete or update
		// of the same record waits for this transaction to finish.
		var err error
		existing, err = s.purchases.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return mapNotFound(err, "purchase")
		}
		product, err := s.products.FindByIDForUpdateTx(tx, existing.ProductID)
		if err != nil {
			return mapNotFound(err, "product")
		}
		after := product.StockQuantity - existing.Quantity
		if after < 0 {
			return fmt.Errorf("deleting purchase would leave product %s at %d units: %w",
				product.Name, after, ErrInsufficientStock)
		}
		if err := s.purchases.DeleteTx(tx, id); err != nil {
			return mapNotFound(err, "purchase")
		}
		if err := s.products.UpdateStockTx(tx, existing.ProductID, -existing.Quantity); err != nil {
			return err
		}
		movement := &model.StockMovement{
			ProductID:   existing.ProductID,
			Type:        model.MovementPurchaseDelete,
			Quantity:    -existing.Quantity,
			StockBefore: product.StockQuantity,
			StockAfter:  after,
			Reason:      "purchase deleted",
			ReferenceID: &existing.ID,
		}
		if err := s.movements.CreateTx(tx, movement); err != nil {
			return err
		}
		name = product.Name
		stockAfter = after
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("purchase_id", id.String()).
		Str("product_id", existing.ProductID.String()).
		Int("stock_after", stockAfter).
		Msg("purchase deleted")
	s.afterCommit(ctx, existing.ProductID, name, stockAfter)
	return nil
}

func (s *LedgerService) GetPurchase(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "purchase")
	}
	return p, nil
}

func (s *LedgerService) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	return s.purchases.List(ctx)
}

// ─── Sales ───────────────────────────────────────────────────────────────────

// RecordSale removes stock: rejects the sale if the product does not hold
// enough units, otherwise creates the sale, decrements stock and writes the
// audit movement atomically. Total and profit are derived from the request
// quantity, the unit price and the product's current cost price.
func (s *LedgerService) RecordSale(ctx context.Context, req dto.CreateSaleRequest) (*model.Sale, error) {
	productID, err := parseID(req.ProductID, "product")
	if err != nil {
		return nil, err
	}
	customerID, err := parseID(req.CustomerID, "customer")
	if err != nil {
		return nil, err
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price must not be negative: %w", ErrInvalidArgument)
	}

	var (
		sale       *model.Sale
		name       string
		stockAfter int
	)
	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		// Customer lookup runs on the transaction snapshot; the RESTRICT
		// foreign key backs it if the customer row disappears concurrently.
		if _, err := s.customers.FindByIDTx(tx, customerID); err != nil {
			return mapNotFound(err, "customer")
		}
		product, err := s.products.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return mapNotFound(err, "product")
		}
		if product.StockQuantity < req.Quantity {
			return fmt.Errorf("product %s has %d units, requested %d: %w",
				product.Name, product.StockQuantity, req.Quantity, ErrInsufficientStock)
		}

		qty := decimal.NewFromInt(int64(req.Quantity))
		sale = &model.Sale{
			ProductID:   productID,
			CustomerID:  customerID,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			TotalAmount: req.UnitPrice.Mul(qty),
			Profit:      req.UnitPrice.Sub(product.CostPrice).Mul(qty),
		}
		if err := s.sales.CreateTx(tx, sale); err != nil {
			return err
		}
		if err := s.products.UpdateStockTx(tx, productID, -req.Quantity); err != nil {
			return err
		}

		stockAfter = product.StockQuantity - req.Quantity
		name = product.Name
		movement := &model.StockMovement{
			ProductID:   productID,
			Type:        model.MovementSale,
			Quantity:    -req.Quantity,
			StockBefore: product.StockQuantity,
			StockAfter:  stockAfter,
			Reason:      "sale recorded",
			ReferenceID: &sale.ID,
		}
		return s.movements.CreateTx(tx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("sale_id", sale.ID.String()).
		Str("product_id", productID.String()).
		Int("quantity", req.Quantity).
		Int("stock_after", stockAfter).
		Msg("sale recorded")
	s.afterCommit(ctx, productID, name, stockAfter)
	return sale, nil
}

// UpdateSale rewrites a sale and applies the net stock delta: the old
// quantity returns to the old product, the new quantity leaves the new one,
// and the result must stay non-negative on both sides.
func (s *LedgerService) UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*model.Sale, error) {
	var reqProductID, reqCustomerID uuid.UUID
	if req.ProductID != nil {
		var err error
		reqProductID, err = parseID(*req.ProductID, "product")
		if err != nil {
			return nil, err
		}
	}
	if req.CustomerID != nil {
		var err error
		reqCustomerID, err = parseID(*req.CustomerID, "customer")
		if err != nil {
			return nil, err
		}
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price must not be negative: %w", ErrInvalidArgument)
	}

	var (
		existing     *model.Sale
		newProductID uuid.UUID
		newQty       int
		name         string
		stockAfter   int
	)
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		// Lock the sale row before the product rows: the delta must be
		// computed against the quantity no concurrent writer can change.
		var err error
		existing, err = s.sales.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return mapNotFound(err, "sale")
		}

		newProductID = existing.ProductID
		if req.ProductID != nil {
			newProductID = reqProductID
		}
		newCustomerID := existing.CustomerID
		if req.CustomerID != nil {
			newCustomerID = reqCustomerID
			if _, err := s.customers.FindByIDTx(tx, newCustomerID); err != nil {
				return mapNotFound(err, "customer")
			}
		}
		newQty = existing.Quantity
		if req.Quantity != nil {
			newQty = *req.Quantity
		}
		newUnitPrice := existing.UnitPrice
		if req.UnitPrice != nil {
			newUnitPrice = *req.UnitPrice
		}

		var costPrice decimal.Decimal

		if newProductID == existing.ProductID {
			product, err := s.products.FindByIDForUpdateTx(tx, existing.ProductID)
			if err != nil {
				return mapNotFound(err, "product")
			}
			// Old units come back, new units go out.
			after := product.StockQuantity + existing.Quantity - newQty
			if after < 0 {
				return fmt.Errorf("product %s has %d units, update needs %d more: %w",
					product.Name, product.StockQuantity+existing.Quantity, newQty, ErrInsufficientStock)
			}
			delta := existing.Quantity - newQty
			if delta != 0 {
				if err := s.products.UpdateStockTx(tx, existing.ProductID, delta); err != nil {
					return err
				}
				movement := &model.StockMovement{
					ProductID:   existing.ProductID,
					Type:        model.MovementSaleUpdate,
					Quantity:    delta,
					StockBefore: product.StockQuantity,
					StockAfter:  after,
					Reason:      "sale updated",
					ReferenceID: &existing.ID,
				}
				if err := s.movements.CreateTx(tx, movement); err != nil {
					return err
				}
			}
			name = product.Name
			stockAfter = after
			costPrice = product.CostPrice
		} else {
			oldProduct, newProduct, err := s.lockPair(tx, existing.ProductID, newProductID)
			if err != nil {
				return err
			}
			if newProduct.StockQuantity < newQty {
				return fmt.Errorf("product %s has %d units, requested %d: %w",
					newProduct.Name, newProduct.StockQuantity, newQty, ErrInsufficientStock)
			}
			if err := s.products.UpdateStockTx(tx, oldProduct.ID, existing.Quantity); err != nil {
				return err
			}
			if err := s.products.UpdateStockTx(tx, newProduct.ID, -newQty); err != nil {
				return err
			}
			in := &model.StockMovement{
				ProductID:   oldProduct.ID,
				Type:        model.MovementSaleUpdate,
				Quantity:    existing.Quantity,
				StockBefore: oldProduct.StockQuantity,
				StockAfter:  oldProduct.StockQuantity + existing.Quantity,
				Reason:      "sale moved to another product",
				ReferenceID: &existing.ID,
			}
			out := &model.StockMovement{
				ProductID:   newProduct.ID,
				Type:        model.MovementSaleUpdate,
				Quantity:    -newQty,
				StockBefore: newProduct.StockQuantity,
				StockAfter:  newProduct.StockQuantity - newQty,
				Reason:      "sale moved from another product",
				ReferenceID: &existing.ID,
			}
			if err := s.movements.CreateTx(tx, in); err != nil {
				return err
			}
			if err := s.movements.CreateTx(tx, out); err != nil {
				return err
			}
			name = newProduct.Name
			stockAfter = newProduct.StockQuantity - newQty
			costPrice = newProduct.CostPrice
		}

		qty := decimal.NewFromInt(int64(newQty))
		existing.ProductID = newProductID
		existing.CustomerID = newCustomerID
		existing.Quantity = newQty
		existing.UnitPrice = newUnitPrice
		existing.TotalAmount = newUnitPrice.Mul(qty)
		existing.Profit = newUnitPrice.Sub(costPrice).Mul(qty)
		existing.Product = nil
		existing.Customer = nil
		return s.sales.UpdateTx(tx, existing)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("sale_id", existing.ID.String()).
		Str("product_id", newProductID.String()).
		Int("quantity", newQty).
		Msg("sale updated")
	s.afterCommit(ctx, newProductID, name, stockAfter)
	return existing, nil
}

// DeleteSale removes a sale and returns its quantity to stock. Restores can
// never violate the non-negative invariant, so this always succeeds for an
// existing sale.
func (s *LedgerService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	var (
		existing   *model.Sale
		name       string
		stockAfter int
	)
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		// The sale row is locked first so a concurrent delete or update of
		// the same record waits, and the restore uses the locked quantity.
		var err error
		existing, err = s.sales.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return mapNotFound(err, "sale")
		}
		product, err := s.products.FindByIDForUpdateTx(tx, existing.ProductID)
		if err != nil {
			return mapNotFound(err, "product")
		}
		if err := s.sales.DeleteTx(tx, id); err != nil {
			return mapNotFound(err, "sale")
		}
		if err := s.products.UpdateStockTx(tx, existing.ProductID, existing.Quantity); err != nil {
			return err
		}
		stockAfter = product.StockQuantity + existing.Quantity
		name = product.Name
		movement := &model.StockMovement{
			ProductID:   existing.ProductID,
			Type:        model.MovementSaleDelete,
			Quantity:    existing.Quantity,
			StockBefore: product.StockQuantity,
			StockAfter:  stockAfter,
			Reason:      "sale deleted",
			ReferenceID: &existing.ID,
		}
		return s.movements.CreateTx(tx, movement)
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("sale_id", id.String()).
		Str("product_id", existing.ProductID.String()).
		Int("stock_after", stockAfter).
		Msg("sale deleted")
	s.afterCommit(ctx, existing.ProductID, name, stockAfter)
	return nil
}

func (s *LedgerService) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "sale")
	}
	return sale, nil
}

func (s *LedgerService) ListSales(ctx context.Context) ([]model.Sale, error) {
	return s.sales.List(ctx)
}

// ─── Manual adjustment / movements ───────────────────────────────────────────

// AdjustStock applies a signed manual delta to a product, through the same
// lock-check-commit path as purchases and sales.
func (s *LedgerService) AdjustStock(ctx context.Context, productID uuid.UUID, delta int, reason string) (*model.Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("delta must not be zero: %w", ErrInvalidArgument)
	}

	var (
		product    *model.Product
		stockAfter int
	)
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return mapNotFound(err, "product")
		}
		after := p.StockQuantity + delta
		if after < 0 {
			return fmt.Errorf("product %s has %d units, adjustment of %d rejected: %w",
				p.Name, p.StockQuantity, delta, ErrInsufficientStock)
		}
		if err := s.products.UpdateStockTx(tx, productID, delta); err != nil {
			return err
		}
		movement := &model.StockMovement{
			ProductID:   productID,
			Type:        model.MovementManualAdjust,
			Quantity:    delta,
			StockBefore: p.StockQuantity,
			StockAfter:  after,
			Reason:      reason,
		}
		if err := s.movements.CreateTx(tx, movement); err != nil {
			return err
		}
		p.StockQuantity = after
		product = p
		stockAfter = after
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", productID.String()).
		Int("delta", delta).
		Int("stock_after", stockAfter).
		Str("reason", reason).
		Msg("stock adjusted")
	s.afterCommit(ctx, productID, product.Name, stockAfter)
	return product, nil
}

// ListMovements returns the audit trail, newest first.
func (s *LedgerService) ListMovements(ctx context.Context, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return s.movements.List(ctx, filter)
}

// lockPair locks two product rows in ascending id order so concurrent
// cross-product updates cannot deadlock, then returns them as (a, b).
func (s *LedgerService) lockPair(tx *gorm.DB, aID, bID uuid.UUID) (*model.Product, *model.Product, error) {
	first, second := aID, bID
	if bytes.Compare(bID[:], aID[:]) < 0 {
		first, second = bID, aID
	}

	p1, err := s.products.FindByIDForUpdateTx(tx, first)
	if err != nil {
		return nil, nil, mapNotFound(err, "product")
	}
	p2, err := s.products.FindByIDForUpdateTx(tx, second)
	if err != nil {
		return nil, nil, mapNotFound(err, "product")
	}

	if p1.ID == aID {
		return p1, p2, nil
	}
	return p2, p1, nil
}
