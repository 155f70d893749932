package repository

import (
	"context"
	"time"

	"stockdash/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesAggregate holds revenue and profit totals for a time window.
type SalesAggregate struct {
	TotalRevenue decimal.Decimal
	TotalProfit  decimal.Decimal
	SalesCount   int64
}

// CustomerAggregate holds customer counts for the dashboard.
type CustomerAggregate struct {
	TotalCustomers  int64
	NewCustomers    int64
	RepeatCustomers int64
}

// TopProduct is a product ranked by units sold.
type TopProduct struct {
	Product   model.Product
	UnitsSold int64
}

// SummaryRepository computes dashboard aggregates with SQL, keeping the
// heavy grouping work inside Postgres instead of application memory.
type SummaryRepository interface {
	SalesAggregate(ctx context.Context, since, until time.Time) (*SalesAggregate, error)
	StockValue(ctx context.Context) (decimal.Decimal, error)
	ProductCount(ctx context.Context) (int64, error)
	LowStockCount(ctx context.Context, threshold int) (int64, error)
	CustomerAggregate(ctx context.Context, newSince time.Time) (*CustomerAggregate, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

type summaryRepo struct{ db *gorm.DB }

func NewSummaryRepository(db *gorm.DB) SummaryRepository { return &summaryRepo{db: db} }

func (r *summaryRepo) SalesAggregate(ctx context.Context, since, until time.Time) (*SalesAggregate, error) {
	var row struct {
		TotalRevenue decimal.Decimal
		TotalProfit  decimal.Decimal
		SalesCount   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_revenue, COALESCE(SUM(profit), 0) AS total_profit, COUNT(*) AS sales_count").
		Where("created_at >= ? AND created_at < ?", since, until).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &SalesAggregate{
		TotalRevenue: row.TotalRevenue,
		TotalProfit:  row.TotalProfit,
		SalesCount:   row.SalesCount,
	}, nil
}

func (r *summaryRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var row struct{ StockValue decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("COALESCE(SUM(cost_price * stock_quantity), 0) AS stock_value").
		Scan(&row).Error
	return row.StockValue, err
}

func (r *summaryRepo) ProductCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *summaryRepo) LowStockCount(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("stock_quantity <= ?", threshold).Count(&count).Error
	return count, err
}

func (r *summaryRepo) CustomerAggregate(ctx context.Context, newSince time.Time) (*CustomerAggregate, error) {
	agg := &CustomerAggregate{}

	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&agg.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("created_at >= ?", newSince).Count(&agg.NewCustomers).Error; err != nil {
		return nil, err
	}

	// A repeat customer has more than one sale on record.
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("customer_id").
		Group("customer_id").
		Having("COUNT(*) > 1").
		Count(&agg.RepeatCustomers).Error
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *summaryRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var rows []struct {
		ProductID string
		UnitsSold int64
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("product_id, SUM(quantity) AS units_sold").
		Group("product_id").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []TopProduct{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID.String()] = p
	}

	top := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		p, ok := byID[row.ProductID]
		if !ok {
			continue
		}
		top = append(top, TopProduct{Product: p, UnitsSold: row.UnitsSold})
	}
	return top, nil
}
