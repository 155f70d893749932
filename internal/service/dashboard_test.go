package service

import (
	"context"
	"testing"
	"time"

	"stockdash/internal/config"
	"stockdash/internal/model"
	"stockdash/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummaryRepo struct {
	current  repository.SalesAggregate
	previous repository.SalesAggregate

	stockValue    decimal.Decimal
	productCount  int64
	lowStockCount int64
	customers     repository.CustomerAggregate
	top           []repository.TopProduct
}

func (r *stubSummaryRepo) SalesAggregate(_ context.Context, since, _ time.Time) (*repository.SalesAggregate, error) {
	// The older window starts further back than 30 days ago.
	if time.Since(since) > 31*24*time.Hour {
		agg := r.previous
		return &agg, nil
	}
	agg := r.current
	return &agg, nil
}

func (r *stubSummaryRepo) StockValue(_ context.Context) (decimal.Decimal, error) {
	return r.stockValue, nil
}

func (r *stubSummaryRepo) ProductCount(_ context.Context) (int64, error) {
	return r.productCount, nil
}

func (r *stubSummaryRepo) LowStockCount(_ context.Context, _ int) (int64, error) {
	return r.lowStockCount, nil
}

func (r *stubSummaryRepo) CustomerAggregate(_ context.Context, _ time.Time) (*repository.CustomerAggregate, error) {
	agg := r.customers
	return &agg, nil
}

func (r *stubSummaryRepo) TopProducts(_ context.Context, _ int) ([]repository.TopProduct, error) {
	return r.top, nil
}

func newDashboardFixture(t *testing.T, summary *stubSummaryRepo) *DashboardService {
	t.Helper()
	cfg := &config.Config{LowStockThreshold: 5, DashboardCacheTTLSeconds: 60}
	return NewDashboardService(summary, newStubProductRepo(), newStubPurchaseRepo(), newStubSaleRepo(), nil, cfg, zerolog.Nop())
}

func TestDashboardMetricsAssemblesSummaries(t *testing.T) {
	summary := &stubSummaryRepo{
		current:  repository.SalesAggregate{TotalRevenue: dec("200.00"), TotalProfit: dec("80.00"), SalesCount: 4},
		previous: repository.SalesAggregate{TotalRevenue: dec("100.00"), TotalProfit: dec("40.00"), SalesCount: 2},

		stockValue:    dec("1500.00"),
		productCount:  12,
		lowStockCount: 3,
		customers:     repository.CustomerAggregate{TotalCustomers: 10, NewCustomers: 2, RepeatCustomers: 4},
		top: []repository.TopProduct{
			{Product: model.Product{ID: uuid.New(), Name: "Widget", CostPrice: dec("4.00"), Price: dec("10.00"), StockQuantity: 7}, UnitsSold: 40},
		},
	}
	svc := newDashboardFixture(t, summary)

	metrics, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	require.Len(t, metrics.SalesSummary, 1)
	row := metrics.SalesSummary[0]
	assert.True(t, row.TotalRevenue.Equal(dec("200.00")))
	assert.Equal(t, int64(4), row.SalesCount)
	require.NotNil(t, row.ChangePercent, "previous window had revenue, change must be set")
	assert.InDelta(t, 100.0, *row.ChangePercent, 0.01)

	require.Len(t, metrics.InventorySummary, 1)
	inv := metrics.InventorySummary[0]
	assert.Equal(t, int64(12), inv.TotalProducts)
	assert.True(t, inv.StockValue.Equal(dec("1500.00")))
	assert.Equal(t, int64(3), inv.LowStockItems)

	require.Len(t, metrics.CustomerSummary, 1)
	assert.Equal(t, int64(10), metrics.CustomerSummary[0].TotalCustomers)

	require.Len(t, metrics.TopProducts, 1)
	assert.Equal(t, "Widget", metrics.TopProducts[0].Name)
}

func TestSalesSummaryOmitsChangeWithoutBaseline(t *testing.T) {
	summary := &stubSummaryRepo{
		current:  repository.SalesAggregate{TotalRevenue: dec("200.00"), TotalProfit: dec("80.00"), SalesCount: 4},
		previous: repository.SalesAggregate{TotalRevenue: decimal.Zero, TotalProfit: decimal.Zero},
	}
	svc := newDashboardFixture(t, summary)

	rows, err := svc.SalesSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].ChangePercent, "no prior revenue, no change percentage")
}
