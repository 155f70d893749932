package service

import (
	"context"
	"encoding/json"
	"time"

	"stockdash/internal/config"
	"stockdash/internal/dto"
	"stockdash/internal/model"
	"stockdash/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const dashboardCacheKey = "dashboard:metrics"

// DashboardService assembles the landing-page metrics: sales, inventory and
// customer summaries plus top products and recent activity. The full payload
// is cached in redis and invalidated on every ledger mutation, so reads are
// cheap between writes. A nil redis client disables caching.
type DashboardService struct {
	summary   repository.SummaryRepository
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	rdb       *redis.Client
	cfg       *config.Config
	log       zerolog.Logger
}

func NewDashboardService(
	summary repository.SummaryRepository,
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	sales repository.SaleRepository,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		summary:   summary,
		products:  products,
		purchases: purchases,
		sales:     sales,
		rdb:       rdb,
		cfg:       cfg,
		log:       log,
	}
}

// InvalidateDashboard drops the cached payload. Called by the ledger after
// every committed mutation.
func (s *DashboardService) InvalidateDashboard(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}

// Metrics returns the dashboard payload, from cache when fresh.
func (s *DashboardService) Metrics(ctx context.Context) (*dto.DashboardMetrics, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			cached := &dto.DashboardMetrics{}
			if err := json.Unmarshal([]byte(raw), cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.log.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	metrics, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(metrics); err == nil {
			ttl := time.Duration(s.cfg.DashboardCacheTTLSeconds) * time.Second
			if err := s.rdb.Set(ctx, dashboardCacheKey, raw, ttl).Err(); err != nil {
				s.log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return metrics, nil
}

func (s *DashboardService) build(ctx context.Context) (*dto.DashboardMetrics, error) {
	salesRows, err := s.SalesSummary(ctx)
	if err != nil {
		return nil, err
	}
	inventoryRows, err := s.InventorySummary(ctx)
	if err != nil {
		return nil, err
	}
	customerRows, err := s.CustomerSummary(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.summary.TopProducts(ctx, 10)
	if err != nil {
		return nil, err
	}
	topProducts := make([]dto.ProductResponse, 0, len(top))
	for _, t := range top {
		topProducts = append(topProducts, ProductToResponse(&t.Product))
	}

	recentSales, err := s.sales.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}
	recentPurchases, err := s.purchases.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}

	saleResponses := make([]dto.SaleResponse, 0, len(recentSales))
	for i := range recentSales {
		saleResponses = append(saleResponses, SaleToResponse(&recentSales[i]))
	}
	purchaseResponses := make([]dto.PurchaseResponse, 0, len(recentPurchases))
	for i := range recentPurchases {
		purchaseResponses = append(purchaseResponses, PurchaseToResponse(&recentPurchases[i]))
	}

	return &dto.DashboardMetrics{
		SalesSummary:     salesRows,
		InventorySummary: inventoryRows,
		CustomerSummary:  customerRows,
		TopProducts:      topProducts,
		RecentSales:      saleResponses,
		RecentPurchases:  purchaseResponses,
	}, nil
}

// SalesSummary compares the trailing 30 days against the 30 days before
// that to compute the change percentage.
func (s *DashboardService) SalesSummary(ctx context.Context) ([]dto.SalesSummary, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -30)

	current, err := s.summary.SalesAggregate(ctx, since, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.summary.SalesAggregate(ctx, since.AddDate(0, 0, -30), since)
	if err != nil {
		return nil, err
	}

	row := dto.SalesSummary{
		ID:           uuid.NewString(),
		TotalRevenue: current.TotalRevenue,
		TotalProfit:  current.TotalProfit,
		SalesCount:   current.SalesCount,
		CreatedAt:    now.Format(time.RFC3339),
	}
	if !previous.TotalRevenue.IsZero() {
		change, _ := current.TotalRevenue.Sub(previous.TotalRevenue).
			Div(previous.TotalRevenue).Mul(hundred).Round(2).Float64()
		row.ChangePercent = &change
	}
	return []dto.SalesSummary{row}, nil
}

func (s *DashboardService) InventorySummary(ctx context.Context) ([]dto.InventorySummary, error) {
	total, err := s.summary.ProductCount(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.summary.StockValue(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.summary.LowStockCount(ctx, s.cfg.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	return []dto.InventorySummary{{
		ID:            uuid.NewString(),
		TotalProducts: total,
		StockValue:    value,
		LowStockItems: low,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}}, nil
}

func (s *DashboardService) CustomerSummary(ctx context.Context) ([]dto.CustomerSummary, error) {
	now := time.Now()
	agg, err := s.summary.CustomerAggregate(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	row := dto.CustomerSummary{
		ID:              uuid.NewString(),
		TotalCustomers:  agg.TotalCustomers,
		NewCustomers:    agg.NewCustomers,
		RepeatCustomers: agg.RepeatCustomers,
		CreatedAt:       now.Format(time.RFC3339),
	}
	if previous := agg.TotalCustomers - agg.NewCustomers; previous > 0 {
		change := float64(agg.NewCustomers) / float64(previous) * 100
		row.ChangePercent = &change
	}
	return []dto.CustomerSummary{row}, nil
}

// LowStockProducts returns products at or below the threshold, used by the
// alert digest and the inventory report.
func (s *DashboardService) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.ListAtOrBelowStock(ctx, s.cfg.LowStockThreshold)
}
