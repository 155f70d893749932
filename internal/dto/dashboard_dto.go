package dto

import "github.com/shopspring/decimal"

// Summary rows are served as single-element arrays: the dashboard client
// renders them as time series and expects array payloads.

type SalesSummary struct {
	ID            string          `json:"id"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	SalesCount    int64           `json:"salesCount"`
	ChangePercent *float64        `json:"changePercent,omitempty"`
	CreatedAt     string          `json:"createdAt"`
}

type InventorySummary struct {
	ID            string          `json:"id"`
	TotalProducts int64           `json:"totalProducts"`
	StockValue    decimal.Decimal `json:"stockValue"`
	LowStockItems int64           `json:"lowStockItems"`
	CreatedAt     string          `json:"createdAt"`
}

type CustomerSummary struct {
	ID              string   `json:"id"`
	TotalCustomers  int64    `json:"totalCustomers"`
	NewCustomers    int64    `json:"newCustomers"`
	RepeatCustomers int64    `json:"repeatCustomers"`
	ChangePercent   *float64 `json:"changePercent,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

type DashboardMetrics struct {
	SalesSummary     []SalesSummary     `json:"salesSummary"`
	InventorySummary []InventorySummary `json:"inventorySummary"`
	CustomerSummary  []CustomerSummary  `json:"customerSummary"`
	TopProducts      []ProductResponse  `json:"topProducts"`
	RecentSales      []SaleResponse     `json:"recentSales"`
	RecentPurchases  []PurchaseResponse `json:"recentPurchases"`
}
