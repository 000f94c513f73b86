package domain

import "github.com/shopspring/decimal"

// DashboardSummary é o agregado somente leitura exibido na tela inicial.
type DashboardSummary struct {
	TotalItems      int             `json:"total_items"`
	StockValue      decimal.Decimal `json:"stock_value" swaggertype:"string"`
	LowStockItems   int             `json:"low_stock_items"`
	RecentMovements []Movement      `json:"recent_movements"`
}

// ItemTotals são os agregados do catálogo usados pelo dashboard.
type ItemTotals struct {
	TotalItems    int
	StockValue    decimal.Decimal
	LowStockItems int
}
