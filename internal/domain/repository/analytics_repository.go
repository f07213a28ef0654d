package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FabricatorCounts holds the status breakdown shown on the admin dashboard
type FabricatorCounts struct {
	Total    int64
	Approved int64
	Pending  int64
	Rejected int64
	Assigned int64
}

// DailySalesResult represents total sales for one sales date
type DailySalesResult struct {
	SalesDate time.Time
	Total     decimal.Decimal
}

// TopFabricatorResult represents a fabricator's total sales
type TopFabricatorResult struct {
	FabricatorID uuid.UUID
	Name         string
	Total        decimal.Decimal
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	GetFabricatorCounts(ctx context.Context) (FabricatorCounts, error)

	// GetSalesByDate returns total sales per distinct sales date, ascending
	GetSalesByDate(ctx context.Context) ([]DailySalesResult, error)

	// GetTopFabricators returns fabricators by total sales, descending
	GetTopFabricators(ctx context.Context, limit int) ([]TopFabricatorResult, error)
}
