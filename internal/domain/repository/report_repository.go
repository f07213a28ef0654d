package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReportFilter narrows report queries. Dates are inclusive and compared
// against sales_date.
type ReportFilter struct {
	From         *time.Time
	To           *time.Time
	FabricatorID *uuid.UUID
	RepID        *uuid.UUID
}

// ReportRepository defines the interface for sales report data operations.
// Listing methods preload the fabricator, distributor and representative and
// order by sales_date DESC, created_at DESC, id DESC.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	GetByInvoiceNumber(ctx context.Context, invoice string) (*entity.Report, error)
	List(ctx context.Context, filter ReportFilter, params *pagination.PaginationParams) ([]entity.Report, int64, error)
	ListAll(ctx context.Context, filter ReportFilter) ([]entity.Report, error)
	Count(ctx context.Context, filter ReportFilter) (int64, error)
	SumAmount(ctx context.Context, filter ReportFilter) (decimal.Decimal, error)
}
