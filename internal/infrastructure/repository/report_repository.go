package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const reportOrder = "sales_date DESC, created_at DESC, id DESC"

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	err := conn(ctx, r.db).
		Omit("MarketingRep", "Fabricator", "Distributor").
		Create(report).Error
	return translateError(err, "report")
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var report entity.Report
	err := r.preloaded(conn(ctx, r.db)).First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}

func (r *reportRepository) GetByInvoiceNumber(ctx context.Context, invoice string) (*entity.Report, error) {
	var report entity.Report
	err := conn(ctx, r.db).First(&report, "invoice_number = ?", invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}

func (r *reportRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("MarketingRep").Preload("Fabricator").Preload("Distributor")
}

func (r *reportRepository) filtered(ctx context.Context, filter domainRepo.ReportFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&entity.Report{})
	if filter.From != nil {
		query = query.Where("sales_date >= ?", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		query = query.Where("sales_date <= ?", filter.To.Format("2006-01-02"))
	}
	if filter.FabricatorID != nil {
		query = query.Where("fabricator_id = ?", *filter.FabricatorID)
	}
	if filter.RepID != nil {
		query = query.Where("marketing_rep_id = ?", *filter.RepID)
	}
	return query
}

func (r *reportRepository) List(ctx context.Context, filter domainRepo.ReportFilter, params *pagination.PaginationParams) ([]entity.Report, int64, error) {
	var reports []entity.Report
	var total int64

	query := r.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := r.preloaded(query).
		Offset(params.Offset()).Limit(params.Limit()).
		Order(reportOrder).
		Find(&reports).Error

	return reports, total, err
}

func (r *reportRepository) ListAll(ctx context.Context, filter domainRepo.ReportFilter) ([]entity.Report, error) {
	var reports []entity.Report
	err := r.preloaded(r.filtered(ctx, filter)).Order(reportOrder).Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Count(ctx context.Context, filter domainRepo.ReportFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, err
}

func (r *reportRepository) SumAmount(ctx context.Context, filter domainRepo.ReportFilter) (decimal.Decimal, error) {
	var out struct {
		Total decimal.Decimal
	}
	err := r.filtered(ctx, filter).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&out).Error
	return out.Total, err
}
