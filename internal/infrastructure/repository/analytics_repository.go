package repository

import (
	"context"

	"github.com/sangkips/xylem-api/internal/domain/enum"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetFabricatorCounts(ctx context.Context) (domainRepo.FabricatorCounts, error) {
	var counts domainRepo.FabricatorCounts

	err := conn(ctx, r.db).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS approved,
			COUNT(*) FILTER (WHERE status = ?) AS pending,
			COUNT(*) FILTER (WHERE status = ?) AS rejected,
			COUNT(marketing_representative_id) AS assigned
		FROM fabricators
	`, enum.FabricatorStatusApproved, enum.FabricatorStatusPending, enum.FabricatorStatusRejected).
		Scan(&counts).Error

	return counts, err
}

func (r *analyticsRepository) GetSalesByDate(ctx context.Context) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			sales_date,
			COALESCE(SUM(amount), 0) AS total
		FROM reports
		GROUP BY sales_date
		ORDER BY sales_date ASC
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopFabricators(ctx context.Context, limit int) ([]domainRepo.TopFabricatorResult, error) {
	var results []domainRepo.TopFabricatorResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			f.id AS fabricator_id,
			f.name AS name,
			COALESCE(SUM(rp.amount), 0) AS total
		FROM reports rp
		JOIN fabricators f ON f.id = rp.fabricator_id
		GROUP BY f.id, f.name
		ORDER BY total DESC, f.name ASC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
