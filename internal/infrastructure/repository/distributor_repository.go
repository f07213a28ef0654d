package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"gorm.io/gorm"
)

type distributorRepository struct {
	db *gorm.DB
}

// NewDistributorRepository creates a new distributor repository
func NewDistributorRepository(db *gorm.DB) domainRepo.DistributorRepository {
	return &distributorRepository{db: db}
}

func (r *distributorRepository) Create(ctx context.Context, distributor *entity.Distributor) error {
	return translateError(conn(ctx, r.db).Omit("MarketingRepresentative").Create(distributor).Error, "distributor")
}

func (r *distributorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Distributor, error) {
	var distributor entity.Distributor
	err := conn(ctx, r.db).Preload("MarketingRepresentative").First(&distributor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &distributor, err
}

func (r *distributorRepository) GetByEmail(ctx context.Context, email string) (*entity.Distributor, error) {
	var distributor entity.Distributor
	err := conn(ctx, r.db).First(&distributor, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &distributor, err
}

// Update writes the editable columns. The representative goes through
// SetRepresentative.
func (r *distributorRepository) Update(ctx context.Context, distributor *entity.Distributor) error {
	err := conn(ctx, r.db).Model(distributor).
		Omit("id", "marketing_representative_id", "created_at", "MarketingRepresentative").
		Select("*").
		Updates(distributor).Error
	return translateError(err, "distributor")
}

func (r *distributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Distributor{}, "id = ?", id).Error
}

func (r *distributorRepository) SetRepresentative(ctx context.Context, id uuid.UUID, repID *uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Distributor{}).
		Where("id = ?", id).
		Update("marketing_representative_id", repID).Error
}

func (r *distributorRepository) filtered(ctx context.Context, filter domainRepo.DistributorFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&entity.Distributor{}).
		Scopes(
			SearchScope(filter.Search, "name", "email", "phone_number", "district"),
			AssignedScope("marketing_representative_id", filter.Assigned),
		)
	if filter.RepID != nil {
		query = query.Where("marketing_representative_id = ?", *filter.RepID)
	}
	return query
}

func (r *distributorRepository) List(ctx context.Context, filter domainRepo.DistributorFilter, params *pagination.PaginationParams) ([]entity.Distributor, int64, error) {
	var distributors []entity.Distributor
	var total int64

	query := r.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("MarketingRepresentative").
		Offset(params.Offset()).Limit(params.Limit()).
		Order("name ASC, id ASC").
		Find(&distributors).Error

	return distributors, total, err
}

func (r *distributorRepository) ListAll(ctx context.Context, filter domainRepo.DistributorFilter) ([]entity.Distributor, error) {
	var distributors []entity.Distributor
	err := r.filtered(ctx, filter).Order("name ASC, id ASC").Find(&distributors).Error
	return distributors, err
}

func (r *distributorRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Distributor{}).Count(&total).Error
	return total, err
}
