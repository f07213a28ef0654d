package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"gorm.io/gorm"
)

type fabricatorRepository struct {
	db *gorm.DB
}

// NewFabricatorRepository creates a new fabricator repository
func NewFabricatorRepository(db *gorm.DB) domainRepo.FabricatorRepository {
	return &fabricatorRepository{db: db}
}

func (r *fabricatorRepository) Create(ctx context.Context, fabricator *entity.Fabricator) error {
	err := conn(ctx, r.db).
		Omit("Distributor", "MarketingRepresentative").
		Create(fabricator).Error
	return translateError(err, "fabricator")
}

func (r *fabricatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Fabricator, error) {
	var fabricator entity.Fabricator
	err := conn(ctx, r.db).
		Preload("Distributor").
		Preload("MarketingRepresentative").
		First(&fabricator, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fabricator, err
}

func (r *fabricatorRepository) GetByPhone(ctx context.Context, phone string) (*entity.Fabricator, error) {
	var fabricator entity.Fabricator
	err := conn(ctx, r.db).First(&fabricator, "phone_number = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fabricator, err
}

// Update writes the editable profile columns. Status and the representative
// have their own writers and are never touched here.
func (r *fabricatorRepository) Update(ctx context.Context, fabricator *entity.Fabricator) error {
	err := conn(ctx, r.db).Model(fabricator).
		Omit("id", "registration_number", "status", "marketing_representative_id", "created_at",
			"Distributor", "MarketingRepresentative").
		Select("*").
		Updates(fabricator).Error
	return translateError(err, "fabricator")
}

func (r *fabricatorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.FabricatorStatus) error {
	return conn(ctx, r.db).Model(&entity.Fabricator{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *fabricatorRepository) SetRepresentative(ctx context.Context, id uuid.UUID, repID *uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Fabricator{}).
		Where("id = ?", id).
		Update("marketing_representative_id", repID).Error
}

func (r *fabricatorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Fabricator{}, "id = ?", id).Error
}

func (r *fabricatorRepository) filtered(ctx context.Context, filter domainRepo.FabricatorFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&entity.Fabricator{}).
		Scopes(
			SearchScope(filter.Search, "name", "institution", "registration_number", "phone_number", "district"),
			AssignedScope("marketing_representative_id", filter.Assigned),
		)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RepID != nil {
		query = query.Where("marketing_representative_id = ?", *filter.RepID)
	}
	return query
}

func (r *fabricatorRepository) List(ctx context.Context, filter domainRepo.FabricatorFilter, params *pagination.PaginationParams) ([]entity.Fabricator, int64, error) {
	var fabricators []entity.Fabricator
	var total int64

	query := r.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Preload("Distributor").
		Preload("MarketingRepresentative").
		Offset(params.Offset()).Limit(params.Limit()).
		Order("created_at DESC, id ASC").
		Find(&fabricators).Error

	return fabricators, total, err
}

func (r *fabricatorRepository) ListAll(ctx context.Context, filter domainRepo.FabricatorFilter) ([]entity.Fabricator, error) {
	var fabricators []entity.Fabricator
	err := r.filtered(ctx, filter).
		Preload("Distributor").
		Order("name ASC, id ASC").
		Find(&fabricators).Error
	return fabricators, err
}

func (r *fabricatorRepository) Count(ctx context.Context, filter domainRepo.FabricatorFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, err
}
