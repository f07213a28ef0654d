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

type marketingRepRepository struct {
	db *gorm.DB
}

// NewMarketingRepRepository creates a new marketing representative repository
func NewMarketingRepRepository(db *gorm.DB) domainRepo.MarketingRepRepository {
	return &marketingRepRepository{db: db}
}

func (r *marketingRepRepository) Create(ctx context.Context, rep *entity.MarketingRepresentative) error {
	return translateError(conn(ctx, r.db).Create(rep).Error, "marketing_representative")
}

func (r *marketingRepRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MarketingRepresentative, error) {
	var rep entity.MarketingRepresentative
	err := conn(ctx, r.db).First(&rep, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rep, err
}

func (r *marketingRepRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.MarketingRepresentative, error) {
	var rep entity.MarketingRepresentative
	err := conn(ctx, r.db).First(&rep, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rep, err
}

func (r *marketingRepRepository) GetByEmail(ctx context.Context, email string) (*entity.MarketingRepresentative, error) {
	var rep entity.MarketingRepresentative
	err := conn(ctx, r.db).First(&rep, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rep, err
}

func (r *marketingRepRepository) Update(ctx context.Context, rep *entity.MarketingRepresentative) error {
	err := conn(ctx, r.db).Model(rep).
		Omit("id", "user_id", "employee_id", "created_at", "User").
		Select("*").
		Updates(rep).Error
	return translateError(err, "marketing_representative")
}

func (r *marketingRepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.MarketingRepresentative{}, "id = ?", id).Error
}

func (r *marketingRepRepository) List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.MarketingRepresentative, int64, error) {
	var reps []entity.MarketingRepresentative
	var total int64

	query := conn(ctx, r.db).Model(&entity.MarketingRepresentative{}).
		Scopes(SearchScope(search, "name", "email", "phone_number", "employee_id"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.Limit()).
		Order("name ASC, id ASC").
		Find(&reps).Error

	return reps, total, err
}

func (r *marketingRepRepository) ListAll(ctx context.Context) ([]entity.MarketingRepresentative, error) {
	var reps []entity.MarketingRepresentative
	err := conn(ctx, r.db).Order("name ASC, id ASC").Find(&reps).Error
	return reps, err
}

func (r *marketingRepRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.MarketingRepresentative{}).Count(&total).Error
	return total, err
}
