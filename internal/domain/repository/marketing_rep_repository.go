package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

// MarketingRepRepository defines the interface for marketing representative data operations
type MarketingRepRepository interface {
	Create(ctx context.Context, rep *entity.MarketingRepresentative) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MarketingRepresentative, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.MarketingRepresentative, error)
	GetByEmail(ctx context.Context, email string) (*entity.MarketingRepresentative, error)
	// Update never rewrites employee_id or created_at
	Update(ctx context.Context, rep *entity.MarketingRepresentative) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns representatives ordered by name then id. Search matches
	// name, email, phone number and employee id.
	List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.MarketingRepresentative, int64, error)
	ListAll(ctx context.Context) ([]entity.MarketingRepresentative, error)
	Count(ctx context.Context) (int64, error)
}
