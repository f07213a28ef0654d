package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

// FabricatorFilter narrows fabricator listings. Nil fields are ignored.
type FabricatorFilter struct {
	Search   string
	Status   *enum.FabricatorStatus
	Assigned *bool
	RepID    *uuid.UUID
}

// FabricatorRepository defines the interface for fabricator data operations
type FabricatorRepository interface {
	Create(ctx context.Context, fabricator *entity.Fabricator) error
	// GetByID loads the fabricator with its distributor and representative
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Fabricator, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Fabricator, error)
	// Update never rewrites registration_number, status, the representative
	// or created_at
	Update(ctx context.Context, fabricator *entity.Fabricator) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.FabricatorStatus) error
	// SetRepresentative writes only the marketing_representative_id column
	SetRepresentative(ctx context.Context, id uuid.UUID, repID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter FabricatorFilter, params *pagination.PaginationParams) ([]entity.Fabricator, int64, error)
	// ListAll returns every matching fabricator with its distributor, ordered by name
	ListAll(ctx context.Context, filter FabricatorFilter) ([]entity.Fabricator, error)
	Count(ctx context.Context, filter FabricatorFilter) (int64, error)
}
