package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

// DistributorFilter narrows distributor listings. Nil fields are ignored.
type DistributorFilter struct {
	Search   string
	Assigned *bool
	RepID    *uuid.UUID
}

// DistributorRepository defines the interface for distributor data operations
type DistributorRepository interface {
	Create(ctx context.Context, distributor *entity.Distributor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Distributor, error)
	GetByEmail(ctx context.Context, email string) (*entity.Distributor, error)
	// Update leaves the representative to SetRepresentative
	Update(ctx context.Context, distributor *entity.Distributor) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetRepresentative writes only the marketing_representative_id column
	SetRepresentative(ctx context.Context, id uuid.UUID, repID *uuid.UUID) error
	List(ctx context.Context, filter DistributorFilter, params *pagination.PaginationParams) ([]entity.Distributor, int64, error)
	// ListAll returns every matching distributor ordered by name, unpaginated
	ListAll(ctx context.Context, filter DistributorFilter) ([]entity.Distributor, error)
	Count(ctx context.Context) (int64, error)
}
