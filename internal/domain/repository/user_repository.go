package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListAdminEmails returns the addresses of every administrator
	ListAdminEmails(ctx context.Context) ([]string, error)
}
