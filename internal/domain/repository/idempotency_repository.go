package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by user and
// Idempotency-Key header.
type IdempotencyRepository interface {
	// Find returns nil when userID never used key
	Find(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error)
	// Save inserts rec, replacing an expired record with the same key
	Save(ctx context.Context, rec *entity.IdempotencyKey) error
	// DeleteExpired purges records that expired before cutoff
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
