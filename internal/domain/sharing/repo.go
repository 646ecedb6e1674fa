package sharing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert inserts the grant, or replaces the permissions and expiration of
	// the existing grant for the same (email, record) pair.
	Upsert(ctx context.Context, g *Grant) error
	// Revoke deletes a grant by id. ErrNotFound if no row matched.
	Revoke(ctx context.Context, id uuid.UUID) error
	ListForRecord(ctx context.Context, recordID uuid.UUID) ([]Grant, error)
	// ListActiveForGrantee returns the grants for an email whose expiration
	// is null or after now, joined with record and owner.
	ListActiveForGrantee(ctx context.Context, email string, now time.Time) ([]SharedRecord, error)
	DeleteForRecord(ctx context.Context, recordID uuid.UUID) error
}
