package sessions

import (
	"context"

	"github.com/mshimizu/kintai/internal/server/models"
)

// Repository is the session store. Timestamps and dates travel in their
// canonical text form; business validation happens above this layer.
type Repository interface {
	// GetByDate returns the session for a work date, or common.ErrNotFound.
	GetByDate(ctx context.Context, workDate string) (*models.WorkSession, error)

	// GetByID returns the session with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.WorkSession, error)

	// Create inserts a new open session and returns its generated id.
	// A duplicate work date yields common.ErrConflict.
	Create(ctx context.Context, workDate, startAt, now string) (int64, error)

	// SetEnd closes the session, stamping updated_at with now.
	SetEnd(ctx context.Context, id int64, endAt, now string) error

	// SetBounds rewrites both timestamps, stamping updated_at with now.
	SetBounds(ctx context.Context, id int64, startAt, endAt, now string) error

	// ListByDateRange returns sessions with from <= work_date <= to,
	// ascending by date.
	ListByDateRange(ctx context.Context, from, to string) ([]*models.WorkSession, error)
}
