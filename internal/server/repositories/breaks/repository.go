package breaks

import (
	"context"

	"github.com/mshimizu/kintai/internal/server/models"
)

// Repository is the break store. It guarantees referential integrity only;
// containment and overlap rules are enforced by the service layer before
// anything is committed.
type Repository interface {
	// GetByID returns the break with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Break, error)

	// OpenBySession returns the unique break of the session with a NULL
	// end, or common.ErrNotFound when the session has no open break.
	OpenBySession(ctx context.Context, sessionID int64) (*models.Break, error)

	// ListBySession returns all breaks of a session, ascending by start.
	ListBySession(ctx context.Context, sessionID int64) ([]*models.Break, error)

	// Create inserts a break; endAt may be nil for an open break.
	Create(ctx context.Context, sessionID int64, startAt string, endAt *string, now string) (int64, error)

	// SetEnd closes the break, stamping updated_at with now.
	SetEnd(ctx context.Context, id int64, endAt, now string) error

	// SetBounds rewrites both timestamps, stamping updated_at with now.
	SetBounds(ctx context.Context, id int64, startAt, endAt, now string) error

	// Delete removes the break; common.ErrNotFound when it does not exist.
	Delete(ctx context.Context, id int64) error
}
