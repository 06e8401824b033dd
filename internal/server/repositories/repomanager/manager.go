package repomanager

import (
	"context"
	"database/sql"

	"github.com/mshimizu/kintai/internal/dbx"
	"github.com/mshimizu/kintai/internal/server/repositories/breaks"
	"github.com/mshimizu/kintai/internal/server/repositories/sessions"
)

// RepositoryManager owns the database handle and vends store
// implementations bound to a DBTX, so the same repositories work inside and
// outside transactions.
type RepositoryManager interface {
	Conn() *sql.DB
	RunMigrations(ctx context.Context) error
	Sessions(db dbx.DBTX) sessions.Repository
	Breaks(db dbx.DBTX) breaks.Repository
	Close() error
}
