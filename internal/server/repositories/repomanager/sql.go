// Package repomanager provides a concrete RepositoryManager over
// database/sql, wiring together repository constructors and schema
// migrations (via goose). Two engines are supported: PostgreSQL (pgx) for
// DSNs with a postgres scheme, and SQLite (modernc) for plain file paths.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mshimizu/kintai/internal/dbx"
	"github.com/mshimizu/kintai/internal/server/migrations"
	"github.com/mshimizu/kintai/internal/server/repositories/breaks"
	"github.com/mshimizu/kintai/internal/server/repositories/sessions"
)

// SQLRepositoryManager vends SQL-backed repository implementations and
// exposes a schema migration hook for the engine the DSN selected.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect string
	dir     string
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewSQLRepositoryManager opens the database selected by dsn. DSNs starting
// with postgres:// or postgresql:// use the pgx driver; anything else is
// treated as a SQLite file path, with WAL and foreign keys enabled to match
// the engine defaults the schema relies on.
func NewSQLRepositoryManager(dsn string) (*SQLRepositoryManager, error) {
	m := &SQLRepositoryManager{}

	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "pgx"
		m.dialect = "pgx"
		m.dir = "postgres"
	} else {
		m.dialect = "sqlite3"
		m.dir = "sqlite"
		if !strings.HasPrefix(dsn, "file:") {
			if dir := filepath.Dir(dsn); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("db dir error: %w", err)
				}
			}
			dsn = "file:" + dsn
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	m.db = db

	return m, nil
}

// Conn exposes the underlying handle for transaction scoping via dbx.WithTx.
func (m *SQLRepositoryManager) Conn() *sql.DB {
	return m.db
}

// RunMigrations sets up goose with the embedded migrations for the selected
// dialect and runs them.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, m.dir); err != nil {
		return err
	}
	return nil
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLRepository(db)
}

// Breaks returns a breaks.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Breaks(db dbx.DBTX) breaks.Repository {
	return breaks.NewSQLRepository(db)
}

// Close releases the database handle.
func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
