// Package breaks provides the SQL-backed break store.
package breaks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mshimizu/kintai/internal/common"
	"github.com/mshimizu/kintai/internal/dbx"
	"github.com/mshimizu/kintai/internal/server/models"
)

// SQLRepository implements break storage over a dbx.DBTX (*sql.DB or
// *sql.Tx). The same statements run on PostgreSQL and SQLite.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Break, error) {
	query := `
		SELECT id, session_id, break_start_at, break_end_at, created_at, updated_at
		FROM breaks
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLRepository) OpenBySession(ctx context.Context, sessionID int64) (*models.Break, error) {
	query := `
		SELECT id, session_id, break_start_at, break_end_at, created_at, updated_at
		FROM breaks
		WHERE session_id = $1 AND break_end_at IS NULL
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sessionID))
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.Break, error) {
	b := &models.Break{}
	err := row.Scan(&b.ID, &b.SessionID, &b.StartAt, &b.EndAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFoundf("break does not exist")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *SQLRepository) ListBySession(ctx context.Context, sessionID int64) ([]*models.Break, error) {
	query := `
		SELECT id, session_id, break_start_at, break_end_at, created_at, updated_at
		FROM breaks
		WHERE session_id = $1
		ORDER BY break_start_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to select breaks: %w", err)
	}
	defer rows.Close()

	var result []*models.Break
	for rows.Next() {
		var b models.Break
		if err := rows.Scan(&b.ID, &b.SessionID, &b.StartAt, &b.EndAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Create(ctx context.Context, sessionID int64, startAt string, endAt *string, now string) (int64, error) {
	query := `
		INSERT INTO breaks (session_id, break_start_at, break_end_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, sessionID, startAt, endAt, now, now).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *SQLRepository) SetEnd(ctx context.Context, id int64, endAt, now string) error {
	query := `UPDATE breaks SET break_end_at = $1, updated_at = $2 WHERE id = $3`
	return r.exec(ctx, query, endAt, now, id)
}

func (r *SQLRepository) SetBounds(ctx context.Context, id int64, startAt, endAt, now string) error {
	query := `UPDATE breaks SET break_start_at = $1, break_end_at = $2, updated_at = $3 WHERE id = $4`
	return r.exec(ctx, query, startAt, endAt, now, id)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM breaks WHERE id = $1`, id)
}

func (r *SQLRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.NotFoundf("break does not exist")
	}
	return nil
}
