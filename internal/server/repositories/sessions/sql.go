// Package sessions provides the SQL-backed work-session store.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mshimizu/kintai/internal/common"
	"github.com/mshimizu/kintai/internal/dbx"
	"github.com/mshimizu/kintai/internal/server/models"
)

// SQLRepository implements session storage over a dbx.DBTX (*sql.DB or
// *sql.Tx). The same statements run on PostgreSQL and SQLite.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) GetByDate(ctx context.Context, workDate string) (*models.WorkSession, error) {
	query := `
		SELECT id, work_date, start_at, end_at, created_at, updated_at
		FROM work_sessions
		WHERE work_date = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, workDate))
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.WorkSession, error) {
	query := `
		SELECT id, work_date, start_at, end_at, created_at, updated_at
		FROM work_sessions
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.WorkSession, error) {
	s := &models.WorkSession{}
	err := row.Scan(&s.ID, &s.WorkDate, &s.StartAt, &s.EndAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFoundf("work session does not exist")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLRepository) Create(ctx context.Context, workDate, startAt, now string) (int64, error) {
	query := `
		INSERT INTO work_sessions (work_date, start_at, end_at, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, workDate, startAt, now, now).Scan(&id)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return 0, common.Conflictf("work session already exists for %s", workDate)
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *SQLRepository) SetEnd(ctx context.Context, id int64, endAt, now string) error {
	query := `UPDATE work_sessions SET end_at = $1, updated_at = $2 WHERE id = $3`
	return r.exec(ctx, query, endAt, now, id)
}

func (r *SQLRepository) SetBounds(ctx context.Context, id int64, startAt, endAt, now string) error {
	query := `UPDATE work_sessions SET start_at = $1, end_at = $2, updated_at = $3 WHERE id = $4`
	return r.exec(ctx, query, startAt, endAt, now, id)
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
		return common.NotFoundf("work session does not exist")
	}
	return nil
}

func (r *SQLRepository) ListByDateRange(ctx context.Context, from, to string) ([]*models.WorkSession, error) {
	query := `
		SELECT id, work_date, start_at, end_at, created_at, updated_at
		FROM work_sessions
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select work sessions: %w", err)
	}
	defer rows.Close()

	var result []*models.WorkSession
	for rows.Next() {
		var s models.WorkSession
		if err := rows.Scan(&s.ID, &s.WorkDate, &s.StartAt, &s.EndAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
