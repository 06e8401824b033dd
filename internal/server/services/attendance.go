// Package services holds the attendance domain rules: the punch state
// machine, manual edit validation, and monthly reporting. Every mutating
// operation runs its read-validate-write sequence inside one transaction,
// and the evaluation instant is always passed in by the caller so state
// never depends on a clock read mid-operation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mshimizu/kintai/internal/common"
	"github.com/mshimizu/kintai/internal/dbx"
	"github.com/mshimizu/kintai/internal/server/models"
	"github.com/mshimizu/kintai/internal/server/repositories/repomanager"
	"github.com/mshimizu/kintai/internal/timex"
)

// Punch actions.
const (
	ActionWorkStart  = "work_start"
	ActionWorkEnd    = "work_end"
	ActionBreakStart = "break_start"
	ActionBreakEnd   = "break_end"
)

type AttendanceService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewAttendanceService(db *sql.DB, repos repomanager.RepositoryManager) *AttendanceService {
	return &AttendanceService{db: db, repos: repos}
}

// StatusResult is the derived state of the work date of "now".
type StatusResult struct {
	WorkDate  string
	Status    models.Status
	SessionID *int64
}

// PunchResult reports a successfully applied punch.
type PunchResult struct {
	Message   string
	SessionID *int64
}

// Status derives the current state for the work date of now. Read-only and
// idempotent: repeated calls without intervening punches return the same
// result.
func (s *AttendanceService) Status(ctx context.Context, now time.Time) (*StatusResult, error) {
	workDate := timex.FormatDate(now)

	session, err := s.repos.Sessions(s.db).GetByDate(ctx, workDate)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &StatusResult{WorkDate: workDate, Status: models.StatusNotStarted}, nil
		}
		return nil, err
	}

	hasOpen := false
	if !session.Finished() {
		_, err := s.repos.Breaks(s.db).OpenBySession(ctx, session.ID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		hasOpen = err == nil
	}

	return &StatusResult{
		WorkDate:  workDate,
		Status:    models.DeriveStatus(session, hasOpen),
		SessionID: &session.ID,
	}, nil
}

// Punch validates and applies one action against the stored state of the
// work date of now. The instant is captured once: the same timestamp is
// written to the row and to updated_at, so a punch is atomic from the
// caller's perspective. Unknown actions are rejected before any state is
// read.
func (s *AttendanceService) Punch(ctx context.Context, action string, now time.Time) (*PunchResult, error) {
	switch action {
	case ActionWorkStart, ActionWorkEnd, ActionBreakStart, ActionBreakEnd:
	default:
		return nil, common.Validationf("unknown action")
	}

	timestamp := timex.Format(now)
	workDate := timex.FormatDate(now)

	var result *PunchResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessionRepo := s.repos.Sessions(tx)
		breakRepo := s.repos.Breaks(tx)

		session, err := sessionRepo.GetByDate(ctx, workDate)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		exists := err == nil

		if action == ActionWorkStart {
			if exists {
				return common.Conflictf("work already started")
			}
			// the unique index on work_date is the last line of defense
			// against two concurrent work_start punches; Create maps its
			// violation to a conflict
			id, err := sessionRepo.Create(ctx, workDate, timestamp, timestamp)
			if err != nil {
				return err
			}
			result = &PunchResult{Message: "work start recorded", SessionID: &id}
			return nil
		}

		if !exists {
			return common.Conflictf("work has not started")
		}
		if session.Finished() {
			return common.Conflictf("work already finished")
		}

		openBreak, err := breakRepo.OpenBySession(ctx, session.ID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		hasOpen := err == nil

		switch action {
		case ActionWorkEnd:
			if hasOpen {
				return common.Conflictf("end the break before finishing work")
			}
			if err := sessionRepo.SetEnd(ctx, session.ID, timestamp, timestamp); err != nil {
				return err
			}
			result = &PunchResult{Message: "work end recorded", SessionID: &session.ID}

		case ActionBreakStart:
			if hasOpen {
				return common.Conflictf("already on break")
			}
			if _, err := breakRepo.Create(ctx, session.ID, timestamp, nil, timestamp); err != nil {
				return err
			}
			result = &PunchResult{Message: "break start recorded", SessionID: &session.ID}

		case ActionBreakEnd:
			if !hasOpen {
				return common.Conflictf("break has not started")
			}
			if err := breakRepo.SetEnd(ctx, openBreak.ID, timestamp, timestamp); err != nil {
				return err
			}
			result = &PunchResult{Message: "break end recorded", SessionID: &session.ID}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListBreaks returns all breaks of a session, ascending by start time.
func (s *AttendanceService) ListBreaks(ctx context.Context, sessionID int64) ([]*models.Break, error) {
	if sessionID <= 0 {
		return nil, common.Validationf("invalid session id")
	}
	return s.repos.Breaks(s.db).ListBySession(ctx, sessionID)
}
