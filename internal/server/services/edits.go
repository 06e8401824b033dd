package services

import (
	"context"
	"time"

	"github.com/mshimizu/kintai/internal/common"
	"github.com/mshimizu/kintai/internal/dbx"
	"github.com/mshimizu/kintai/internal/server/models"
	"github.com/mshimizu/kintai/internal/server/repositories/breaks"
	"github.com/mshimizu/kintai/internal/timex"
)

// parseBounds validates the common prefix of every manual edit: both
// timestamps present and parseable, start strictly before end.
func parseBounds(startText, endText string) (start, end time.Time, err error) {
	if startText == "" || endText == "" {
		return start, end, common.Validationf("start and end times are required")
	}
	start, ok := timex.Parse(startText)
	if !ok {
		return start, end, common.Validationf("invalid timestamp format")
	}
	end, ok = timex.Parse(endText)
	if !ok {
		return start, end, common.Validationf("invalid timestamp format")
	}
	if !start.Before(end) {
		return start, end, common.Validationf("start time must be before end time")
	}
	return start, end, nil
}

// sessionBounds extracts both ends of a session, rejecting sessions that
// are not fully bounded yet. Breaks may only be edited once the session has
// both start and end recorded.
func sessionBounds(session *models.WorkSession) (start, end time.Time, err error) {
	if session.StartAt == nil || session.EndAt == nil {
		return start, end, common.Validationf("record work start and end first")
	}
	start, okStart := timex.Parse(*session.StartAt)
	end, okEnd := timex.Parse(*session.EndAt)
	if !okStart || !okEnd {
		return start, end, common.Validationf("record work start and end first")
	}
	return start, end, nil
}

// UpdateSessionBounds rewrites a session's start and end. Every recorded
// break of the session must already be closed and lie fully within the new
// bounds, so a session can never be shrunk under its breaks.
func (s *AttendanceService) UpdateSessionBounds(ctx context.Context, sessionID int64, startText, endText string, now time.Time) error {
	start, end, err := parseBounds(startText, endText)
	if err != nil {
		return err
	}
	timestamp := timex.Format(now)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessionRepo := s.repos.Sessions(tx)
		breakRepo := s.repos.Breaks(tx)

		if _, err := sessionRepo.GetByID(ctx, sessionID); err != nil {
			return err
		}

		existing, err := breakRepo.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.Open() {
				return common.Validationf("break start and end must be set")
			}
			breakStart, okStart := timex.Parse(b.StartAt)
			breakEnd, okEnd := timex.Parse(*b.EndAt)
			if !okStart || !okEnd {
				return common.Validationf("break start and end must be set")
			}
			if breakStart.Before(start) || breakEnd.After(end) {
				return common.Validationf("breaks must fall within working hours")
			}
			if !breakStart.Before(breakEnd) {
				return common.Validationf("break start must be before break end")
			}
		}

		return sessionRepo.SetBounds(ctx, sessionID, startText, endText, timestamp)
	})
}

// AddBreak records a closed break on a fully bounded session. The interval
// must lie within the session bounds and must not overlap any sibling.
func (s *AttendanceService) AddBreak(ctx context.Context, sessionID int64, startText, endText string, now time.Time) (int64, error) {
	breakStart, breakEnd, err := parseBounds(startText, endText)
	if err != nil {
		return 0, err
	}
	timestamp := timex.Format(now)

	var id int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessionRepo := s.repos.Sessions(tx)
		breakRepo := s.repos.Breaks(tx)

		session, err := sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}

		if err := s.checkBreakFits(ctx, breakRepo, session, breakStart, breakEnd, 0); err != nil {
			return err
		}

		id, err = breakRepo.Create(ctx, sessionID, startText, &endText, timestamp)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateBreak rewrites one break's interval under the same rules as
// AddBreak, excluding the break itself from the overlap check.
func (s *AttendanceService) UpdateBreak(ctx context.Context, breakID int64, startText, endText string, now time.Time) error {
	breakStart, breakEnd, err := parseBounds(startText, endText)
	if err != nil {
		return err
	}
	timestamp := timex.Format(now)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessionRepo := s.repos.Sessions(tx)
		breakRepo := s.repos.Breaks(tx)

		b, err := breakRepo.GetByID(ctx, breakID)
		if err != nil {
			return err
		}
		session, err := sessionRepo.GetByID(ctx, b.SessionID)
		if err != nil {
			return err
		}

		if err := s.checkBreakFits(ctx, breakRepo, session, breakStart, breakEnd, breakID); err != nil {
			return err
		}

		return breakRepo.SetBounds(ctx, breakID, startText, endText, timestamp)
	})
}

// checkBreakFits enforces containment within a fully bounded session and
// non-overlap with the session's other closed breaks. excludeID skips the
// break being edited; 0 excludes nothing.
func (s *AttendanceService) checkBreakFits(ctx context.Context, breakRepo breaks.Repository, session *models.WorkSession, breakStart, breakEnd time.Time, excludeID int64) error {
	sessionStart, sessionEnd, err := sessionBounds(session)
	if err != nil {
		return err
	}
	if breakStart.Before(sessionStart) || breakEnd.After(sessionEnd) {
		return common.Validationf("breaks must fall within working hours")
	}

	siblings, err := breakRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		if sibling.ID == excludeID || sibling.Open() {
			continue
		}
		otherStart, okStart := timex.Parse(sibling.StartAt)
		otherEnd, okEnd := timex.Parse(*sibling.EndAt)
		if !okStart || !okEnd {
			continue
		}
		if timex.Overlaps(breakStart, breakEnd, otherStart, otherEnd) {
			return common.Conflictf("break times overlap")
		}
	}
	return nil
}

// DeleteBreak removes one break. No containment rules apply to deletion.
func (s *AttendanceService) DeleteBreak(ctx context.Context, breakID int64) error {
	if breakID <= 0 {
		return common.Validationf("invalid break id")
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		breakRepo := s.repos.Breaks(tx)
		if _, err := breakRepo.GetByID(ctx, breakID); err != nil {
			return err
		}
		return breakRepo.Delete(ctx, breakID)
	})
}
