package services

import (
	"context"
	"time"

	"github.com/mshimizu/kintai/internal/common"
	"github.com/mshimizu/kintai/internal/server/models"
	"github.com/mshimizu/kintai/internal/timex"
)

// MonthReport holds one row per calendar day of the reported month.
type MonthReport struct {
	Month string
	Rows  []*models.DayReport
}

// MonthlyReport reconstructs per-day attendance for a month given as
// "YYYY-MM" (empty means the month of now). The result always has exactly
// as many rows as the month has days, in day order; days without a session
// carry null fields and zero durations. An open break contributes nothing
// until it is closed. Reads are a best-effort snapshot: no transaction is
// held across them.
func (s *AttendanceService) MonthlyReport(ctx context.Context, month string, now time.Time) (*MonthReport, error) {
	year, mon := now.Year(), now.Month()
	if month != "" {
		t, ok := timex.ParseDate(month + "-01")
		if !ok {
			return nil, common.Validationf("invalid month")
		}
		year, mon = t.Year(), t.Month()
	}

	first, last := timex.MonthRange(year, mon)

	sessionList, err := s.repos.Sessions(s.db).ListByDateRange(ctx, timex.FormatDate(first), timex.FormatDate(last))
	if err != nil {
		return nil, err
	}

	breakRepo := s.repos.Breaks(s.db)
	byDate := make(map[string]*models.WorkSession, len(sessionList))
	breakSeconds := make(map[int64]int64, len(sessionList))
	for _, session := range sessionList {
		byDate[session.WorkDate] = session

		sessionBreaks, err := breakRepo.ListBySession(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		var sum int64
		for _, b := range sessionBreaks {
			sum += timex.DurationSeconds(parseTimestamp(&b.StartAt), parseTimestamp(b.EndAt))
		}
		breakSeconds[session.ID] = sum
	}

	days := timex.DaysInMonth(year, mon)
	rows := make([]*models.DayReport, 0, days)
	for day := 1; day <= days; day++ {
		workDate := timex.FormatDate(time.Date(year, mon, day, 0, 0, 0, 0, time.Local))
		row := &models.DayReport{WorkDate: workDate}

		if session, ok := byDate[workDate]; ok {
			row.SessionID = &session.ID
			row.StartAt = session.StartAt
			row.EndAt = session.EndAt
			row.WorkSeconds = timex.DurationSeconds(parseTimestamp(session.StartAt), parseTimestamp(session.EndAt))
			row.BreakSeconds = breakSeconds[session.ID]
			if net := row.WorkSeconds - row.BreakSeconds; net > 0 {
				row.NetSeconds = net
			}
		}
		rows = append(rows, row)
	}

	return &MonthReport{Month: first.Format("2006-01"), Rows: rows}, nil
}

// parseTimestamp maps a nullable stored timestamp to a nullable instant;
// malformed text counts as absent.
func parseTimestamp(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := timex.Parse(*s)
	if !ok {
		return nil
	}
	return &t
}
