package models

// Status is the derived state of a work date. It is never persisted: it is
// recomputed from the current session and break rows on every read, so the
// rows stay the single source of truth.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusWorking    Status = "working"
	StatusOnBreak    Status = "on_break"
	StatusFinished   Status = "finished"
)

// DeriveStatus computes the status of a date from its session (nil when no
// session exists) and whether that session currently has an open break.
func DeriveStatus(session *WorkSession, hasOpenBreak bool) Status {
	switch {
	case session == nil:
		return StatusNotStarted
	case session.Finished():
		return StatusFinished
	case hasOpenBreak:
		return StatusOnBreak
	default:
		return StatusWorking
	}
}

// DayReport is one row of the monthly report. SessionID, StartAt and EndAt
// are nil for days without a session.
type DayReport struct {
	WorkDate     string
	SessionID    *int64
	StartAt      *string
	EndAt        *string
	BreakSeconds int64
	WorkSeconds  int64
	NetSeconds   int64
}
