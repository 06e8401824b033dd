// Package models contains the persistence-facing data structures of the
// attendance service. Timestamps are stored in their canonical text form
// (see timex); nullable columns map to pointer fields.
package models

// WorkSession is one calendar day's work period. At most one session exists
// per work date, enforced by a unique index on work_date.
type WorkSession struct {
	ID        int64
	WorkDate  string
	StartAt   *string
	EndAt     *string
	CreatedAt string
	UpdatedAt string
}

// Finished reports whether the session has been closed. A session is
// finished iff end_at is set.
func (s *WorkSession) Finished() bool {
	return s.EndAt != nil
}
