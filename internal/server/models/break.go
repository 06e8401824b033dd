package models

// Break is a sub-interval of a session during which work is paused.
// break_end_at stays NULL while the break is open; at most one break per
// session may be open at a time.
type Break struct {
	ID        int64
	SessionID int64
	StartAt   string
	EndAt     *string
	CreatedAt string
	UpdatedAt string
}

// Open reports whether the break has a start but no recorded end.
func (b *Break) Open() bool {
	return b.EndAt == nil
}
