package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshimizu/kintai/internal/common"
)

// boundedSession punches a full 09:00–18:00 session and returns its id.
func boundedSession(t *testing.T, svc *AttendanceService) int64 {
	t.Helper()
	ctx := context.Background()
	res, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)
	_, err = svc.Punch(ctx, ActionWorkEnd, at(18, 0))
	require.NoError(t, err)
	return *res.SessionID
}

func TestUpdateSessionBounds_OK(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	err := svc.UpdateSessionBounds(ctx, id, "2025-03-10 08:30:00", "2025-03-10 17:30:00", at(19, 0))
	require.NoError(t, err)

	report, err := svc.MonthlyReport(ctx, "2025-03", at(19, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(32400), report.Rows[9].WorkSeconds)
}

func TestUpdateSessionBounds_InputValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	tests := []struct {
		name       string
		start, end string
	}{
		{"missing start", "", "2025-03-10 18:00:00"},
		{"missing end", "2025-03-10 09:00:00", ""},
		{"malformed start", "yesterday", "2025-03-10 18:00:00"},
		{"malformed end", "2025-03-10 09:00:00", "2025-03-10T18:00:00"},
		{"start equals end", "2025-03-10 09:00:00", "2025-03-10 09:00:00"},
		{"start after end", "2025-03-10 18:00:00", "2025-03-10 09:00:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.UpdateSessionBounds(ctx, id, tc.start, tc.end, at(19, 0))
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestUpdateSessionBounds_UnknownSession(t *testing.T) {
	svc := newTestService(t)

	err := svc.UpdateSessionBounds(context.Background(), 4242, "2025-03-10 09:00:00", "2025-03-10 18:00:00", at(19, 0))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateSessionBounds_CannotShrinkUnderBreaks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	_, err := svc.AddBreak(ctx, id, "2025-03-10 12:00:00", "2025-03-10 12:30:00", at(19, 0))
	require.NoError(t, err)

	// new bounds would leave the recorded break outside working hours
	err = svc.UpdateSessionBounds(ctx, id, "2025-03-10 13:00:00", "2025-03-10 18:00:00", at(19, 1))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateSessionBounds_RejectsOpenBreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)
	_, err = svc.Punch(ctx, ActionBreakStart, at(12, 0))
	require.NoError(t, err)

	err = svc.UpdateSessionBounds(ctx, *res.SessionID, "2025-03-10 08:00:00", "2025-03-10 19:00:00", at(19, 0))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAddBreak_OK(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	breakID, err := svc.AddBreak(ctx, id, "2025-03-10 12:00:00", "2025-03-10 12:30:00", at(19, 0))
	require.NoError(t, err)
	assert.Positive(t, breakID)

	list, err := svc.ListBreaks(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-03-10 12:00:00", list[0].StartAt)
}

func TestAddBreak_OutsideSessionBounds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc) // bounded 09:00–18:00

	_, err := svc.AddBreak(ctx, id, "2025-03-10 08:00:00", "2025-03-10 08:30:00", at(19, 0))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.AddBreak(ctx, id, "2025-03-10 17:30:00", "2025-03-10 18:30:00", at(19, 0))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAddBreak_SessionNotBounded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)

	_, err = svc.AddBreak(ctx, *res.SessionID, "2025-03-10 12:00:00", "2025-03-10 12:30:00", at(13, 0))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAddBreak_UnknownSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddBreak(context.Background(), 4242, "2025-03-10 12:00:00", "2025-03-10 12:30:00", at(19, 0))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAddBreak_Overlap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	_, err := svc.AddBreak(ctx, id, "2025-03-10 12:30:00", "2025-03-10 13:30:00", at(19, 0))
	require.NoError(t, err)

	_, err = svc.AddBreak(ctx, id, "2025-03-10 12:00:00", "2025-03-10 13:00:00", at(19, 1))
	assert.ErrorIs(t, err, common.ErrConflict)

	// touching endpoints do not overlap
	_, err = svc.AddBreak(ctx, id, "2025-03-10 13:30:00", "2025-03-10 14:00:00", at(19, 2))
	require.NoError(t, err)
}

func TestUpdateBreak_OK(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	breakID, err := svc.AddBreak(ctx, id, "2025-03-10 12:00:00", "2025-03-10 12:30:00", at(19, 0))
	require.NoError(t, err)

	err = svc.UpdateBreak(ctx, breakID, "2025-03-10 12:15:00", "2025-03-10 12:45:00", at(19, 1))
	require.NoError(t, err)

	list, err := svc.ListBreaks(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-03-10 12:15:00", list[0].StartAt)
}

func TestUpdateBreak_OverlapWithSibling(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	breakID, err := svc.AddBreak(ctx, id, "2025-03-10 11:00:00", "2025-03-10 11:30:00", at(19, 0))
	require.NoError(t, err)
	_, err = svc.AddBreak(ctx, id, "2025-03-10 12:30:00", "2025-03-10 13:30:00", at(19, 1))
	require.NoError(t, err)

	err = svc.UpdateBreak(ctx, breakID, "2025-03-10 12:00:00", "2025-03-10 13:00:00", at(19, 2))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestUpdateBreak_SelfExcludedFromOverlap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	breakID, err := svc.AddBreak(ctx, id, "2025-03-10 12:00:00", "2025-03-10 13:00:00", at(19, 0))
	require.NoError(t, err)

	// overlaps only its own previous interval
	err = svc.UpdateBreak(ctx, breakID, "2025-03-10 12:30:00", "2025-03-10 13:30:00", at(19, 1))
	require.NoError(t, err)
}

func TestUpdateBreak_UnknownBreak(t *testing.T) {
	svc := newTestService(t)

	err := svc.UpdateBreak(context.Background(), 4242, "2025-03-10 12:00:00", "2025-03-10 12:30:00", at(19, 0))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteBreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := boundedSession(t, svc)

	breakID, err := svc.AddBreak(ctx, id, "2025-03-10 12:00:00", "2025-03-10 12:30:00", at(19, 0))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBreak(ctx, breakID))

	list, err := svc.ListBreaks(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.DeleteBreak(ctx, breakID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListBreaks_InvalidID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ListBreaks(context.Background(), 0)
	assert.ErrorIs(t, err, common.ErrValidation)
}
