package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshimizu/kintai/internal/common"
	"github.com/mshimizu/kintai/internal/server/models"
	"github.com/mshimizu/kintai/internal/server/repositories/repomanager"
)

// newTestService runs the real migrations against a named in-memory SQLite
// database, so every rule is exercised against the same schema production
// uses.
func newTestService(t *testing.T) *AttendanceService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	m, err := repomanager.NewSQLRepositoryManager(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))
	return NewAttendanceService(m.Conn(), m)
}

// at returns a wall-clock instant on the fixed test date 2025-03-10.
func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.Local)
}

func TestPunch_FullDayScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)
	require.NotNil(t, res.SessionID)

	st, err := svc.Status(ctx, at(9, 1))
	require.NoError(t, err)
	assert.Equal(t, models.StatusWorking, st.Status)

	_, err = svc.Punch(ctx, ActionBreakStart, at(12, 0))
	require.NoError(t, err)

	st, err = svc.Status(ctx, at(12, 1))
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnBreak, st.Status)

	_, err = svc.Punch(ctx, ActionBreakEnd, at(12, 30))
	require.NoError(t, err)

	st, err = svc.Status(ctx, at(12, 31))
	require.NoError(t, err)
	assert.Equal(t, models.StatusWorking, st.Status)

	_, err = svc.Punch(ctx, ActionWorkEnd, at(18, 0))
	require.NoError(t, err)

	st, err = svc.Status(ctx, at(18, 1))
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, st.Status)

	report, err := svc.MonthlyReport(ctx, "2025-03", at(18, 2))
	require.NoError(t, err)
	require.Len(t, report.Rows, 31)

	day := report.Rows[9] // 2025-03-10
	assert.Equal(t, "2025-03-10", day.WorkDate)
	require.NotNil(t, day.SessionID)
	assert.Equal(t, int64(32400), day.WorkSeconds)
	assert.Equal(t, int64(1800), day.BreakSeconds)
	assert.Equal(t, int64(30600), day.NetSeconds)
}

func TestPunch_WorkStartTwice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)

	_, err = svc.Punch(ctx, ActionWorkStart, at(9, 5))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestPunch_WorkEndWithoutSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Punch(ctx, ActionWorkEnd, at(18, 0))
	assert.ErrorIs(t, err, common.ErrConflict)

	// nothing was written
	st, err := svc.Status(ctx, at(18, 1))
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotStarted, st.Status)
	assert.Nil(t, st.SessionID)
}

func TestPunch_UnknownAction(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Punch(context.Background(), "lunch", at(12, 0))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestPunch_WorkEndWithOpenBreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)
	_, err = svc.Punch(ctx, ActionBreakStart, at(12, 0))
	require.NoError(t, err)

	_, err = svc.Punch(ctx, ActionWorkEnd, at(18, 0))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestPunch_BreakStartWhileOnBreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)
	_, err = svc.Punch(ctx, ActionBreakStart, at(12, 0))
	require.NoError(t, err)

	// at most one open break per session
	_, err = svc.Punch(ctx, ActionBreakStart, at(12, 5))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestPunch_BreakEndWithoutOpenBreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)

	_, err = svc.Punch(ctx, ActionBreakEnd, at(12, 30))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestPunch_AfterFinished(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)
	_, err = svc.Punch(ctx, ActionWorkEnd, at(18, 0))
	require.NoError(t, err)

	_, err = svc.Punch(ctx, ActionBreakStart, at(18, 30))
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.Punch(ctx, ActionWorkEnd, at(19, 0))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestStatus_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Punch(ctx, ActionWorkStart, at(9, 0))
	require.NoError(t, err)

	first, err := svc.Status(ctx, at(10, 0))
	require.NoError(t, err)
	second, err := svc.Status(ctx, at(10, 0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
