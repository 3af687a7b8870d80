package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"courierbridge/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationExpirer struct{ mock.Mock }

func (m *MockReservationExpirer) Handle(ctx context.Context, cmd commands.ExpireReservationsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReservationSweepJob_RunOnce(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	expirer := &MockReservationExpirer{}
	expirer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExpireReservationsCommand) bool {
		return cmd.Before().Equal(now.Add(-10 * time.Minute))
	})).Return(3, nil).Once()

	j := NewReservationSweepJob(expirer, 10*time.Minute, "", discardLogger())
	j.now = func() time.Time { return now }

	assert.Equal(t, 3, j.RunOnce(context.Background()))
	expirer.AssertExpectations(t)
}

func TestReservationSweepJob_RunOnceSwallowsErrors(t *testing.T) {
	expirer := &MockReservationExpirer{}
	expirer.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

	j := NewReservationSweepJob(expirer, time.Minute, "", discardLogger())

	assert.Equal(t, 0, j.RunOnce(context.Background()))
}

func TestReservationSweepJob_StartRejectsBadSchedule(t *testing.T) {
	j := NewReservationSweepJob(&MockReservationExpirer{}, time.Minute, "not a schedule", discardLogger())

	require.Error(t, j.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	jm := NewJobManager(&MockReservationExpirer{}, time.Minute, "0 0 0 1 1 *", discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
