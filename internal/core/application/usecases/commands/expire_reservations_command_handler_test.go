package commands_test

import (
	"errors"
	"testing"
	"time"

	"courierbridge/internal/core/application/usecases/commands"
	"courierbridge/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireReservationsCommandHandler_Handle(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := new(MockReservationStore)
	store.On("ExpirePending", mock.Anything, now.Add(-10*time.Minute)).Return(3, nil).Once()
	m := metrics.New()

	h := commands.NewExpireReservationsCommandHandler(store, m)
	n, err := h.Handle(t.Context(), commands.NewExpireReservationsCommand(now, 10*time.Minute))

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ReservationsExpired), 0)
	store.AssertExpectations(t)
}

func TestExpireReservationsCommandHandler_StoreError(t *testing.T) {
	store := new(MockReservationStore)
	store.On("ExpirePending", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

	h := commands.NewExpireReservationsCommandHandler(store, nil)
	_, err := h.Handle(t.Context(), commands.NewExpireReservationsCommand(time.Now(), time.Minute))

	require.Error(t, err)
}

func TestExpireReservationsCommand_NotConstructed(t *testing.T) {
	require.ErrorIs(t,
		commands.ExpireReservationsCommand{}.Validate(),
		commands.ErrExpireReservationsCommandIsNotConstructed,
	)
}
