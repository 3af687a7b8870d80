package commands

import (
	"errors"
	"time"

	"courierbridge/internal/pkg/guard"
)

var ErrExpireReservationsCommandIsNotConstructed = errors.New(
	"ExpireReservationsCommand must be created via NewExpireReservationsCommand constructor",
)

// ExpireReservationsCommand drops pending reservations made before Before.
type ExpireReservationsCommand struct {
	before time.Time

	guard guard.ConstructorGuard
}

// NewExpireReservationsCommand targets reservations older than ttl at now.
func NewExpireReservationsCommand(now time.Time, ttl time.Duration) ExpireReservationsCommand {
	return ExpireReservationsCommand{before: now.Add(-ttl), guard: guard.NewConstructorGuard()}
}

func (c ExpireReservationsCommand) Validate() error {
	return c.guard.Validate(ErrExpireReservationsCommandIsNotConstructed)
}

func (c ExpireReservationsCommand) Before() time.Time {
	return c.before
}
