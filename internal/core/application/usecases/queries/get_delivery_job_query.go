package queries

import (
	"errors"
	"strings"

	"courierbridge/internal/pkg/errs"
	"courierbridge/internal/pkg/guard"
)

var ErrGetDeliveryJobQueryIsNotConstructed = errors.New(
	"GetDeliveryJobQuery must be created via NewGetDeliveryJobQuery constructor",
)

// GetDeliveryJobQuery looks up the reservation and booked job for an
// idempotency key such as "order:1001".
type GetDeliveryJobQuery struct {
	key string

	guard guard.ConstructorGuard
}

// NewGetDeliveryJobQuery trims key and rejects it when blank.
func NewGetDeliveryJobQuery(key string) (GetDeliveryJobQuery, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return GetDeliveryJobQuery{}, errs.NewValueIsRequiredError("key")
	}
	return GetDeliveryJobQuery{key: key, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryJobQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryJobQueryIsNotConstructed)
}

func (q GetDeliveryJobQuery) Key() string {
	return q.key
}
