package job

import (
	"fmt"

	"courierbridge/internal/pkg/errs"
)

// Status is the lifecycle state of an idempotency reservation.
//
//	Pending ──> Committed
//	   │
//	   └──> (released or expired)
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// StatusPending means a booking attempt holds the key but no job exists yet.
	StatusPending

	// StatusCommitted means the courier job was created and recorded.
	StatusCommitted
)

var statusStrings = map[Status]string{
	StatusUnknown:   "unknown",
	StatusPending:   "pending",
	StatusCommitted: "committed",
}

// ParseStatus converts a stored string back to a Status.
func ParseStatus(s string) (Status, error) {
	for st, str := range statusStrings {
		if st != StatusUnknown && str == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks the status is Pending or Committed.
func (s Status) Validate() error {
	if s != StatusPending && s != StatusCommitted {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return statusStrings[StatusUnknown]
}
