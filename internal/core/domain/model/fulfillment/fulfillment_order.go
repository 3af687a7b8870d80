package fulfillment

import (
	"regexp"
	"strconv"
	"strings"

	"courierbridge/internal/pkg/errs"
)

// Fulfillment-order statuses that still accept fulfillments.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
)

// LineItem is one fulfillment-order line with the quantity still to ship.
type LineItem struct {
	ID                  int64
	FulfillableQuantity int
}

// FulfillmentOrder is the platform's unit of work for items shipped from one location.
type FulfillmentOrder struct {
	ID        int64
	OrderID   int64
	Status    string
	LineItems []LineItem
}

// IsFulfillable reports whether the fulfillment order still has items to ship.
func (f FulfillmentOrder) IsFulfillable() bool {
	if f.Status != "" && f.Status != StatusOpen && f.Status != StatusInProgress {
		return false
	}
	for _, li := range f.LineItems {
		if li.FulfillableQuantity > 0 {
			return true
		}
	}
	return false
}

// Remaining returns the line items with a positive fulfillable quantity.
func (f FulfillmentOrder) Remaining() []LineItem {
	out := make([]LineItem, 0, len(f.LineItems))
	for _, li := range f.LineItems {
		if li.FulfillableQuantity > 0 {
			out = append(out, li)
		}
	}
	return out
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// ParseID normalizes a platform identifier that may be a bare number
// ("5829485412") or a composite id ("gid://shopify/FulfillmentOrder/5829485412").
// The trailing run of digits is the numeric id.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	m := trailingDigits.FindStringSubmatch(raw)
	if m == nil {
		return 0, errs.NewValueIsInvalidError("id " + strconv.Quote(raw))
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id "+strconv.Quote(raw), err)
	}
	if id <= 0 {
		return 0, errs.NewValueIsInvalidError("id " + strconv.Quote(raw))
	}
	return id, nil
}
