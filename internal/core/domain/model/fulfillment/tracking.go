package fulfillment

import "errors"

var ErrNothingToFulfill = errors.New("no fulfillable line items remain")

// FulfillmentOrderItems are the lines of one fulfillment order included in a fulfillment.
type FulfillmentOrderItems struct {
	FulfillmentOrderID int64
	LineItems          []LineItem
}

// TrackingUpdate is the fulfillment record pushed back to the platform once
// the courier job exists.
type TrackingUpdate struct {
	Items          []FulfillmentOrderItems
	Number         string
	URL            string
	Company        string
	NotifyCustomer bool
}

// NewTrackingUpdate maps every fulfillable line of fos into a single fulfillment.
func NewTrackingUpdate(fos []FulfillmentOrder, number, url, company string, notify bool) (TrackingUpdate, error) {
	update := TrackingUpdate{
		Number:         number,
		URL:            url,
		Company:        company,
		NotifyCustomer: notify,
	}
	for _, fo := range fos {
		if !fo.IsFulfillable() {
			continue
		}
		update.Items = append(update.Items, FulfillmentOrderItems{
			FulfillmentOrderID: fo.ID,
			LineItems:          fo.Remaining(),
		})
	}
	if len(update.Items) == 0 {
		return TrackingUpdate{}, ErrNothingToFulfill
	}
	return update, nil
}
