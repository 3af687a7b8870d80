// Package services provides domain services that work across the fulfillment,
// pickup and booking models without belonging to any one of them.
//
// The package includes:
//   - BookingRequestBuilder: a pure mapping from a normalized fulfillment event
//     and a pickup slot to a courier delivery request
package services
