// Package kernel provides the value objects shared by the commerce and courier
// sides of a booking.
//
// The package includes:
//   - Address: a postal address with the single-line rendering the courier geocodes
//   - Contact: a named person with optional phone and email
//
// Both are plain values; the zero value is valid and Validate reports whether
// it is usable as a courier stop.
package kernel
