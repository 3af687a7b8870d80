// Package commands contains the operations that change state: booking a
// courier for an order or a fulfillment order, and expiring stale
// reservations. Every command is built through its constructor and checked
// with Validate before its handler touches any port.
package commands
