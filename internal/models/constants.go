package models

import (
	"strings"

	"shareit/internal/apperr"
)

// Persisted booking statuses. A booking starts WAITING and is moved to
// APPROVED or REJECTED by the item owner.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// BookingState is a query-time filter over bookings, distinct from the
// persisted status field.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// BookingRole selects whose bookings a list query returns.
type BookingRole int

const (
	RoleBooker BookingRole = iota
	RoleOwner
)

// ParseBookingState accepts a state token case-insensitively. An empty
// token means ALL, matching the original API contract.
func ParseBookingState(raw string) (BookingState, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return StateAll, nil
	}

	switch BookingState(token) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(token), nil
	}
	return "", apperr.Validation("unknown state: %s, expected one of ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED", raw)
}

// Export job statuses.
const (
	ExportQueued = "queued"
	ExportDone   = "done"
	ExportFailed = "failed"
)

const (
	// DefaultCacheTTL is the gateway response cache lifetime in seconds.
	DefaultCacheTTL = 2 * 60

	// ExportQueueSize bounds the export worker queue.
	ExportQueueSize = 64
)
