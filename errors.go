package capgains

import "errors"

// Precondition failures surfaced by the engine. They are wrapped with the
// offending event's details, so callers should test them with [errors.Is].
var (
	// ErrUnknownInstrument is returned when a sell references a security
	// with no open lots.
	ErrUnknownInstrument = errors.New("unknown instrument")

	// ErrInsufficientInventory is returned when a sell requests more units
	// than held across all open lots of the security. The inventory is left
	// untouched.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrInvalidEvent is returned for a non-positive quantity, a negative
	// price, or a negative fee.
	ErrInvalidEvent = errors.New("invalid event")
)
