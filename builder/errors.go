package builder

import "errors"

// Sentinel errors returned by Builder methods. All leave the builder in
// a usable state: no partial mutation is committed before the check
// that produces them.
var (
	// ErrOrderViolation is returned by InsertSorted when the given key
	// compares strictly less than the previously accepted key under the
	// bstring order.
	ErrOrderViolation = errors.New("builder: key is out of sorted order")

	// ErrFinalized is returned by InsertSorted when the builder has
	// already been finalized.
	ErrFinalized = errors.New("builder: builder is already finalized")

	// ErrReservedByte is returned when a key contains 0x00 or 0xFF,
	// both reserved by the compact representation.
	ErrReservedByte = errors.New("builder: key contains a reserved byte (0x00 or 0xFF)")
)
