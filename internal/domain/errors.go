package domain

import "errors"

// Sentinel errors for the reservation flows. Handlers translate these to
// HTTP statuses at the boundary; everything else is a 500 with a generic
// body.
var (
	// ErrInvalid marks a request that fails validation (missing field,
	// malformed identifier).
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound covers missing wishlists and wishes, and deliberately
	// also wishlists that exist but are not public: a token probe must not
	// be able to distinguish the two cases.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyReserved is returned when a reserve attempt loses the
	// guard check. The stored reservation is never modified.
	ErrAlreadyReserved = errors.New("wish is already reserved")

	// ErrNotReserver is returned when a release attempt presents an
	// identifier that does not match the stored reserved_by, including
	// the case where the wish is not reserved at all.
	ErrNotReserver = errors.New("caller does not hold the reservation")

	// ErrSelfReserve rejects an owner reserving a wish on their own list.
	ErrSelfReserve = errors.New("cannot reserve your own wish")
)
