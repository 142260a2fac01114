package pointsdb

import "errors"

// Sentinel errors for the points repository layer.
var (
	// ErrNotFound indicates no ledger fact matches the key.
	ErrNotFound = errors.New("points record not found")
)
