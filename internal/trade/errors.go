package trade

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrOfferNotFound   = errors.New("counter-offer not found")
)

// ValidationError reports input rejected by a validation strategy or a
// payload rule. Always recoverable; nothing is persisted when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// StateConflictError reports an attempt to re-run a terminal transition:
// resolving a non-pending counter-offer, or mutating a non-open listing.
type StateConflictError struct {
	Entity string
	ID     uint
	Status string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s %d is already %s", e.Entity, e.ID, e.Status)
}

// DataIntegrityError reports a counter-offer whose target listing cannot be
// resolved by the store. This is store corruption, not a routine not-found:
// callers should alarm rather than retry.
type DataIntegrityError struct {
	OfferID   uint
	ListingID uint
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("counter-offer %d references missing listing %d", e.OfferID, e.ListingID)
}
