package services

import (
	"errors"
	"fmt"

	"openrole-api/models"
)

// Domain errors surfaced by the pipeline service. Controllers map these to
// HTTP codes; authorization failures stay opaque to the caller.
var (
	ErrNotFound             = errors.New("application not found")
	ErrForbidden            = errors.New("access denied")
	ErrOwnershipMismatch    = errors.New("access denied")
	ErrDuplicateApplication = errors.New("an application for this job already exists")
	ErrIllegalWithdrawal    = errors.New("application can no longer be withdrawn")
	ErrInvalidApplicationID = errors.New("one or more application ids are invalid for this employer")
)

// InvalidTransitionError names the rejected (from, to) pair so callers can
// show an actionable message.
type InvalidTransitionError struct {
	From models.ApplicationStatus
	To   models.ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}
