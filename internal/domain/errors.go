package domain

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the election engine and its stores.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrDuplicateVote    = errors.New("participant has already voted on this event")
	ErrInvalidOption    = errors.New("option does not belong to this event")
	ErrVotingInProgress = errors.New("cannot modify options after voting has started")
	ErrVotingClosed     = errors.New("event is not open for voting")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Sentinel errors for user operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already in use")
)

// ValidationError carries every rule violation found in a payload.
// errors.Is(err, ErrValidationFailed) holds for any *ValidationError.
type ValidationError struct {
	Violations []string
}

// NewValidationError returns nil when violations is empty.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
