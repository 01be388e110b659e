package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// Lifecycle error taxonomy. Each member maps to a stable API error code;
// they stay distinct internally even when the HTTP layer collapses several
// of them into the same 4xx status.
var (
	// ErrInvalidTransition is returned when a requested status change is not
	// legal from the entity's current status. State is never mutated.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotAuthorizedOrFinal is returned when the actor lacks rights on the
	// campaign, or the campaign is in a terminal status that forbids edits.
	ErrNotAuthorizedOrFinal = errors.New("not authorized or campaign is final")

	// ErrInvalidAmount is returned for non-positive pledge or goal amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSelfPledge is returned when a contributor pledges to their own campaign.
	ErrSelfPledge = errors.New("cannot pledge to own campaign")

	// ErrCampaignNotAcceptingPledges is returned when the target campaign
	// is not in ACTIVE status.
	ErrCampaignNotAcceptingPledges = errors.New("campaign is not accepting pledges")

	// ErrNotPledgeOwner is returned when the caller is not the pledge's contributor.
	ErrNotPledgeOwner = errors.New("not the pledge owner")

	// ErrPledgeNotEditable is returned when editing a pledge outside PENDING status.
	ErrPledgeNotEditable = errors.New("pledge is not editable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
