package errors

import "errors"

var (
	ErrActivationNotFound     = errors.New("activation not found")
	ErrInvitationNotFound     = errors.New("invitation not found")
	ErrInvalidInput           = errors.New("invalid activation input")
	ErrActivationClosed       = errors.New("activation is not open for invitations")
	ErrInvalidStateTransition = errors.New("invalid invitation state transition")
	ErrDuplicateInvitation    = errors.New("creator already invited to this activation")
	ErrNotInvitationCreator   = errors.New("actor is not the invited creator")
	ErrNotActivationBrand     = errors.New("actor is not the activation brand")
	ErrInsufficientFunds      = errors.New("brand wallet balance is insufficient")
	ErrMutationInFlight       = errors.New("another mutation for this invitation is in flight")
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrIdempotencyConflict    = errors.New("idempotency key conflict")
)
