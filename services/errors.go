package services

import "errors"

// Shared sentinel errors, mapped onto HTTP statuses by the handlers layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrInvalidEmail            = errors.New("invalid email address")
	ErrNicknameRequired        = errors.New("nickname is required")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTournamentInvalidDates  = errors.New("tournament dates are inconsistent")
	ErrTournamentInvalidFormat = errors.New("tournament format is invalid")
	ErrTournamentInvalidCap    = errors.New("tournament max participants must be positive")
	ErrInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrRegistrationNotOpen     = errors.New("tournament registration is not open")
	ErrTournamentFull          = errors.New("tournament registration is full")

	// Conflicts
	ErrRegistrationConflict = errors.New("user is already registered for this tournament")

	// Authentication / authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrUserNotFound        = errors.New("user not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrParticipantNotFound = errors.New("participant registration not found")

	// Persistence of bracket state failed; the in-memory result was rolled
	// back with the transaction and must not be treated as saved.
	ErrBracketSaveFailed = errors.New("failed to persist bracket state")
)
