package habit

import "errors"

var (
	ErrHabitNotFound       = errors.New("habit not found")
	ErrOccurrenceNotFound  = errors.New("occurrence not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrFutureDate          = errors.New("cannot track a date in the future")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidID           = errors.New("invalid id format")
	ErrInvalidRange        = errors.New("range start must not be after end")
	ErrInvalidStatus       = errors.New("status can only be set to active or inactive")
	ErrInvalidCompletion   = errors.New("status must be complete, incomplete or skipped")
	ErrNameRequired        = errors.New("name is required")
	ErrShareWithSelf       = errors.New("cannot share a habit with yourself")
	ErrNoParticipants      = errors.New("participantIds must not be empty")
	ErrNotShareable        = errors.New("participant copies cannot be shared")
	ErrAlreadyResponded    = errors.New("invitation already answered")
	ErrNotParticipating    = errors.New("not an accepted participant of this habit")
)
