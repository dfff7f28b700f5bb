package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of these.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateRoomNumber = errors.New("room number already exists")
	ErrRoomUnavailable     = errors.New("room is not available")
	ErrForbidden           = errors.New("forbidden")
)

var (
	ErrInvalidRoomType         = fmt.Errorf("%w: room type invalid", ErrValidation)
	ErrInvalidDateRange        = fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	ErrInvalidStatus           = fmt.Errorf("%w: invalid booking status", ErrValidation)
	ErrInvalidStatusTransition = fmt.Errorf("%w: invalid status transition", ErrValidation)

	ErrRoomNotFound    = fmt.Errorf("room %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

// Error codes reported to callers.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeDuplicateRoomNumber = "DUPLICATE_ROOM_NUMBER"
	CodeRoomUnavailable     = "ROOM_UNAVAILABLE"
	CodeForbidden           = "FORBIDDEN"
	CodeInternal            = "INTERNAL"
)

// Kind maps err to its error code. Unknown errors are CodeInternal.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateRoomNumber):
		return CodeDuplicateRoomNumber
	case errors.Is(err, ErrRoomUnavailable):
		return CodeRoomUnavailable
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternal
	}
}
