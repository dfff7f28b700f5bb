package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case BookingStatusActive, BookingStatusCancelled, BookingStatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Terminal reports whether no transition may leave the status.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

type Booking struct {
	ID         string          `json:"booking_id"`
	UserID     string          `json:"user_id"`
	RoomID     string          `json:"room_id"`
	CheckIn    Date            `json:"check_in"`
	CheckOut   Date            `json:"check_out"`
	Nights     int             `json:"nights"`
	TotalPrice decimal.Decimal `json:"total_price"`
	GuestName  string          `json:"guest_name"`
	GuestPhone string          `json:"guest_phone"`
	Notes      string          `json:"notes,omitempty"`
	Status     BookingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StayNights returns the nights between checkIn and checkOut.
// A range that is not strictly increasing is ErrInvalidDateRange.
func StayNights(checkIn, checkOut Date) (int, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0, fmt.Errorf("%w: check-in and check-out are required", ErrValidation)
	}
	nights := checkIn.DaysUntil(checkOut)
	if nights <= 0 {
		return 0, ErrInvalidDateRange
	}
	return nights, nil
}
