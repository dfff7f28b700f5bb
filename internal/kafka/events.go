package kafka

import (
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventBookingCreated      = "booking_created"
	EventBookingDatesUpdated = "booking_dates_updated"
	EventBookingCancelled    = "booking_cancelled"
	EventBookingCompleted    = "booking_completed"
	EventBookingDeleted      = "booking_deleted"
)

// BookingEvent is published on every booking lifecycle change, keyed by booking id.
type BookingEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	BookingID  string          `json:"booking_id"`
	UserID     string          `json:"user_id"`
	RoomID     string          `json:"room_id"`
	CheckIn    domain.Date     `json:"check_in"`
	CheckOut   domain.Date     `json:"check_out"`
	Nights     int             `json:"nights"`
	TotalPrice decimal.Decimal `json:"total_price"`
	GuestName  string          `json:"guest_name"`
	GuestPhone string          `json:"guest_phone"`
	Status     string          `json:"status"`
	Actor      string          `json:"actor"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b domain.Booking, actor domain.Actor) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Nights:     b.Nights,
		TotalPrice: b.TotalPrice,
		GuestName:  b.GuestName,
		GuestPhone: b.GuestPhone,
		Status:     string(b.Status),
		Actor:      actor.String(),
		OccurredAt: time.Now().UTC(),
	}
}
