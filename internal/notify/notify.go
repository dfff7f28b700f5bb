package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/hotelbooking/internal/kafka"
)

// Sender tells guests about changes to their bookings. Messages are written to out
// until a real delivery channel is wired in.
type Sender struct {
	out io.Writer
}

func NewSender(out io.Writer) *Sender {
	if out == nil {
		out = os.Stdout
	}
	return &Sender{out: out}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text, ok := message(event)
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(s.out, "notify %s (%s) [%s]: %s\n", event.GuestName, event.GuestPhone, event.BookingID, text)
	return err
}

func message(event kafka.BookingEvent) (string, bool) {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("booking confirmed for room %s, %s to %s (%d nights), total %s",
			event.RoomID, event.CheckIn, event.CheckOut, event.Nights, event.TotalPrice.StringFixed(2)), true
	case kafka.EventBookingDatesUpdated:
		return fmt.Sprintf("dates changed to %s - %s (%d nights), new total %s",
			event.CheckIn, event.CheckOut, event.Nights, event.TotalPrice.StringFixed(2)), true
	case kafka.EventBookingCancelled:
		return "booking cancelled", true
	case kafka.EventBookingCompleted:
		return "thank you for staying with us", true
	case kafka.EventBookingDeleted:
		return fmt.Sprintf("booking for room %s, %s to %s has been removed", event.RoomID, event.CheckIn, event.CheckOut), true
	default:
		return "", false
	}
}
