package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/activity"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/pricing"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/availability"
)

type BookingUseCase interface {
	Create(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, error)
	EditDates(ctx context.Context, actor domain.Actor, bookingID string, input EditDatesInput) (*domain.Booking, error)
	SetStatus(ctx context.Context, actor domain.Actor, bookingID string, status string) (*domain.Booking, error)
	Delete(ctx context.Context, actor domain.Actor, bookingID string) error
	Get(ctx context.Context, actor domain.Actor, bookingID string) (*BookingDetails, error)
	ListForUser(ctx context.Context, actor domain.Actor, userID string) ([]domain.Booking, error)
	ListAll(ctx context.Context, actor domain.Actor) ([]domain.Booking, error)
	CompleteFinished(ctx context.Context, today domain.Date) ([]domain.Booking, error)
}

// Cache is invalidated whenever a booking flips a room's availability.
type Cache interface {
	InvalidateRooms(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	unit        *repository.Unit
	activity    activity.Log
	cache       Cache
	producer    Producer
	eventsTopic string
	now         func() time.Time
}

type CreateBookingInput struct {
	// UserID defaults to the acting user. Only admins may book for someone else.
	UserID     string `json:"user_id"`
	RoomID     string `json:"room_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
}

type EditDatesInput struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Notes    string `json:"notes"`
}

// BookingDetails is a booking with its room. Room is nil when the room was deleted.
type BookingDetails struct {
	domain.Booking
	Room *domain.Room `json:"room"`
}

type BookingServiceOption func(*BookingService)

// WithEvents publishes lifecycle events to topic.
func WithEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(unit *repository.Unit, activityLog activity.Log, opts ...BookingServiceOption) *BookingService {
	if activityLog == nil {
		activityLog = activity.Discard
	}
	service := &BookingService{
		unit:     unit,
		activity: activityLog,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, error) {
	checkIn, checkOut, nights, err := parseStay(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	guestName := strings.TrimSpace(input.GuestName)
	if guestName == "" {
		return nil, fmt.Errorf("%w: guest name is required", domain.ErrValidation)
	}
	userID := actor.UserID
	if input.UserID != "" && input.UserID != actor.UserID {
		if !actor.IsAdmin() {
			return nil, fmt.Errorf("%w: cannot book on behalf of another user", domain.ErrForbidden)
		}
		userID = input.UserID
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrValidation)
	}

	var (
		booking domain.Booking
		room    domain.Room
	)
	err = s.unit.Do(ctx, func(tx *repository.Tx) error {
		if userID != actor.UserID {
			if _, ok := tx.User(userID); !ok {
				return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
			}
		}
		r, ok := tx.Room(input.RoomID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrRoomNotFound, input.RoomID)
		}
		r, err := availability.Reserve(tx, r.ID)
		if err != nil {
			return err
		}
		room = r

		now := s.now().UTC()
		booking = domain.Booking{
			ID:         tx.NextBookingID(),
			UserID:     userID,
			RoomID:     room.ID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Nights:     nights,
			TotalPrice: pricing.Price(room.Type, nights),
			GuestName:  guestName,
			GuestPhone: strings.TrimSpace(input.GuestPhone),
			Status:     domain.BookingStatusActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		tx.PutBooking(booking)
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, actor.String(), "create booking", err)
		return nil, err
	}

	s.invalidate(ctx)
	s.record(ctx, actor, activity.LevelCreate, "Booking %s created for room %s", booking.ID, room.Number)
	s.publish(ctx, kafka.EventBookingCreated, booking, actor)
	return &booking, nil
}

func (s *BookingService) EditDates(ctx context.Context, actor domain.Actor, bookingID string, input EditDatesInput) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		oldIn, oldOut domain.Date
	)
	err := s.unit.Do(ctx, func(tx *repository.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrBookingNotFound, bookingID)
		}
		if !actor.Owns(b) {
			return fmt.Errorf("%w: only the guest who made booking %s can change its dates", domain.ErrForbidden, bookingID)
		}
		checkIn, checkOut, nights, err := parseStay(input.CheckIn, input.CheckOut)
		if err != nil {
			return err
		}
		room, ok := tx.Room(b.RoomID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrRoomNotFound, b.RoomID)
		}

		oldIn, oldOut = b.CheckIn, b.CheckOut
		b.CheckIn = checkIn
		b.CheckOut = checkOut
		b.Nights = nights
		b.TotalPrice = pricing.Price(room.Type, nights)
		b.Notes = strings.TrimSpace(input.Notes)
		b.UpdatedAt = s.now().UTC()
		tx.PutBooking(b)
		booking = b
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, actor.String(), "edit booking dates", err)
		return nil, err
	}

	s.record(ctx, actor, activity.LevelUpdate, "Booking %s dates changed: %s - %s -> %s - %s",
		booking.ID, oldIn, oldOut, booking.CheckIn, booking.CheckOut)
	s.publish(ctx, kafka.EventBookingDatesUpdated, booking, actor)
	return &booking, nil
}

func (s *BookingService) SetStatus(ctx context.Context, actor domain.Actor, bookingID string, status string) (*domain.Booking, error) {
	next, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		booking  domain.Booking
		previous domain.BookingStatus
		released bool
	)
	err = s.unit.Do(ctx, func(tx *repository.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrBookingNotFound, bookingID)
		}
		switch {
		case actor.IsAdmin():
		case actor.Owns(b) && next == domain.BookingStatusCancelled:
		default:
			return fmt.Errorf("%w: cannot set booking %s to %s", domain.ErrForbidden, bookingID, next)
		}

		previous = b.Status
		booking = b
		if b.Status == next {
			return nil
		}
		if b.Status.Terminal() {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, b.Status, next)
		}

		b.Status = next
		b.UpdatedAt = s.now().UTC()
		if next.Terminal() {
			released = s.release(tx, b)
		}
		tx.PutBooking(b)
		booking = b
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, actor.String(), "update booking status", err)
		return nil, err
	}
	if previous == next {
		return &booking, nil
	}

	if released {
		s.invalidate(ctx)
	}
	s.record(ctx, actor, activity.LevelUpdate, "Booking %s status changed: %s -> %s", booking.ID, previous, next)
	s.publish(ctx, statusEvent(next), booking, actor)
	return &booking, nil
}

func (s *BookingService) Delete(ctx context.Context, actor domain.Actor, bookingID string) error {
	var (
		booking  domain.Booking
		released bool
	)
	err := s.unit.Do(ctx, func(tx *repository.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrBookingNotFound, bookingID)
		}
		if !actor.IsAdmin() && !actor.Owns(b) {
			return fmt.Errorf("%w: cannot delete booking %s", domain.ErrForbidden, bookingID)
		}
		released = s.release(tx, b)
		tx.DeleteBooking(b.ID)
		booking = b
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, actor.String(), "delete booking", err)
		return err
	}

	if released {
		s.invalidate(ctx)
	}
	s.record(ctx, actor, activity.LevelDelete, "Booking %s deleted", booking.ID)
	s.publish(ctx, kafka.EventBookingDeleted, booking, actor)
	return nil
}

func (s *BookingService) Get(ctx context.Context, actor domain.Actor, bookingID string) (*BookingDetails, error) {
	var details BookingDetails
	err := s.unit.View(ctx, func(tx *repository.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrBookingNotFound, bookingID)
		}
		if !actor.IsAdmin() && !actor.Owns(b) {
			return fmt.Errorf("%w: cannot view booking %s", domain.ErrForbidden, bookingID)
		}
		details.Booking = b
		if room, ok := tx.Room(b.RoomID); ok {
			details.Room = &room
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (s *BookingService) ListForUser(ctx context.Context, actor domain.Actor, userID string) ([]domain.Booking, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, fmt.Errorf("%w: cannot list bookings of another user", domain.ErrForbidden)
	}
	var bookings []domain.Booking
	err := s.unit.View(ctx, func(tx *repository.Tx) error {
		bookings = tx.BookingsForUser(userID)
		return nil
	})
	return bookings, err
}

func (s *BookingService) ListAll(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can list all bookings", domain.ErrForbidden)
	}
	var bookings []domain.Booking
	err := s.unit.View(ctx, func(tx *repository.Tx) error {
		bookings = tx.Bookings()
		return nil
	})
	return bookings, err
}

// CompleteFinished completes every active booking whose check-out is on or before today.
func (s *BookingService) CompleteFinished(ctx context.Context, today domain.Date) ([]domain.Booking, error) {
	var (
		completed []domain.Booking
		released  bool
	)
	err := s.unit.Do(ctx, func(tx *repository.Tx) error {
		now := s.now().UTC()
		for _, b := range tx.Bookings() {
			if b.Status != domain.BookingStatusActive || b.CheckOut.After(today) {
				continue
			}
			b.Status = domain.BookingStatusCompleted
			b.UpdatedAt = now
			if s.release(tx, b) {
				released = true
			}
			tx.PutBooking(b)
			completed = append(completed, b)
		}
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, domain.System.String(), "complete finished bookings", err)
		return nil, err
	}

	if released {
		s.invalidate(ctx)
	}
	for _, b := range completed {
		s.record(ctx, domain.System, activity.LevelUpdate, "Booking %s status changed: %s -> %s",
			b.ID, domain.BookingStatusActive, domain.BookingStatusCompleted)
		s.publish(ctx, kafka.EventBookingCompleted, b, domain.System)
	}
	return completed, nil
}

// RunCompletionSweep runs CompleteFinished right away and then every interval until ctx is done.
// The sweep must share the Unit that serves requests: a second Unit over the same store
// would save from a stale snapshot.
func (s *BookingService) RunCompletionSweep(ctx context.Context, interval time.Duration) {
	sweep := func() {
		completed, err := s.CompleteFinished(ctx, domain.DateOf(s.now()))
		if err != nil {
			log.Printf("complete bookings error: %v", err)
			return
		}
		if len(completed) > 0 {
			log.Printf("completed %d bookings", len(completed))
		}
	}
	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sweep()
		case <-ctx.Done():
			return
		}
	}
}

// release frees the booking's room. A room that no longer exists is tolerated.
func (s *BookingService) release(tx *repository.Tx, b domain.Booking) bool {
	released, err := availability.Release(tx, b.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			log.Printf("WARNING: booking %s references missing room %s", b.ID, b.RoomID)
			return false
		}
		log.Printf("WARNING: failed to release room %s for booking %s: %v", b.RoomID, b.ID, err)
		return false
	}
	return released
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRooms(ctx); err != nil {
		log.Printf("WARNING: room cache invalidation failed: %v", err)
	}
}

func (s *BookingService) record(ctx context.Context, actor domain.Actor, level, format string, args ...any) {
	activity.Record(ctx, s.activity, actor.String(), level, fmt.Sprintf(format, args...))
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking, actor domain.Actor) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking, actor)
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.ID, err)
	}
}

func parseStay(checkIn, checkOut string) (domain.Date, domain.Date, int, error) {
	in, err := domain.ParseDate(checkIn)
	if err != nil {
		return domain.Date{}, domain.Date{}, 0, err
	}
	out, err := domain.ParseDate(checkOut)
	if err != nil {
		return domain.Date{}, domain.Date{}, 0, err
	}
	nights, err := domain.StayNights(in, out)
	if err != nil {
		return domain.Date{}, domain.Date{}, 0, err
	}
	return in, out, nights, nil
}

func statusEvent(status domain.BookingStatus) string {
	switch status {
	case domain.BookingStatusCancelled:
		return kafka.EventBookingCancelled
	case domain.BookingStatusCompleted:
		return kafka.EventBookingCompleted
	default:
		return "booking_status_changed"
	}
}

var _ BookingUseCase = (*BookingService)(nil)
