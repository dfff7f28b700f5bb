package rooms

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/activity"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/pricing"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/availability"
)

type RoomUseCase interface {
	Create(ctx context.Context, actor domain.Actor, input CreateRoomInput) (*domain.Room, error)
	Get(ctx context.Context, roomID string) (*domain.Room, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Room, error)
	Quote(ctx context.Context, roomID, checkIn, checkOut string) (*pricing.Quote, error)
	SetAvailability(ctx context.Context, actor domain.Actor, roomID string, available bool) (*domain.Room, error)
	Delete(ctx context.Context, actor domain.Actor, roomID string) error
}

type Cache interface {
	GetRooms(ctx context.Context) ([]domain.Room, error)
	SetRooms(ctx context.Context, rooms []domain.Room) error
	InvalidateRooms(ctx context.Context) error
}

type CreateRoomInput struct {
	RoomType   string `json:"room_type"`
	RoomNumber string `json:"room_number"`
}

type ListFilter struct {
	OnlyAvailable bool
}

type RoomService struct {
	unit     *repository.Unit
	activity activity.Log
	cache    Cache
}

type RoomServiceOption func(*RoomService)

// WithCache serves List through cache and invalidates it on every mutation.
func WithCache(cache Cache) RoomServiceOption {
	return func(s *RoomService) {
		s.cache = cache
	}
}

func NewRoomService(unit *repository.Unit, activityLog activity.Log, opts ...RoomServiceOption) *RoomService {
	if activityLog == nil {
		activityLog = activity.Discard
	}
	service := &RoomService{
		unit:     unit,
		activity: activityLog,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *RoomService) Create(ctx context.Context, actor domain.Actor, input CreateRoomInput) (*domain.Room, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can add rooms", domain.ErrForbidden)
	}
	variant, err := domain.ParseRoomVariant(input.RoomType)
	if err != nil {
		return nil, err
	}
	number := strings.TrimSpace(input.RoomNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: room number is required", domain.ErrValidation)
	}

	var room domain.Room
	err = s.unit.Do(ctx, func(tx *repository.Tx) error {
		if _, exists := tx.RoomByNumber(number); exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateRoomNumber, number)
		}
		room = domain.NewRoom(tx.NextRoomID(), number, variant)
		tx.PutRoom(room)
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, actor.String(), "create room", err)
		return nil, err
	}

	s.invalidate(ctx)
	s.record(ctx, actor, activity.LevelCreate, "Room %s (%s) created", room.Number, room.Type)
	return &room, nil
}

func (s *RoomService) Get(ctx context.Context, roomID string) (*domain.Room, error) {
	var room domain.Room
	err := s.unit.View(ctx, func(tx *repository.Tx) error {
		r, ok := tx.Room(roomID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrRoomNotFound, roomID)
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Quote prices a stay in the room without reserving it.
func (s *RoomService) Quote(ctx context.Context, roomID, checkIn, checkOut string) (*pricing.Quote, error) {
	in, err := domain.ParseDate(checkIn)
	if err != nil {
		return nil, err
	}
	out, err := domain.ParseDate(checkOut)
	if err != nil {
		return nil, err
	}
	nights, err := domain.StayNights(in, out)
	if err != nil {
		return nil, err
	}

	room, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	quote := pricing.QuoteStay(room.Type, nights)
	return &quote, nil
}

func (s *RoomService) List(ctx context.Context, filter ListFilter) ([]domain.Room, error) {
	all, err := s.allRooms(ctx)
	if err != nil {
		return nil, err
	}
	if !filter.OnlyAvailable {
		return all, nil
	}
	available := make([]domain.Room, 0, len(all))
	for _, r := range all {
		if r.IsAvailable {
			available = append(available, r)
		}
	}
	return available, nil
}

func (s *RoomService) allRooms(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRooms(ctx)
		if err != nil {
			log.Printf("WARNING: room cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	// The cache is filled under the store lock. Mutations invalidate only after their
	// commit, so a fill can never land after the invalidation of a newer snapshot.
	var rooms []domain.Room
	err := s.unit.View(ctx, func(tx *repository.Tx) error {
		rooms = tx.Rooms()
		if s.cache != nil {
			if err := s.cache.SetRooms(ctx, rooms); err != nil {
				log.Printf("WARNING: room cache write failed: %v", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) SetAvailability(ctx context.Context, actor domain.Actor, roomID string, available bool) (*domain.Room, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can change room availability", domain.ErrForbidden)
	}

	var room domain.Room
	err := s.unit.Do(ctx, func(tx *repository.Tx) error {
		r, err := availability.Set(tx, roomID, available)
		if err != nil {
			return err
		}
		room = r
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, actor.String(), "set room availability", err)
		return nil, err
	}

	s.invalidate(ctx)
	state := "unavailable"
	if available {
		state = "available"
	}
	s.record(ctx, actor, activity.LevelUpdate, "Room %s marked %s", room.Number, state)
	return &room, nil
}

func (s *RoomService) Delete(ctx context.Context, actor domain.Actor, roomID string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete rooms", domain.ErrForbidden)
	}

	var room domain.Room
	err := s.unit.Do(ctx, func(tx *repository.Tx) error {
		r, ok := tx.Room(roomID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrRoomNotFound, roomID)
		}
		room = r
		tx.DeleteRoom(roomID)
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, actor.String(), "delete room", err)
		return err
	}

	s.invalidate(ctx)
	s.record(ctx, actor, activity.LevelDelete, "Room %s deleted", room.Number)
	return nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRooms(ctx); err != nil {
		log.Printf("WARNING: room cache invalidation failed: %v", err)
	}
}

func (s *RoomService) record(ctx context.Context, actor domain.Actor, level, format string, args ...any) {
	activity.Record(ctx, s.activity, actor.String(), level, fmt.Sprintf(format, args...))
}

var _ RoomUseCase = (*RoomService)(nil)
