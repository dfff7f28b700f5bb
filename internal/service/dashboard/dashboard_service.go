package dashboard

import (
	"context"
	"sort"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
)

// RecentLimit is how many bookings a summary lists.
const RecentLimit = 5

type DashboardUseCase interface {
	Summary(ctx context.Context, actor domain.Actor) (*Summary, error)
}

// Summary counts rooms across the hotel and bookings visible to the actor:
// every booking for admins, their own for guests.
type Summary struct {
	TotalRooms     int              `json:"total_rooms"`
	AvailableRooms int              `json:"available_rooms"`
	TotalBookings  int              `json:"total_bookings"`
	ActiveBookings int              `json:"active_bookings"`
	RecentBookings []domain.Booking `json:"recent_bookings"`
}

type DashboardService struct {
	unit *repository.Unit
}

func NewDashboardService(unit *repository.Unit) *DashboardService {
	return &DashboardService{unit: unit}
}

func (s *DashboardService) Summary(ctx context.Context, actor domain.Actor) (*Summary, error) {
	var summary Summary
	err := s.unit.View(ctx, func(tx *repository.Tx) error {
		rooms := tx.Rooms()
		summary.TotalRooms = len(rooms)
		for _, r := range rooms {
			if r.IsAvailable {
				summary.AvailableRooms++
			}
		}

		bookings := tx.Bookings()
		if !actor.IsAdmin() {
			bookings = tx.BookingsForUser(actor.UserID)
		}
		summary.TotalBookings = len(bookings)
		for _, b := range bookings {
			if b.Status == domain.BookingStatusActive {
				summary.ActiveBookings++
			}
		}
		summary.RecentBookings = recent(bookings, RecentLimit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// recent returns the n newest bookings, newest first. Ids break creation-time ties.
func recent(bookings []domain.Booking, n int) []domain.Booking {
	sorted := append([]domain.Booking(nil), bookings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return len(sorted[i].ID) > len(sorted[j].ID) || (len(sorted[i].ID) == len(sorted[j].ID) && sorted[i].ID > sorted[j].ID)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []domain.Booking{}
	}
	return sorted
}

var _ DashboardUseCase = (*DashboardService)(nil)
