package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/activity"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockCache) SetRooms(ctx context.Context, rooms []domain.Room) error {
	args := m.Called(ctx, rooms)
	return args.Error(0)
}

func (m *MockCache) InvalidateRooms(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockLog struct {
	mock.Mock
}

func (m *MockLog) Append(ctx context.Context, message, actor, level string) error {
	args := m.Called(ctx, message, actor, level)
	return args.Error(0)
}

var (
	admin = domain.Actor{UserID: "U001", Username: "admin", Role: domain.RoleAdmin}
	guest = domain.Actor{UserID: "U002", Username: "guest1", Role: domain.RoleGuest}
)

func newService(t *testing.T, opts ...RoomServiceOption) (*RoomService, *MockLog) {
	t.Helper()
	mockLog := &MockLog{}
	return NewRoomService(repository.NewUnit(repository.NewMemoryStore()), mockLog, opts...), mockLog
}

func TestRoomService_Create_Success(t *testing.T) {
	service, mockLog := newService(t)
	ctx := context.Background()
	mockLog.On("Append", ctx, "Room 101 (Suite) created", "admin", activity.LevelCreate).Return(nil).Once()

	room, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Suite", RoomNumber: " 101 "})

	require.NoError(t, err)
	assert.Equal(t, "R001", room.ID)
	assert.Equal(t, "101", room.Number)
	assert.Equal(t, domain.RoomVariantSuite, room.Type)
	assert.Equal(t, 4, room.Capacity)
	assert.Equal(t, "1500000", room.BasePrice.String())
	assert.True(t, room.IsAvailable)
	assert.Contains(t, room.Amenities, "Breakfast Included")
	mockLog.AssertExpectations(t)
}

func TestRoomService_Create_DuplicateNumberAcrossVariants(t *testing.T) {
	service, mockLog := newService(t)
	ctx := context.Background()
	mockLog.On("Append", ctx, mock.Anything, "admin", activity.LevelCreate).Return(nil).Once()

	_, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Standard", RoomNumber: "101"})
	require.NoError(t, err)

	_, err = service.Create(ctx, admin, CreateRoomInput{RoomType: "Deluxe", RoomNumber: "101"})

	assert.ErrorIs(t, err, domain.ErrDuplicateRoomNumber)
	rooms, err := service.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	mockLog.AssertExpectations(t)
}

func TestRoomService_Create_Rejected(t *testing.T) {
	testCases := []struct {
		name    string
		actor   domain.Actor
		input   CreateRoomInput
		wantErr error
	}{
		{"guest", guest, CreateRoomInput{RoomType: "Standard", RoomNumber: "101"}, domain.ErrForbidden},
		{"unknown type", admin, CreateRoomInput{RoomType: "Penthouse", RoomNumber: "101"}, domain.ErrInvalidRoomType},
		{"empty number", admin, CreateRoomInput{RoomType: "Standard", RoomNumber: "  "}, domain.ErrValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, mockLog := newService(t)

			room, err := service.Create(context.Background(), tc.actor, tc.input)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, room)
			mockLog.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	service, mockLog := newService(t)
	ctx := context.Background()
	mockLog.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Deluxe", RoomNumber: "201"})
	require.NoError(t, err)

	room, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, room.Number)
	assert.Equal(t, domain.RoomVariantDeluxe, room.Type)
	assert.True(t, created.BasePrice.Equal(room.BasePrice))

	_, err = service.Get(ctx, "R999")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomService_Quote(t *testing.T) {
	service, mockLog := newService(t)
	ctx := context.Background()
	mockLog.On("Append", ctx, mock.Anything, "admin", activity.LevelCreate).Return(nil).Once()
	room, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Deluxe", RoomNumber: "201"})
	require.NoError(t, err)

	quote, err := service.Quote(ctx, room.ID, "2025-12-01", "2025-12-05")
	require.NoError(t, err)
	assert.Equal(t, 4, quote.Nights)
	assert.Equal(t, "3200000", quote.Subtotal.String())
	assert.Equal(t, "320000", quote.Discount.String())
	assert.Equal(t, "2880000", quote.Total.String())

	_, err = service.Quote(ctx, room.ID, "2025-12-05", "2025-12-01")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = service.Quote(ctx, room.ID, "tomorrow", "2025-12-01")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.Quote(ctx, "R404", "2025-12-01", "2025-12-05")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	mockLog.AssertExpectations(t)
}

func TestRoomService_List_FilterAvailable(t *testing.T) {
	service, mockLog := newService(t)
	ctx := context.Background()
	mockLog.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	for _, number := range []string{"101", "102", "103"} {
		_, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Standard", RoomNumber: number})
		require.NoError(t, err)
	}
	_, err := service.SetAvailability(ctx, admin, "R002", false)
	require.NoError(t, err)

	all, err := service.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "R001", all[0].ID)

	available, err := service.List(ctx, ListFilter{OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, "R001", available[0].ID)
	assert.Equal(t, "R003", available[1].ID)
}

func TestRoomService_List_CacheHit(t *testing.T) {
	mockCache := &MockCache{}
	service, _ := newService(t, WithCache(mockCache))
	ctx := context.Background()
	cached := []domain.Room{domain.NewRoom("R007", "701", domain.RoomVariantDeluxe)}
	mockCache.On("GetRooms", ctx).Return(cached, nil).Once()

	rooms, err := service.List(ctx, ListFilter{})

	require.NoError(t, err)
	assert.Equal(t, cached, rooms)
	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "SetRooms", mock.Anything, mock.Anything)
}

func TestRoomService_List_CacheMissFillsCache(t *testing.T) {
	mockCache := &MockCache{}
	service, mockLog := newService(t, WithCache(mockCache))
	ctx := context.Background()
	mockLog.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockCache.On("InvalidateRooms", ctx).Return(nil).Once()
	mockCache.On("GetRooms", ctx).Return(nil, nil).Once()
	mockCache.On("SetRooms", ctx, mock.AnythingOfType("[]domain.Room")).Return(nil).Once()

	_, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Standard", RoomNumber: "101"})
	require.NoError(t, err)

	rooms, err := service.List(ctx, ListFilter{})

	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	mockCache.AssertExpectations(t)
}

func TestRoomService_List_CacheErrorFallsBackToStore(t *testing.T) {
	mockCache := &MockCache{}
	service, _ := newService(t, WithCache(mockCache))
	ctx := context.Background()
	mockCache.On("GetRooms", ctx).Return(nil, errors.New("connection refused")).Once()
	mockCache.On("SetRooms", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

	rooms, err := service.List(ctx, ListFilter{})

	require.NoError(t, err)
	assert.Empty(t, rooms)
	mockCache.AssertExpectations(t)
}

func TestRoomService_SetAvailability(t *testing.T) {
	mockCache := &MockCache{}
	service, mockLog := newService(t, WithCache(mockCache))
	ctx := context.Background()
	mockCache.On("InvalidateRooms", ctx).Return(nil)
	mockLog.On("Append", ctx, mock.Anything, "admin", activity.LevelCreate).Return(nil).Once()
	mockLog.On("Append", ctx, "Room 101 marked unavailable", "admin", activity.LevelUpdate).Return(nil).Once()

	_, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Standard", RoomNumber: "101"})
	require.NoError(t, err)

	room, err := service.SetAvailability(ctx, admin, "R001", false)
	require.NoError(t, err)
	assert.False(t, room.IsAvailable)

	_, err = service.SetAvailability(ctx, guest, "R001", true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.SetAvailability(ctx, admin, "R404", true)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	mockLog.AssertExpectations(t)
	mockCache.AssertNumberOfCalls(t, "InvalidateRooms", 2)
}

func TestRoomService_Delete(t *testing.T) {
	service, mockLog := newService(t)
	ctx := context.Background()
	mockLog.On("Append", ctx, mock.Anything, "admin", activity.LevelCreate).Return(nil).Once()
	mockLog.On("Append", ctx, "Room 101 deleted", "admin", activity.LevelDelete).Return(nil).Once()

	_, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Standard", RoomNumber: "101"})
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, guest, "R001"), domain.ErrForbidden)
	require.NoError(t, service.Delete(ctx, admin, "R001"))
	assert.ErrorIs(t, service.Delete(ctx, admin, "R001"), domain.ErrRoomNotFound)

	_, err = service.Get(ctx, "R001")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	mockLog.AssertExpectations(t)
}

func TestRoomService_ActivityFailureDoesNotFailOperation(t *testing.T) {
	service, mockLog := newService(t)
	ctx := context.Background()
	mockLog.On("Append", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	room, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Standard", RoomNumber: "101"})

	assert.NoError(t, err)
	assert.NotNil(t, room)
}

type saveFailingStore struct {
	*repository.MemoryStore
	fail bool
}

func (s *saveFailingStore) SaveAll(ctx context.Context, collection string, records any) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.MemoryStore.SaveAll(ctx, collection, records)
}

func TestRoomService_StoreFailuresAreRecorded(t *testing.T) {
	store := &saveFailingStore{MemoryStore: repository.NewMemoryStore()}
	mockLog := &MockLog{}
	service := NewRoomService(repository.NewUnit(store), mockLog)
	ctx := context.Background()
	mockLog.On("Append", ctx, mock.Anything, "admin", activity.LevelCreate).Return(nil).Once()
	mockLog.On("Append", ctx, "set room availability failed: disk full", "admin", activity.LevelError).Return(nil).Once()
	mockLog.On("Append", ctx, "delete room failed: disk full", "admin", activity.LevelError).Return(nil).Once()

	room, err := service.Create(ctx, admin, CreateRoomInput{RoomType: "Standard", RoomNumber: "101"})
	require.NoError(t, err)
	store.fail = true

	_, err = service.SetAvailability(ctx, admin, room.ID, false)
	assert.EqualError(t, err, "disk full")
	assert.EqualError(t, service.Delete(ctx, admin, room.ID), "disk full")

	store.fail = false
	got, err := service.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)
	mockLog.AssertExpectations(t)
}

func TestRoomService_List_FillsCacheUnderStoreLock(t *testing.T) {
	unit := repository.NewUnit(repository.NewMemoryStore())
	mockCache := &MockCache{}
	service := NewRoomService(unit, &MockLog{}, WithCache(mockCache))
	ctx := context.Background()

	committed := make(chan struct{})
	writerDone := false
	mockCache.On("GetRooms", ctx).Return(nil, nil).Once()
	mockCache.On("SetRooms", ctx, mock.Anything).Run(func(mock.Arguments) {
		go func() {
			_ = unit.Do(context.Background(), func(tx *repository.Tx) error {
				tx.PutRoom(domain.NewRoom(tx.NextRoomID(), "101", domain.RoomVariantStandard))
				return nil
			})
			close(committed)
		}()
		select {
		case <-committed:
			writerDone = true
		case <-time.After(20 * time.Millisecond):
		}
	}).Return(nil).Once()

	rooms, err := service.List(ctx, ListFilter{})
	require.NoError(t, err)
	<-committed

	assert.Empty(t, rooms)
	assert.False(t, writerDone, "a commit landed while the cache was being filled")
	mockCache.AssertExpectations(t)
}
