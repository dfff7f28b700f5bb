package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileStore_MissingCollectionIsEmpty(t *testing.T) {
	store, err := NewJSONFileStore(t.TempDir())
	require.NoError(t, err)

	var rooms []domain.Room
	require.NoError(t, store.LoadAll(context.Background(), CollectionRooms, &rooms))
	assert.Empty(t, rooms)
}

func TestJSONFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	booking := domain.Booking{
		ID:         "B0001",
		UserID:     "U002",
		RoomID:     "R001",
		CheckIn:    domain.NewDate(2025, 12, 25),
		CheckOut:   domain.NewDate(2025, 12, 30),
		Nights:     5,
		TotalPrice: decimal.NewFromInt(6375000),
		GuestName:  "John Doe",
		GuestPhone: "08123456789",
		Status:     domain.BookingStatusActive,
	}
	require.NoError(t, store.SaveAll(ctx, CollectionBookings, []domain.Booking{booking}))

	raw, err := os.ReadFile(filepath.Join(dir, "bookings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"check_in": "2025-12-25"`)
	assert.Contains(t, string(raw), `"total_price": 6375000`)

	var loaded []domain.Booking
	require.NoError(t, store.LoadAll(ctx, CollectionBookings, &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, booking.ID, loaded[0].ID)
	assert.True(t, booking.CheckIn.Equal(loaded[0].CheckIn))
	assert.True(t, booking.TotalPrice.Equal(loaded[0].TotalPrice))
	assert.Equal(t, 5, loaded[0].Nights)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestJSONFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rooms.json"), []byte("{not json"), 0o644))
	store, err := NewJSONFileStore(dir)
	require.NoError(t, err)

	var rooms []domain.Room
	assert.Error(t, store.LoadAll(context.Background(), CollectionRooms, &rooms))
}

func TestMemoryStore_LoadReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	rooms := []domain.Room{domain.NewRoom("R001", "101", domain.RoomVariantDeluxe)}
	require.NoError(t, store.SaveAll(ctx, CollectionRooms, rooms))

	rooms[0].IsAvailable = false

	var loaded []domain.Room
	require.NoError(t, store.LoadAll(ctx, CollectionRooms, &loaded))
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].IsAvailable)
	assert.Equal(t, domain.RoomVariantDeluxe.Spec().Amenities, loaded[0].Amenities)
}

func TestNewPGRecordStore(t *testing.T) {
	pool := &pgxpool.Pool{}
	store := NewPGRecordStore(pool)
	assert.NotNil(t, store)
}

func TestOpen_JSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, closeStore, err := Open(context.Background(), config.StorageConfig{Driver: config.StorageDriverJSON, DataDir: dir})

	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &JSONFileStore{}, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"})
	assert.Error(t, err)
}
