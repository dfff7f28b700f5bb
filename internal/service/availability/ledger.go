// Package availability flips a room between available and unavailable inside a store transaction.
package availability

import (
	"fmt"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
)

// Reserve marks an available room unavailable.
func Reserve(tx *repository.Tx, roomID string) (domain.Room, error) {
	room, ok := tx.Room(roomID)
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: room %s does not exist", domain.ErrRoomUnavailable, roomID)
	}
	if !room.IsAvailable {
		return room, fmt.Errorf("%w: room %s", domain.ErrRoomUnavailable, room.Number)
	}
	room.IsAvailable = false
	tx.PutRoom(room)
	return room, nil
}

// Release marks a room available. Releasing an available room changes nothing.
// The returned bool reports whether the flag actually flipped.
func Release(tx *repository.Tx, roomID string) (bool, error) {
	room, ok := tx.Room(roomID)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, roomID)
	}
	if room.IsAvailable {
		return false, nil
	}
	room.IsAvailable = true
	tx.PutRoom(room)
	return true, nil
}

// Set forces the flag, for admin overrides.
func Set(tx *repository.Tx, roomID string, available bool) (domain.Room, error) {
	room, ok := tx.Room(roomID)
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, roomID)
	}
	room.IsAvailable = available
	tx.PutRoom(room)
	return room, nil
}
