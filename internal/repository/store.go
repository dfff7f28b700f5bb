package repository

import (
	"context"
	"encoding/json"
	"sync"
)

const (
	CollectionUsers     = "users"
	CollectionRooms     = "rooms"
	CollectionBookings  = "bookings"
	// CollectionSequences keeps the last id issued per prefix.
	CollectionSequences = "sequences"
)

// RecordStore persists whole collections. LoadAll decodes a collection into out
// (a pointer to a slice) and leaves it untouched when the collection does not exist yet.
type RecordStore interface {
	LoadAll(ctx context.Context, collection string, out any) error
	SaveAll(ctx context.Context, collection string, records any) error
}

// MemoryStore keeps collections as encoded JSON in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) LoadAll(_ context.Context, collection string, out any) error {
	s.mu.RLock()
	data, ok := s.data[collection]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (s *MemoryStore) SaveAll(_ context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[collection] = data
	s.mu.Unlock()
	return nil
}

var _ RecordStore = (*MemoryStore)(nil)
