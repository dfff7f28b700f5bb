package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Domenick1991/hotelbooking/internal/domain"
)

const (
	userIDPrefix    = "U"
	roomIDPrefix    = "R"
	bookingIDPrefix = "B"
)

// Unit serializes every read-modify-write cycle against the store behind one lock.
// The lock is process-local, so a store must be owned by exactly one Unit.
type Unit struct {
	store RecordStore
	mu    sync.Mutex
}

func NewUnit(store RecordStore) *Unit {
	return &Unit{store: store}
}

// Do loads every collection, runs fn and saves the collections fn changed.
// Nothing is saved when fn returns an error.
func (u *Unit) Do(ctx context.Context, fn func(tx *Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx, err := u.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return u.save(ctx, tx)
}

// View runs fn over a consistent snapshot without saving.
func (u *Unit) View(ctx context.Context, fn func(tx *Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx, err := u.load(ctx)
	if err != nil {
		return err
	}
	return fn(tx)
}

func (u *Unit) load(ctx context.Context) (*Tx, error) {
	var (
		users    []domain.User
		rooms    []domain.Room
		bookings []domain.Booking
		seqs     []sequence
	)
	if err := u.store.LoadAll(ctx, CollectionUsers, &users); err != nil {
		return nil, err
	}
	if err := u.store.LoadAll(ctx, CollectionRooms, &rooms); err != nil {
		return nil, err
	}
	if err := u.store.LoadAll(ctx, CollectionBookings, &bookings); err != nil {
		return nil, err
	}
	if err := u.store.LoadAll(ctx, CollectionSequences, &seqs); err != nil {
		return nil, err
	}

	tx := &Tx{
		users:    make(map[string]domain.User, len(users)),
		rooms:    make(map[string]domain.Room, len(rooms)),
		bookings: make(map[string]domain.Booking, len(bookings)),
		seqs:     make(map[string]int, len(seqs)),
		dirty:    make(map[string]bool),
	}
	for _, sq := range seqs {
		tx.seqs[sq.Prefix] = sq.Last
	}
	for _, usr := range users {
		tx.users[usr.ID] = usr
	}
	for _, r := range rooms {
		tx.rooms[r.ID] = r
	}
	for _, b := range bookings {
		tx.bookings[b.ID] = b
	}
	return tx, nil
}

func (u *Unit) save(ctx context.Context, tx *Tx) error {
	if tx.dirty[CollectionUsers] {
		if err := u.store.SaveAll(ctx, CollectionUsers, tx.Users()); err != nil {
			return err
		}
	}
	if tx.dirty[CollectionRooms] {
		if err := u.store.SaveAll(ctx, CollectionRooms, tx.Rooms()); err != nil {
			return err
		}
	}
	if tx.dirty[CollectionBookings] {
		if err := u.store.SaveAll(ctx, CollectionBookings, tx.Bookings()); err != nil {
			return err
		}
	}
	if tx.dirty[CollectionSequences] {
		if err := u.store.SaveAll(ctx, CollectionSequences, tx.sequences()); err != nil {
			return err
		}
	}
	return nil
}

// Tx is the in-memory view of the store for one Unit.Do call. Records are keyed by id.
type Tx struct {
	users    map[string]domain.User
	rooms    map[string]domain.Room
	bookings map[string]domain.Booking
	seqs     map[string]int
	dirty    map[string]bool
}

type sequence struct {
	Prefix string `json:"prefix"`
	Last   int    `json:"last"`
}

func (tx *Tx) sequences() []sequence {
	out := make([]sequence, 0, len(tx.seqs))
	for prefix, last := range tx.seqs {
		out = append(out, sequence{Prefix: prefix, Last: last})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

func (tx *Tx) User(id string) (domain.User, bool) {
	usr, ok := tx.users[id]
	return usr, ok
}

func (tx *Tx) UserByUsername(username string) (domain.User, bool) {
	for _, usr := range tx.users {
		if usr.Username == username {
			return usr, true
		}
	}
	return domain.User{}, false
}

func (tx *Tx) Users() []domain.User {
	out := make([]domain.User, 0, len(tx.users))
	for _, usr := range tx.users {
		out = append(out, usr)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out
}

func (tx *Tx) PutUser(usr domain.User) {
	tx.users[usr.ID] = usr
	tx.dirty[CollectionUsers] = true
}

func (tx *Tx) NextUserID() string {
	return tx.nextID(userIDPrefix, 3, keys(tx.users))
}

func (tx *Tx) Room(id string) (domain.Room, bool) {
	r, ok := tx.rooms[id]
	return r, ok
}

func (tx *Tx) RoomByNumber(number string) (domain.Room, bool) {
	for _, r := range tx.rooms {
		if r.Number == number {
			return r, true
		}
	}
	return domain.Room{}, false
}

func (tx *Tx) Rooms() []domain.Room {
	out := make([]domain.Room, 0, len(tx.rooms))
	for _, r := range tx.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out
}

func (tx *Tx) PutRoom(r domain.Room) {
	tx.rooms[r.ID] = r
	tx.dirty[CollectionRooms] = true
}

func (tx *Tx) DeleteRoom(id string) bool {
	if _, ok := tx.rooms[id]; !ok {
		return false
	}
	delete(tx.rooms, id)
	tx.dirty[CollectionRooms] = true
	return true
}

func (tx *Tx) NextRoomID() string {
	return tx.nextID(roomIDPrefix, 3, keys(tx.rooms))
}

func (tx *Tx) Booking(id string) (domain.Booking, bool) {
	b, ok := tx.bookings[id]
	return b, ok
}

func (tx *Tx) Bookings() []domain.Booking {
	out := make([]domain.Booking, 0, len(tx.bookings))
	for _, b := range tx.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out
}

func (tx *Tx) BookingsForUser(userID string) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range tx.Bookings() {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

func (tx *Tx) PutBooking(b domain.Booking) {
	tx.bookings[b.ID] = b
	tx.dirty[CollectionBookings] = true
}

func (tx *Tx) DeleteBooking(id string) bool {
	if _, ok := tx.bookings[id]; !ok {
		return false
	}
	delete(tx.bookings, id)
	tx.dirty[CollectionBookings] = true
	return true
}

func (tx *Tx) NextBookingID() string {
	return tx.nextID(bookingIDPrefix, 4, keys(tx.bookings))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// nextID issues the id after both the last one issued and the highest one stored,
// so ids freed by deletes are never reused. Each call consumes an id.
func (tx *Tx) nextID(prefix string, width int, ids []string) string {
	highest := tx.seqs[prefix]
	for _, id := range ids {
		if n, ok := idSeq(prefix, id); ok && n > highest {
			highest = n
		}
	}
	tx.seqs[prefix] = highest + 1
	tx.dirty[CollectionSequences] = true
	return fmt.Sprintf("%s%0*d", prefix, width, highest+1)
}

func idSeq(prefix, id string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
