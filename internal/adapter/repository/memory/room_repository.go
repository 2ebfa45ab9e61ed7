package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type lockedRoom struct {
	mu   sync.Mutex
	room domain.Room
}

// RoomRepository guards every room with its own mutex, the in-process
// counterpart of SELECT ... FOR UPDATE.
type RoomRepository struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*lockedRoom
}

func NewRoomRepository(rooms ...domain.Room) *RoomRepository {
	r := &RoomRepository{rooms: make(map[uuid.UUID]*lockedRoom, len(rooms))}
	for _, room := range rooms {
		r.Put(room)
	}
	return r
}

// Put adds or replaces a room.
func (r *RoomRepository) Put(room domain.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lr, ok := r.rooms[room.ID]; ok {
		lr.mu.Lock()
		lr.room = room
		lr.mu.Unlock()
		return
	}
	r.rooms[room.ID] = &lockedRoom{room: room}
}

func (r *RoomRepository) WithLock(ctx context.Context, roomID uuid.UUID, fn func(room *domain.Room) error) error {
	r.mu.RLock()
	lr, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrRoomNotFound
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := lr.room
	if err := fn(&working); err != nil {
		return err
	}

	if working.Available != lr.room.Available || working.BookingCount != lr.room.BookingCount {
		working.UpdatedAt = time.Now().UTC()
		lr.room = working
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error) {
	r.mu.RLock()
	lr, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()

	room := lr.room
	return &room, nil
}
