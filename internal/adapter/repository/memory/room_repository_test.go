package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

func TestRoomRepository_WithLockSerializes(t *testing.T) {
	room := domain.Room{ID: uuid.New(), Available: true}
	repo := memory.NewRoomRepository(room)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.WithLock(ctx, room.ID, func(r *domain.Room) error {
				r.Occupy()
				return nil
			})
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.BookingCount)
}

func TestRoomRepository_WithLockDiscardsOnError(t *testing.T) {
	room := domain.Room{ID: uuid.New(), Available: true}
	repo := memory.NewRoomRepository(room)
	ctx := context.Background()

	err := repo.WithLock(ctx, room.ID, func(r *domain.Room) error {
		r.Occupy()
		return errors.New("boom")
	})
	assert.Error(t, err)

	stored, _ := repo.GetByID(ctx, room.ID)
	assert.True(t, stored.Available)
	assert.Equal(t, 0, stored.BookingCount)
}

func TestRoomRepository_NotFound(t *testing.T) {
	repo := memory.NewRoomRepository()

	err := repo.WithLock(context.Background(), uuid.New(), func(r *domain.Room) error { return nil })
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}
