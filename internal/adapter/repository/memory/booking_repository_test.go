package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}

func TestBookingRepository_UpdateChecksVersion(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	b := &domain.Booking{ID: uuid.New(), Status: domain.BookingPending}
	require.NoError(t, repo.Create(ctx, b))

	stale, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)

	require.NoError(t, b.Confirm(100))
	require.NoError(t, repo.Update(ctx, b))
	assert.Equal(t, 1, b.Version)

	require.NoError(t, stale.Fail("expired"))
	assert.ErrorIs(t, repo.Update(ctx, stale), domain.ErrVersionConflict)

	stored, _ := repo.GetByID(ctx, b.ID)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
}

func TestBookingRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	b := &domain.Booking{ID: uuid.New(), Status: domain.BookingPending}
	require.NoError(t, repo.Create(ctx, b))

	got, _ := repo.GetByID(ctx, b.ID)
	got.Status = domain.BookingCancelled

	again, _ := repo.GetByID(ctx, b.ID)
	assert.Equal(t, domain.BookingPending, again.Status)
}

func TestBookingRepository_FindOverlapping(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()
	roomID := uuid.New()

	active := &domain.Booking{ID: uuid.New(), RoomID: roomID, CheckIn: day("2025-06-01"), CheckOut: day("2025-06-05"), Status: domain.BookingConfirmed}
	failed := &domain.Booking{ID: uuid.New(), RoomID: roomID, CheckIn: day("2025-06-01"), CheckOut: day("2025-06-05"), Status: domain.BookingFailed}
	otherRoom := &domain.Booking{ID: uuid.New(), RoomID: uuid.New(), CheckIn: day("2025-06-01"), CheckOut: day("2025-06-05"), Status: domain.BookingPending}
	for _, b := range []*domain.Booking{active, failed, otherRoom} {
		require.NoError(t, repo.Create(ctx, b))
	}

	got, err := repo.FindOverlapping(ctx, roomID, day("2025-06-05"), day("2025-06-07"), domain.ActiveStatuses)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)

	got, err = repo.FindOverlapping(ctx, roomID, day("2025-06-06"), day("2025-06-07"), domain.ActiveStatuses)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBookingRepository_FindStalePending(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Booking{
			ID:        uuid.New(),
			Status:    domain.BookingPending,
			CreatedAt: now.Add(-time.Duration(i+1) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Booking{ID: uuid.New(), Status: domain.BookingPending, CreatedAt: now}))

	got, err := repo.FindStalePending(ctx, now.Add(-30*time.Minute), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.Before(got[1].CreatedAt), "oldest first")
}

func TestBookingRepository_ListByUserNewestFirst(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()
	user := uuid.New()
	now := time.Now().UTC()

	older := &domain.Booking{ID: uuid.New(), UserID: user, CreatedAt: now.Add(-time.Hour)}
	newer := &domain.Booking{ID: uuid.New(), UserID: user, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, &domain.Booking{ID: uuid.New(), UserID: uuid.New()}))

	got, err := repo.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
}
