package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	// Update persists status, price and reason. It fails with
	// domain.ErrVersionConflict when booking.Version is stale and bumps the
	// version on success.
	Update(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Booking, error)
}

// RoomRepository gives the coordinator exclusive access to one room at a time.
type RoomRepository interface {
	// WithLock loads the room under an exclusive lock, runs fn, and persists
	// the room if fn changed it. The lock is held until fn returns.
	WithLock(ctx context.Context, roomID uuid.UUID, fn func(room *domain.Room) error) error
	GetByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error)
}
