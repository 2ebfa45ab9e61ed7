package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// BookingRepository keeps bookings in process memory. It backs STORAGE=memory
// and the service tests.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]domain.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[uuid.UUID]domain.Booking)}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings[booking.ID] = clone(*booking)
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bookings[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if current.Version != booking.Version {
		return domain.ErrVersionConflict
	}

	booking.Version++
	booking.UpdatedAt = time.Now().UTC()
	r.bookings[booking.ID] = clone(*booking)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := clone(b)
	return &out, nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.Reference == reference {
			out := clone(b)
			return &out, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.RoomID == roomID && b.HasStatus(statuses) && b.Overlaps(checkIn, checkOut)
	}), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	out := r.filter(func(b *domain.Booking) bool { return b.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	out := r.filter(func(b *domain.Booking) bool { return b.Status == status })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Booking, error) {
	out := r.filter(func(b *domain.Booking) bool {
		return b.Status == domain.BookingPending && b.CreatedAt.Before(createdBefore)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *BookingRepository) filter(keep func(b *domain.Booking) bool) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Booking
	for _, b := range r.bookings {
		if keep(&b) {
			out = append(out, clone(b))
		}
	}
	return out
}

// clone copies the pointer fields so callers never share state with the store.
func clone(b domain.Booking) domain.Booking {
	if b.TotalPrice != nil {
		v := *b.TotalPrice
		b.TotalPrice = &v
	}
	if b.CancellationReason != nil {
		v := *b.CancellationReason
		b.CancellationReason = &v
	}
	return b
}
