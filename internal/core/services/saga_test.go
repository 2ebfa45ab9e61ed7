package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/adapter/events"
	"github.com/srgjo27/hotel_booking/internal/adapter/gateway"
	"github.com/srgjo27/hotel_booking/internal/adapter/ledger"
	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
	"github.com/srgjo27/hotel_booking/internal/platform/logger"
)

type sagaFixture struct {
	room     domain.Room
	rooms    *memory.RoomRepository
	bookings *memory.BookingRepository
	ledger   *ledger.Memory
	booking  *services.BookingService
}

// newSaga wires both services in-process, with the hotel side behind the
// local gateway.
func newSaga(t *testing.T) *sagaFixture {
	t.Helper()

	log := logger.Discard()
	room := newRoom()

	f := &sagaFixture{
		room:     room,
		rooms:    memory.NewRoomRepository(room),
		bookings: memory.NewBookingRepository(),
		ledger:   ledger.NewMemory(100, time.Hour),
	}

	availability := services.NewAvailabilityService(f.rooms, f.ledger, log)
	f.booking = services.NewBookingService(f.bookings, gateway.NewLocal(availability), events.Noop{}, log)
	return f
}

func (f *sagaFixture) request(checkIn, checkOut string) services.CreateBookingRequest {
	return services.CreateBookingRequest{
		RoomID:       f.room.ID.String(),
		HotelID:      f.room.HotelID.String(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		GuestCount:   2,
	}
}

func TestSaga_BookThenCancelFreesRoom(t *testing.T) {
	f := newSaga(t)
	ctx := context.Background()
	guest := services.Actor{UserID: uuid.New()}

	booking, err := f.booking.CreateBooking(ctx, f.request("2025-06-01", "2025-06-03"), guest)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Equal(t, 200.0, *booking.TotalPrice)

	room, _ := f.rooms.GetByID(ctx, f.room.ID)
	assert.False(t, room.Available)

	cancelled, err := f.booking.CancelBooking(ctx, booking.ID, guest, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	room, _ = f.rooms.GetByID(ctx, f.room.ID)
	assert.True(t, room.Available)
	assert.Equal(t, 0, f.ledger.Len())

	stored, err := f.booking.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, stored.Status)
}

func TestSaga_AdjacentStayConflicts(t *testing.T) {
	f := newSaga(t)
	ctx := context.Background()

	_, err := f.booking.CreateBooking(ctx, f.request("2025-06-01", "2025-06-03"), services.Actor{UserID: uuid.New()})
	require.NoError(t, err)

	// Check-in on the previous check-out day still overlaps.
	_, err = f.booking.CreateBooking(ctx, f.request("2025-06-03", "2025-06-05"), services.Actor{UserID: uuid.New()})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestSaga_RoomHeldOutsideRequestedDatesIsRejected(t *testing.T) {
	f := newSaga(t)
	ctx := context.Background()

	_, err := f.booking.CreateBooking(ctx, f.request("2025-06-01", "2025-06-03"), services.Actor{UserID: uuid.New()})
	require.NoError(t, err)

	// Disjoint dates pass the overlap check, but the room's single
	// availability flag is still held.
	_, err = f.booking.CreateBooking(ctx, f.request("2025-07-01", "2025-07-03"), services.Actor{UserID: uuid.New()})
	require.True(t, apperr.HasCode(err, apperr.CodeRejected))

	ref := apperr.As(err).Details["bookingReference"].(string)
	failed, err := f.booking.GetBookingByReference(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingFailed, failed.Status)
	assert.Equal(t, domain.MsgNotAvailable, *failed.CancellationReason)
}

func TestSaga_ConcurrentBookingsConfirmAtMostOne(t *testing.T) {
	f := newSaga(t)
	ctx := context.Background()

	const callers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	confirmed := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := f.booking.CreateBooking(ctx, f.request("2025-06-01", "2025-06-03"), services.Actor{UserID: uuid.New()})
			if err == nil && b.Status == domain.BookingConfirmed {
				mu.Lock()
				confirmed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, confirmed)

	all, err := f.booking.ListBookingsByStatus(ctx, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	room, _ := f.rooms.GetByID(ctx, f.room.ID)
	assert.Equal(t, 1, room.BookingCount)
}

func TestSaga_ReconcilerExpiresOrphanedPending(t *testing.T) {
	f := newSaga(t)
	ctx := context.Background()

	orphan := pendingBooking()
	orphan.RoomID = f.room.ID
	require.NoError(t, f.bookings.Create(ctx, &orphan))

	n, err := f.booking.ReconcileStale(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := f.booking.GetBooking(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingFailed, stored.Status)
	assert.Equal(t, services.ReasonExpired, *stored.CancellationReason)
}
