package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, reference, user_id, room_id, hotel_id, check_in, check_out, guest_count,
	special_requests, total_price, status, cancellation_reason, saga_request_id, created_at, updated_at, version`

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.RoomID,
		booking.HotelID,
		booking.CheckIn,
		booking.CheckOut,
		booking.GuestCount,
		booking.SpecialRequests,
		booking.TotalPrice,
		booking.Status,
		booking.CancellationReason,
		booking.SagaRequestID,
		booking.CreatedAt,
		booking.UpdatedAt,
		booking.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
	UPDATE bookings
	SET status = $1,
		total_price = $2,
		cancellation_reason = $3,
		updated_at = $4,
		version = version + 1
	WHERE id = $5 AND version = $6
	`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		booking.Status,
		booking.TotalPrice,
		booking.CancellationReason,
		now,
		booking.ID,
		booking.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrVersionConflict
	}

	booking.Version++
	booking.UpdatedAt = now
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`
	return r.getOne(ctx, query, reference)
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE room_id = $1
		AND status = ANY($2)
		AND check_in <= $3
		AND check_out >= $4
	`

	return r.list(ctx, query, roomID, pq.Array(statusStrings(statuses)), checkOut, checkIn)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY created_at`
	return r.list(ctx, query, status)
}

func (r *BookingRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE status = 'PENDING' AND created_at < $1
	ORDER BY created_at
	LIMIT $2
	`

	return r.list(ctx, query, createdBefore, limit)
}

func (r *BookingRepository) getOne(ctx context.Context, query string, arg any) (*domain.Booking, error) {
	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var totalPrice sql.NullFloat64
	var reason sql.NullString

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.UserID,
		&b.RoomID,
		&b.HotelID,
		&b.CheckIn,
		&b.CheckOut,
		&b.GuestCount,
		&b.SpecialRequests,
		&totalPrice,
		&b.Status,
		&reason,
		&b.SagaRequestID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.Version,
	)
	if err != nil {
		return nil, err
	}

	if totalPrice.Valid {
		b.TotalPrice = &totalPrice.Float64
	}

	if reason.Valid {
		b.CancellationReason = &reason.String
	}

	return &b, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
