package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `id, hotel_id, room_number, room_type, price_per_night, max_occupancy, available, booking_count, version, updated_at`

// WithLock holds a row lock for the duration of fn. The version column is
// left alone: it guards metadata edits, not this path.
func (r *RoomRepository) WithLock(ctx context.Context, roomID uuid.UUID, fn func(room *domain.Room) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`

	room, err := scanRoom(tx.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRoomNotFound
		}
		return err
	}

	before := *room
	if err := fn(room); err != nil {
		return err
	}

	if room.Available != before.Available || room.BookingCount != before.BookingCount {
		_, err = tx.ExecContext(ctx, `
		UPDATE rooms
		SET available = $1,
			booking_count = $2,
			updated_at = $3
		WHERE id = $4
		`, room.Available, room.BookingCount, time.Now().UTC(), room.ID)
		if err != nil {
			return fmt.Errorf("failed to update room %s: %w", room.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	return room, nil
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room

	err := row.Scan(
		&room.ID,
		&room.HotelID,
		&room.RoomNumber,
		&room.Type,
		&room.PricePerNight,
		&room.MaxOccupancy,
		&room.Available,
		&room.BookingCount,
		&room.Version,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &room, nil
}
