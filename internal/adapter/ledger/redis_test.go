package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

func sampleResponse() domain.AvailabilityResponse {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	total, nights := 200.0, 2
	return domain.AvailabilityResponse{
		RoomID:     uuid.New(),
		HotelID:    uuid.New(),
		RequestID:  "req-1",
		Confirmed:  true,
		Message:    domain.MsgConfirmed,
		StartDate:  &start,
		EndDate:    &end,
		TotalPrice: &total,
		Nights:     &nights,
	}
}

func TestRedis_Put(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	l := NewRedis(db, time.Hour)
	resp := sampleResponse()

	raw, err := json.Marshal(fromDomain(resp))
	require.NoError(t, err)
	mockRedis.ExpectSet("availability:req:req-1", raw, time.Hour).SetVal("OK")

	assert.NoError(t, l.Put(context.Background(), "req-1", resp))

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRedis_Get(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	l := NewRedis(db, time.Hour)
	resp := sampleResponse()

	raw, err := json.Marshal(fromDomain(resp))
	require.NoError(t, err)
	mockRedis.ExpectGet(Key("req-1")).SetVal(string(raw))

	got, ok, err := l.Get(context.Background(), "req-1")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, resp.RoomID, got.RoomID)
	assert.True(t, got.Confirmed)
	assert.Equal(t, 200.0, *got.TotalPrice)
	assert.Equal(t, 2, *got.Nights)
	assert.True(t, resp.StartDate.Equal(*got.StartDate))

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRedis_GetMiss(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	l := NewRedis(db, time.Hour)

	mockRedis.ExpectGet(Key("req-1")).RedisNil()

	got, ok, err := l.Get(context.Background(), "req-1")

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedis_GetError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	l := NewRedis(db, time.Hour)

	mockRedis.ExpectGet(Key("req-1")).SetErr(errors.New("connection refused"))

	_, ok, err := l.Get(context.Background(), "req-1")

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedis_Delete(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	l := NewRedis(db, time.Hour)

	mockRedis.ExpectDel(Key("req-1")).SetVal(1)

	assert.NoError(t, l.Delete(context.Background(), "req-1"))

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
