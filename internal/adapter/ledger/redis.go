package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// Redis shares the ledger between hotel-service replicas. Entries expire
// after ttl.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func Key(requestID string) string {
	return fmt.Sprintf("availability:req:%s", requestID)
}

func (r *Redis) Get(ctx context.Context, requestID string) (*domain.AvailabilityResponse, bool, error) {
	raw, err := r.rdb.Get(ctx, Key(requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("decode ledger entry %s: %w", requestID, err)
	}

	resp := rec.toDomain()
	return &resp, true, nil
}

func (r *Redis) Put(ctx context.Context, requestID string, resp domain.AvailabilityResponse) error {
	raw, err := json.Marshal(fromDomain(resp))
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, Key(requestID), raw, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, requestID string) error {
	return r.rdb.Del(ctx, Key(requestID)).Err()
}
