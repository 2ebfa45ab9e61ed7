package ledger

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// Memory is a per-process ledger bounded both by entry count and by age, so a
// confirm that is never released cannot pin memory forever.
type Memory struct {
	cache *expirable.LRU[string, domain.AvailabilityResponse]
}

func NewMemory(maxEntries int, ttl time.Duration) *Memory {
	return &Memory{cache: expirable.NewLRU[string, domain.AvailabilityResponse](maxEntries, nil, ttl)}
}

func (m *Memory) Get(ctx context.Context, requestID string) (*domain.AvailabilityResponse, bool, error) {
	resp, ok := m.cache.Get(requestID)
	if !ok {
		return nil, false, nil
	}
	return &resp, true, nil
}

func (m *Memory) Put(ctx context.Context, requestID string, resp domain.AvailabilityResponse) error {
	m.cache.Add(requestID, resp)
	return nil
}

func (m *Memory) Delete(ctx context.Context, requestID string) error {
	m.cache.Remove(requestID)
	return nil
}

func (m *Memory) Len() int {
	return m.cache.Len()
}
