package sales

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/redis"
)

// ReportCache is a best-effort Redis cache for the fixed-shape reports. A nil
// cache (Redis not configured) behaves as a permanent miss; cache failures
// never fail a request.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache wraps the Redis client. Returns nil when the client is nil
// so callers can wire it unconditionally.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Get loads a cached report into dest, reporting whether it was present.
func (c *ReportCache) Get(ctx context.Context, name string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, c.client.ReportKey(name))
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// Set stores a report payload under the namespaced key.
func (c *ReportCache) Set(ctx context.Context, name string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.client.ReportKey(name), raw, c.ttl)
}
