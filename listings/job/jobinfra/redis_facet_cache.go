package jobinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/pkg/logx"
	"github.com/go-redis/redis/v8"
)

const facetCacheKey = "jobs:facets"

// RedisFacetCache caches the facet snapshot in Redis. The snapshot is
// filter-independent, so a single key with a short TTL serves every caller.
// All operations are best effort: Redis being down only costs a recompute.
type RedisFacetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFacetCache creates a facet cache with the given TTL
func NewRedisFacetCache(client *redis.Client, ttl time.Duration) *RedisFacetCache {
	return &RedisFacetCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached snapshot if present
func (c *RedisFacetCache) Get(ctx context.Context) (*job.FacetCounts, bool) {
	data, err := c.client.Get(ctx, facetCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logx.Debugf("facet cache read failed: %v", err)
		}
		return nil, false
	}

	var counts job.FacetCounts
	if err := json.Unmarshal(data, &counts); err != nil {
		logx.Debugf("facet cache decode failed: %v", err)
		return nil, false
	}
	return &counts, true
}

// Set stores the snapshot with the configured TTL
func (c *RedisFacetCache) Set(ctx context.Context, counts *job.FacetCounts) {
	data, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, facetCacheKey, data, c.ttl).Err(); err != nil {
		logx.Debugf("facet cache write failed: %v", err)
	}
}
