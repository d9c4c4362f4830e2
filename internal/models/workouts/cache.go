package models

import (
	"context"
	"fmt"
	"time"
)

const (
	listingGenerationKey = "routines:generation"
	listingTTL           = 5 * time.Minute
)

// Cache is the subset of the redis client used for listing pages.
// A nil Cache disables caching.
type Cache interface {
	Fetch(ctx context.Context, key string, dst interface{}) bool
	Store(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Generation(ctx context.Context, key string) int64
	Bump(ctx context.Context, key string)
}

func listingKey(generation int64, offset, limit int) string {
	return fmt.Sprintf("routines:likes:g%d:o%d:l%d", generation, offset, limit)
}

// invalidateListings makes every cached listing page stale. Called after a
// write that can change like ordering or listing membership has committed.
func invalidateListings(ctx context.Context, cache Cache) {
	if cache == nil {
		return
	}
	cache.Bump(ctx, listingGenerationKey)
}
