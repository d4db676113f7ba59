package geocoder

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/shared"
	"bookmarket-backend/pkg/cache"
)

// Cached memoises successful lookups in the shared cache. Cache errors
// never fail a lookup.
type Cached struct {
	next  Geocoder
	cache cache.Cache
	ttl   time.Duration
}

func NewCached(next Geocoder, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl}
}

func (g *Cached) Geocode(ctx context.Context, address string) (*shared.GeoLocation, error) {
	key := cacheKey(address)

	var hit shared.GeoLocation
	found, err := g.cache.Get(ctx, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
	}
	if found {
		return &hit, nil
	}

	loc, err := g.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := g.cache.Set(ctx, key, loc, g.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
	}
	return loc, nil
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}
