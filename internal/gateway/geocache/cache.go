// Package geocache is a Redis read-through cache in front of a geocoder.
package geocache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/logx"
)

const keyPrefix = "geocode:"

type geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Cache stores successful lookups as "lat,lon" strings. Misses and failures
// are never cached; a Redis outage degrades to direct lookups.
type Cache struct {
	next   geocoder
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logx.Logger
}

// New wraps next with a cache. ttl <= 0 keeps entries forever.
func New(next geocoder, rdb redis.Cmdable, ttl time.Duration, logger logx.Logger) *Cache {
	return &Cache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// Geocode returns the cached point for address or asks the wrapped geocoder.
func (c *Cache) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	key := Key(address)

	raw, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if p, perr := decode(raw); perr == nil {
			return p, nil
		}
		c.logger.Warn("geocache: corrupt entry", logx.String("key", key), logx.String("value", raw))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("geocache: get failed", logx.String("key", key), logx.Err(err))
	}

	p, err := c.next.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if err := c.rdb.Set(ctx, key, encode(p), c.ttl).Err(); err != nil {
		c.logger.Warn("geocache: set failed", logx.String("key", key), logx.Err(err))
	}
	return p, nil
}

// Key normalizes an address into its cache key.
func Key(address string) string {
	return keyPrefix + strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

func encode(p domain.Coordinates) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}

func decode(s string) (domain.Coordinates, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocache: malformed value %q", s)
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, err
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return domain.Coordinates{Lat: la, Lon: lo}, nil
}
