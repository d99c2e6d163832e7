package geocache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/gateway/geocache"
	"hos-trip-planner/internal/logx"
	testlog "hos-trip-planner/internal/testutil"
)

type countingGeocoder struct {
	calls int
	point domain.Coordinates
	err   error
}

func (g *countingGeocoder) Geocode(context.Context, string) (domain.Coordinates, error) {
	g.calls++
	return g.point, g.err
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCache_ReadThrough(t *testing.T) {
	t.Parallel()

	mr, rdb := newRedis(t)
	next := &countingGeocoder{point: domain.Coordinates{Lat: 41.8781, Lon: -87.6298}}
	c := geocache.New(next, rdb, time.Hour, logx.Nop())

	first, err := c.Geocode(context.Background(), "Chicago,  IL")
	require.NoError(t, err)
	second, err := c.Geocode(context.Background(), " chicago, il")
	require.NoError(t, err)

	require.Equal(t, next.point, first)
	require.Equal(t, first, second)
	require.Equal(t, 1, next.calls)

	v, err := mr.Get("geocode:chicago, il")
	require.NoError(t, err)
	require.Equal(t, "41.8781,-87.6298", v)
	require.Equal(t, time.Hour, mr.TTL("geocode:chicago, il"))
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	mr, rdb := newRedis(t)
	next := &countingGeocoder{err: errors.New("no match")}
	c := geocache.New(next, rdb, time.Hour, logx.Nop())

	_, err := c.Geocode(context.Background(), "Atlantis")
	require.Error(t, err)
	require.False(t, mr.Exists(geocache.Key("Atlantis")))
}

func TestCache_CorruptEntryFallsThrough(t *testing.T) {
	t.Parallel()

	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set(geocache.Key("Reno"), "garbage"))
	next := &countingGeocoder{point: domain.Coordinates{Lat: 39.53, Lon: -119.81}}
	rec := testlog.New()
	c := geocache.New(next, rdb, 0, rec.Logger())

	got, err := c.Geocode(context.Background(), "Reno")
	require.NoError(t, err)
	require.Equal(t, next.point, got)
	require.Equal(t, 1, next.calls)
	require.Equal(t, "geocache: corrupt entry", rec.Entries()[0].Msg)
}

func TestCache_RedisDownBypassesCache(t *testing.T) {
	t.Parallel()

	mr, rdb := newRedis(t)
	mr.Close()
	next := &countingGeocoder{point: domain.Coordinates{Lat: 1, Lon: 2}}
	rec := testlog.New()
	c := geocache.New(next, rdb, time.Minute, rec.Logger())

	got, err := c.Geocode(context.Background(), "anywhere")
	require.NoError(t, err)
	require.Equal(t, next.point, got)
	require.Len(t, rec.Entries(), 2)
}
