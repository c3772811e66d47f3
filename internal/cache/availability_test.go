package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
)

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client, err := NewRedis(context.Background(), Options{Addr: server.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewAvailabilityCache(client, time.Minute, zap.NewNop()), server
}

func sessionsAt(start time.Time) []*model.Session {
	return []*model.Session{{
		ID:             1,
		ProfessionalID: 3,
		Start:          start,
		End:            start.Add(model.SlotDuration),
	}}
}

func currentVersion(t *testing.T, c *AvailabilityCache) int64 {
	t.Helper()

	version, ok := c.Version(context.Background())
	require.True(t, ok)
	return version
}

func TestAvailabilityCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	start := time.Date(2020, 7, 12, 8, 0, 0, 0, time.UTC)
	version := currentVersion(t, c)

	_, ok := c.Get(ctx, version, model.AvailabilityFilter{})
	assert.False(t, ok)

	c.Set(ctx, version, model.AvailabilityFilter{}, sessionsAt(start))

	got, ok := c.Get(ctx, version, model.AvailabilityFilter{})
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.True(t, start.Equal(got[0].Start))
	assert.Equal(t, int64(3), got[0].ProfessionalID)
}

func TestAvailabilityCacheSeparatesFilters(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	id := int64(3)
	version := currentVersion(t, c)

	c.Set(ctx, version, model.AvailabilityFilter{ProfessionalID: &id}, sessionsAt(time.Now()))

	_, ok := c.Get(ctx, version, model.AvailabilityFilter{})
	assert.False(t, ok)
	_, ok = c.Get(ctx, version, model.AvailabilityFilter{ProfessionalID: &id})
	assert.True(t, ok)
}

func TestAvailabilityCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	before := currentVersion(t, c)

	c.Set(ctx, before, model.AvailabilityFilter{}, sessionsAt(time.Now()))
	c.Invalidate(ctx)

	after := currentVersion(t, c)
	assert.Equal(t, before+1, after)
	_, ok := c.Get(ctx, after, model.AvailabilityFilter{})
	assert.False(t, ok)
}

func TestAvailabilityCacheLateWriteDoesNotReachNewVersion(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// Чтение началось до записи в слоты, результат сохраняется после Invalidate
	readVersion := currentVersion(t, c)
	c.Invalidate(ctx)
	c.Set(ctx, readVersion, model.AvailabilityFilter{}, sessionsAt(time.Now()))

	_, ok := c.Get(ctx, currentVersion(t, c), model.AvailabilityFilter{})
	assert.False(t, ok)
}

func TestAvailabilityCacheExpires(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()
	version := currentVersion(t, c)

	c.Set(ctx, version, model.AvailabilityFilter{}, sessionsAt(time.Now()))
	server.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, version, model.AvailabilityFilter{})
	assert.False(t, ok)
}

func TestAvailabilityCacheTreatsOutageAsMiss(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()
	version := currentVersion(t, c)

	c.Set(ctx, version, model.AvailabilityFilter{}, sessionsAt(time.Now()))
	server.Close()

	_, ok := c.Version(ctx)
	assert.False(t, ok)
	_, ok = c.Get(ctx, version, model.AvailabilityFilter{})
	assert.False(t, ok)
	c.Invalidate(ctx)
}

func TestFilterKey(t *testing.T) {
	id := int64(42)
	from := time.Unix(1000, 0)
	to := time.Unix(2000, 0)

	assert.Equal(t, "availability:v0:all:any", FilterKey(0, model.AvailabilityFilter{}))
	assert.Equal(t, "availability:v7:42:1000-2000", FilterKey(7, model.AvailabilityFilter{
		ProfessionalID: &id,
		Range:          model.TimeRange{From: from, To: to},
	}))
}
