package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisAnalyticsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisAnalyticsCache(client, ttl), mr
}

func sampleData() *model.AnalyticsData {
	return &model.AnalyticsData{
		TotalSpending:   30500,
		ActiveExercises: 1,
		MonthlyCosts: []model.MonthlyCost{
			{Month: "2024-01", Hardware: 10000, FSR: 0, Consumables: 500, Total: 10500},
		},
	}
}

func TestRedisAnalyticsCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	gen, ok := c.Generation(ctx)
	if !ok || gen != 0 {
		t.Fatalf("Generation = %d, %v; want 0, true", gen, ok)
	}
	key := Key(gen, model.AnalyticsQuery{
		From:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Granularity: "monthly",
	})
	if key != "0|2024-01-01T00:00:00Z|2024-12-31T00:00:00Z|monthly" {
		t.Errorf("Key = %q", key)
	}

	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, key, sampleData())

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got.TotalSpending != 30500 {
		t.Errorf("TotalSpending = %v, want 30500", got.TotalSpending)
	}
	if len(got.MonthlyCosts) != 1 || got.MonthlyCosts[0].Month != "2024-01" {
		t.Errorf("MonthlyCosts = %+v", got.MonthlyCosts)
	}
}

func TestRedisAnalyticsCache_TTL(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "k", sampleData())
	mr.FastForward(2 * time.Minute)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestRedisAnalyticsCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t, 0)
	ctx := context.Background()

	c.Set(ctx, "a", sampleData())
	c.Set(ctx, "b", sampleData())

	c.Invalidate(ctx)

	for _, k := range []string{"a", "b"} {
		if _, ok := c.Get(ctx, k); ok {
			t.Errorf("key %q survived Invalidate", k)
		}
	}
	if mr.Exists(keysSet) {
		t.Error("key set survived Invalidate")
	}
}

func TestRedisAnalyticsCache_InvalidateAdvancesGeneration(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()
	q := model.AnalyticsQuery{Granularity: "monthly"}

	before, _ := c.Generation(ctx)
	c.Invalidate(ctx)
	after, ok := c.Generation(ctx)
	if !ok || after != before+1 {
		t.Fatalf("Generation after Invalidate = %d, %v; want %d", after, ok, before+1)
	}

	// A result computed before the write lands under the old generation.
	c.Set(ctx, Key(before, q), sampleData())
	if _, ok := c.Get(ctx, Key(after, q)); ok {
		t.Error("result from an older generation was served")
	}

	c.Set(ctx, Key(after, q), sampleData())
	if _, ok := c.Get(ctx, Key(after, q)); !ok {
		t.Error("expected hit for current generation")
	}
}

func TestKey_KeepsTimeOfDay(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := Key(0, model.AnalyticsQuery{From: day, Granularity: "monthly"})
	b := Key(0, model.AnalyticsQuery{From: day.Add(15 * time.Hour), Granularity: "monthly"})
	if a == b {
		t.Errorf("same day at different times share key %q", a)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	local := Key(0, model.AnalyticsQuery{From: day.In(tokyo), Granularity: "monthly"})
	if local != a {
		t.Errorf("Key(%v) = %q, want %q", day.In(tokyo), local, a)
	}

	if got := Key(2, model.AnalyticsQuery{Granularity: "daily"}); got != "2|-|-|daily" {
		t.Errorf("unbounded Key = %q", got)
	}
}

func TestRedisAnalyticsCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t, 0)
	if err := mr.Set(keyPrefix+"bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(context.Background(), "bad"); ok {
		t.Error("expected corrupt entry to be a miss")
	}
}

func TestRedisAnalyticsCache_ServerDownIsMiss(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	c := NewRedisAnalyticsCache(client, 0)
	mr.Close()

	ctx := context.Background()
	if _, ok := c.Generation(ctx); ok {
		t.Error("expected Generation to report unusable cache when redis is down")
	}
	c.Set(ctx, "k", sampleData())
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss when redis is down")
	}
	c.Invalidate(ctx)
}

func TestNop(t *testing.T) {
	var c AnalyticsCache = Nop{}
	ctx := context.Background()
	if _, ok := c.Generation(ctx); ok {
		t.Error("Nop must report no usable generation")
	}
	c.Set(ctx, "k", sampleData())
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Nop must never hit")
	}
	c.Invalidate(ctx)
}
