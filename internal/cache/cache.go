// Package cache stores computed analytics results between writes.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// AnalyticsCache holds AnalyticsData keyed by query. Failures are logged and
// reported as misses; a broken cache never fails a request.
//
// Keys embed the write generation read before the result was computed.
// Invalidate advances the generation, so a result computed from a snapshot
// older than the latest write is stored under a key no reader asks for.
type AnalyticsCache interface {
	// Generation returns the current write generation. ok is false when the
	// cache cannot be used for this request.
	Generation(ctx context.Context) (gen int64, ok bool)
	Get(ctx context.Context, key string) (*model.AnalyticsData, bool)
	Set(ctx context.Context, key string, data *model.AnalyticsData)
	Invalidate(ctx context.Context)
}

// Key returns the cache key of a normalized analytics query at generation gen.
// Bounds keep their full instant in UTC.
func Key(gen int64, q model.AnalyticsQuery) string {
	return fmt.Sprintf("%d|%s|%s|%s", gen, instant(q.From), instant(q.To), q.Granularity)
}

func instant(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// Nop is an AnalyticsCache that never hits.
type Nop struct{}

func (Nop) Generation(context.Context) (int64, bool)                { return 0, false }
func (Nop) Get(context.Context, string) (*model.AnalyticsData, bool) { return nil, false }
func (Nop) Set(context.Context, string, *model.AnalyticsData)        {}
func (Nop) Invalidate(context.Context)                               {}
