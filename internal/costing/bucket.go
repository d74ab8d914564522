package costing

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// Granularity is the calendar unit samples are grouped by.
type Granularity string

const (
	Daily     Granularity = "daily"
	Weekly    Granularity = "weekly"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Yearly    Granularity = "yearly"
)

// ParseGranularity accepts the granularity names and their singular aliases
// ("day", "week", ...). An empty string means Monthly.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "", "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year", "annual":
		return Yearly, nil
	}
	return "", &ComputationError{Op: "parse_granularity", Field: "granularity", Value: s, Err: ErrInvalidGranularity}
}

// Bucketer assigns dated samples to calendar periods.
type Bucketer struct {
	weekStart time.Weekday
}

// NewBucketer returns a Bucketer whose weeks begin on weekStart.
func NewBucketer(weekStart time.Weekday) *Bucketer {
	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = time.Sunday
	}
	return &Bucketer{weekStart: weekStart}
}

// PeriodKey returns the period t falls in. Keys sort lexicographically in
// chronological order: "2024-03-05" (daily, and weekly bucket start), "2024-03",
// "2024-Q1", "2024". The sample's own location is used; no conversion happens.
func (b *Bucketer) PeriodKey(t time.Time, g Granularity) (string, error) {
	switch g {
	case Daily:
		return t.Format("2006-01-02"), nil
	case Weekly:
		return b.weekStartOf(t).Format("2006-01-02"), nil
	case Monthly:
		return t.Format("2006-01"), nil
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1), nil
	case Yearly:
		return fmt.Sprintf("%04d", t.Year()), nil
	}
	return "", &ComputationError{Op: "period_key", Field: "granularity", Value: string(g), Err: ErrInvalidGranularity}
}

func (b *Bucketer) weekStartOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) - int(b.weekStart) + 7) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

type bucketSum struct {
	hardware, fsr, consumables, total float64
	count                             int
}

// Group buckets samples by period and averages each category within a bucket.
// Buckets exist only for periods that have samples and are returned in key order.
func (b *Bucketer) Group(samples []model.CostData, g Granularity) ([]model.PeriodBucket, error) {
	sums := make(map[string]*bucketSum)
	for _, s := range samples {
		key, err := b.PeriodKey(s.Date, g)
		if err != nil {
			return nil, err
		}
		sum, ok := sums[key]
		if !ok {
			sum = &bucketSum{}
			sums[key] = sum
		}
		sum.hardware += s.Hardware
		sum.fsr += s.FSR
		sum.consumables += s.Consumables
		sum.total += s.MonthlyTotal
		sum.count++
	}

	keys := slices.Sorted(maps.Keys(sums))
	buckets := make([]model.PeriodBucket, 0, len(keys))
	for _, key := range keys {
		sum := sums[key]
		n := float64(sum.count)
		buckets = append(buckets, model.PeriodBucket{
			Period:       key,
			Hardware:     sum.hardware / n,
			FSR:          sum.fsr / n,
			Consumables:  sum.consumables / n,
			MonthlyTotal: sum.total / n,
			SampleCount:  sum.count,
		})
	}
	return buckets, nil
}
