package costing

import (
	"math"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// TrendConfig controls trend classification.
type TrendConfig struct {
	// Threshold is the relative change (0.05 = 5%) at or below which a series is stable.
	Threshold float64
	// Window is the number of trailing periods averaged on each side of the comparison.
	Window int
}

// DefaultTrendConfig compares the last period with the one before at a 5% threshold.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{Threshold: 0.05, Window: 1}
}

// ClassifyTrend compares the mean of the last Window values of series with the mean of
// the Window values before them. Series shorter than two values are stable.
func ClassifyTrend(series []float64, cfg TrendConfig) model.Trend {
	if len(series) < 2 {
		return model.TrendStable
	}
	w := cfg.Window
	if w < 1 {
		w = 1
	}
	if 2*w > len(series) {
		w = len(series) / 2
	}
	n := len(series)
	recent := mean(series[n-w:])
	prior := mean(series[n-2*w : n-w])

	delta := recent - prior
	if prior == 0 {
		switch {
		case delta > 0:
			return model.TrendIncreasing
		case delta < 0:
			return model.TrendDecreasing
		}
		return model.TrendStable
	}
	change := delta / math.Abs(prior)
	switch {
	case change > cfg.Threshold:
		return model.TrendIncreasing
	case change < -cfg.Threshold:
		return model.TrendDecreasing
	}
	return model.TrendStable
}

// PercentChange returns the relative change from prev to cur in percent,
// or 0 when there is no prior value to compare against.
func PercentChange(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / math.Abs(prev) * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
