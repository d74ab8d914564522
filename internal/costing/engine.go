package costing

import (
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// Engine bundles a Calculator and an Aggregator configured from one settings snapshot.
type Engine struct {
	Calculator *Calculator
	Aggregator *Aggregator
}

// NewEngine configures the engine from settings. A nil settings uses model.DefaultSettings.
func NewEngine(s *model.Settings) *Engine {
	if s == nil {
		s = model.DefaultSettings()
	}
	classifier := NewClassifier(s.LaunchKeywords...)
	trend := TrendConfig{Threshold: s.TrendThreshold, Window: s.TrendWindow}
	return &Engine{
		Calculator: NewCalculator(classifier),
		Aggregator: NewAggregator(NewBucketer(time.Weekday(s.WeekStart)), trend),
	}
}

// ExerciseCosts prices every assignment of ex over its amortization window.
func (e *Engine) ExerciseCosts(ex *model.Exercise) (*model.ExerciseCostSummary, error) {
	summary := &model.ExerciseCostSummary{
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Systems:      make([]*model.SystemCost, 0, len(ex.Systems)),
	}
	for _, es := range ex.Systems {
		cost, err := e.Calculator.SystemCost(es, WindowFor(ex, es))
		if err != nil {
			return nil, err
		}
		summary.Systems = append(summary.Systems, cost)
		summary.TotalHardwareCost += cost.BaseHardwareCost
		summary.TotalMonthlyRecurring += cost.TotalMonthlyRecurring
		summary.TotalCost += cost.TotalForDuration
	}
	return summary, nil
}
