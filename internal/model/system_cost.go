package model

import "time"

// WindowSource tells where an amortization window came from.
type WindowSource string

const (
	WindowSourceExercise WindowSource = "exercise"
	WindowSourceRequest  WindowSource = "request"
	// WindowSourceRecord means the exercise had no dates and the assignment's
	// created/updated timestamps were used instead.
	WindowSourceRecord WindowSource = "record"
)

// ConsumableCost is one itemized consumable line of a SystemCost.
type ConsumableCost struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"` // effective monthly quantity
	UnitCost    float64 `json:"unit_cost"`
	MonthlyCost float64 `json:"monthly_cost"`
	IsPerLaunch bool    `json:"is_per_launch"`
}

// SystemCost is the derived cost breakdown of one exercise-system assignment.
//
// TotalForDuration == BaseHardwareCost + TotalMonthlyRecurring*DurationMonths,
// TotalMonthlyRecurring == FSRCost + ConsumablesCost and
// ConsumablesCost == sum(Breakdown[i].MonthlyCost).
type SystemCost struct {
	ExerciseSystemID      string           `json:"exercise_system_id,omitempty"`
	SystemID              string           `json:"system_id,omitempty"`
	SystemName            string           `json:"system_name"`
	Quantity              int              `json:"quantity"`
	BaseHardwareCost      float64          `json:"base_hardware_cost"`
	FSRCost               float64          `json:"fsr_cost"`
	ConsumablesCost       float64          `json:"consumables_cost"`
	TotalMonthlyRecurring float64          `json:"total_monthly_recurring"`
	TotalForDuration      float64          `json:"total_for_duration"`
	DurationMonths        int              `json:"duration_months"`
	LaunchesPerDay        *float64         `json:"launches_per_day,omitempty"`
	Breakdown             []ConsumableCost `json:"breakdown"`
	WindowStart           time.Time        `json:"window_start"`
	WindowEnd             time.Time        `json:"window_end"`
	WindowSource          WindowSource     `json:"window_source"`
}

// Rounded returns a copy with monetary fields rounded for presentation.
func (c *SystemCost) Rounded() *SystemCost {
	out := *c
	out.BaseHardwareCost = RoundCurrency(c.BaseHardwareCost)
	out.FSRCost = RoundCurrency(c.FSRCost)
	out.ConsumablesCost = RoundCurrency(c.ConsumablesCost)
	out.TotalMonthlyRecurring = RoundCurrency(c.TotalMonthlyRecurring)
	out.TotalForDuration = RoundCurrency(c.TotalForDuration)
	out.Breakdown = make([]ConsumableCost, len(c.Breakdown))
	for i, line := range c.Breakdown {
		line.UnitCost = RoundCurrency(line.UnitCost)
		line.MonthlyCost = RoundCurrency(line.MonthlyCost)
		out.Breakdown[i] = line
	}
	return &out
}

// ExerciseCostSummary collects the system costs of one exercise.
type ExerciseCostSummary struct {
	ExerciseID            string        `json:"exercise_id"`
	ExerciseName          string        `json:"exercise_name"`
	Systems               []*SystemCost `json:"systems"`
	TotalHardwareCost     float64       `json:"total_hardware_cost"`
	TotalMonthlyRecurring float64       `json:"total_monthly_recurring"`
	TotalCost             float64       `json:"total_cost"`
}

// Rounded returns a copy with monetary fields rounded for presentation.
func (s *ExerciseCostSummary) Rounded() *ExerciseCostSummary {
	out := *s
	out.Systems = make([]*SystemCost, len(s.Systems))
	for i, c := range s.Systems {
		out.Systems[i] = c.Rounded()
	}
	out.TotalHardwareCost = RoundCurrency(s.TotalHardwareCost)
	out.TotalMonthlyRecurring = RoundCurrency(s.TotalMonthlyRecurring)
	out.TotalCost = RoundCurrency(s.TotalCost)
	return &out
}

// EstimateInput is an unsaved assignment priced by the calculator page.
type EstimateInput struct {
	ExerciseSystemInput
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
