package model

import "time"

// CostData is one dated cost sample fed to the period bucketer.
type CostData struct {
	Date         time.Time `json:"date"`
	Hardware     float64   `json:"hardware"`
	FSR          float64   `json:"fsr"`
	Consumables  float64   `json:"consumables"`
	MonthlyTotal float64   `json:"monthly_total"`
}

// PeriodBucket holds per-category averages of the samples that fall in one period.
type PeriodBucket struct {
	Period       string  `json:"period"`
	Hardware     float64 `json:"hardware"`
	FSR          float64 `json:"fsr"`
	Consumables  float64 `json:"consumables"`
	MonthlyTotal float64 `json:"monthly_total"`
	SampleCount  int     `json:"sample_count"`
}

// MonthlyCost is the summed cost of one calendar month ("yyyy-MM").
type MonthlyCost struct {
	Month       string  `json:"month"`
	Hardware    float64 `json:"hardware"`
	FSR         float64 `json:"fsr"`
	Consumables float64 `json:"consumables"`
	Total       float64 `json:"total"`
}

// SystemUsage summarizes how one system is used across exercises.
type SystemUsage struct {
	SystemName    string  `json:"system_name"`
	ExerciseCount int     `json:"exercise_count"`
	Quantity      int     `json:"quantity"`
	TotalCost     float64 `json:"total_cost"`
	Percentage    float64 `json:"percentage"`
}

// Trend classifies the direction of a series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// CostCategory names a cost component.
type CostCategory string

const (
	CategoryHardware    CostCategory = "hardware"
	CategoryFSR         CostCategory = "fsr"
	CategoryConsumables CostCategory = "consumables"
)

// Categories lists the cost categories in presentation order.
func Categories() []CostCategory {
	return []CostCategory{CategoryHardware, CategoryFSR, CategoryConsumables}
}

// NamedValue is one entry of a nested breakdown.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryBreakdown is the spend of one cost category over the requested range.
type CategoryBreakdown struct {
	Category          CostCategory `json:"category"`
	Value             float64      `json:"value"`
	PercentageOfTotal float64      `json:"percentage_of_total"`
	MonthlyAverage    float64      `json:"monthly_average"`
	Trend             Trend        `json:"trend"`
	Systems           []NamedValue `json:"systems"`
	Months            []NamedValue `json:"months"`
}

// AnalyticsData is the top-level analytics payload.
type AnalyticsData struct {
	From              time.Time           `json:"from"`
	To                time.Time           `json:"to"`
	Granularity       string              `json:"granularity"`
	TotalSpending     float64             `json:"total_spending"`
	ActiveExercises   int                 `json:"active_exercises"`
	PendingExercises  int                 `json:"pending_exercises"`
	SystemUtilization float64             `json:"system_utilization"`
	MonthlyAverage    float64             `json:"monthly_average"`
	MonthlyChange     float64             `json:"monthly_change"`
	YearlyChange      float64             `json:"yearly_change"`
	MonthlyCosts      []MonthlyCost       `json:"monthly_costs"`
	SystemUsage       []SystemUsage       `json:"system_usage"`
	CostBreakdown     []CategoryBreakdown `json:"cost_breakdown"`
	Series            []PeriodBucket      `json:"series"`
}

// Rounded returns a copy with monetary and percentage fields rounded for presentation.
func (a *AnalyticsData) Rounded() *AnalyticsData {
	out := *a
	out.TotalSpending = RoundCurrency(a.TotalSpending)
	out.SystemUtilization = RoundPercent(a.SystemUtilization)
	out.MonthlyAverage = RoundCurrency(a.MonthlyAverage)
	out.MonthlyChange = RoundPercent(a.MonthlyChange)
	out.YearlyChange = RoundPercent(a.YearlyChange)

	out.MonthlyCosts = make([]MonthlyCost, len(a.MonthlyCosts))
	for i, m := range a.MonthlyCosts {
		m.Hardware = RoundCurrency(m.Hardware)
		m.FSR = RoundCurrency(m.FSR)
		m.Consumables = RoundCurrency(m.Consumables)
		m.Total = RoundCurrency(m.Total)
		out.MonthlyCosts[i] = m
	}
	out.SystemUsage = make([]SystemUsage, len(a.SystemUsage))
	for i, u := range a.SystemUsage {
		u.TotalCost = RoundCurrency(u.TotalCost)
		u.Percentage = RoundPercent(u.Percentage)
		out.SystemUsage[i] = u
	}
	out.CostBreakdown = make([]CategoryBreakdown, len(a.CostBreakdown))
	for i, c := range a.CostBreakdown {
		c.Value = RoundCurrency(c.Value)
		c.PercentageOfTotal = RoundPercent(c.PercentageOfTotal)
		c.MonthlyAverage = RoundCurrency(c.MonthlyAverage)
		c.Systems = roundNamed(c.Systems)
		c.Months = roundNamed(c.Months)
		out.CostBreakdown[i] = c
	}
	out.Series = make([]PeriodBucket, len(a.Series))
	for i, b := range a.Series {
		b.Hardware = RoundCurrency(b.Hardware)
		b.FSR = RoundCurrency(b.FSR)
		b.Consumables = RoundCurrency(b.Consumables)
		b.MonthlyTotal = RoundCurrency(b.MonthlyTotal)
		out.Series[i] = b
	}
	return &out
}

func roundNamed(in []NamedValue) []NamedValue {
	out := make([]NamedValue, len(in))
	for i, v := range in {
		out[i] = NamedValue{Name: v.Name, Value: RoundCurrency(v.Value)}
	}
	return out
}

// AnalyticsQuery selects the range and granularity of an analytics request.
type AnalyticsQuery struct {
	From        time.Time
	To          time.Time
	Granularity string
}
