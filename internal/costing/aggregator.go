package costing

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// ExerciseCosts pairs an exercise with the computed costs of its assignments.
type ExerciseCosts struct {
	Exercise *model.Exercise
	Costs    []*model.SystemCost
}

// AnalyticsInput is the snapshot folded by Aggregator.Analytics.
// A zero From or To leaves that side of the range open.
type AnalyticsInput struct {
	From        time.Time
	To          time.Time
	Granularity Granularity
	Exercises   []ExerciseCosts
	CatalogSize int // number of systems in the catalog, for utilization
}

// Aggregator folds system costs into the analytics payload.
type Aggregator struct {
	bucketer *Bucketer
	trend    TrendConfig
}

// NewAggregator returns an Aggregator. A nil bucketer starts weeks on Sunday.
func NewAggregator(bucketer *Bucketer, trend TrendConfig) *Aggregator {
	if bucketer == nil {
		bucketer = NewBucketer(time.Sunday)
	}
	return &Aggregator{bucketer: bucketer, trend: trend}
}

type categoryTotals struct {
	hardware, fsr, consumables float64
}

func (c *categoryTotals) add(o categoryTotals) {
	c.hardware += o.hardware
	c.fsr += o.fsr
	c.consumables += o.consumables
}

func (c categoryTotals) sum() float64 {
	return c.hardware + c.fsr + c.consumables
}

func (c categoryTotals) get(cat model.CostCategory) float64 {
	switch cat {
	case model.CategoryHardware:
		return c.hardware
	case model.CategoryFSR:
		return c.fsr
	case model.CategoryConsumables:
		return c.consumables
	}
	return 0
}

type usageAcc struct {
	exercises map[string]bool
	quantity  int
	total     float64
	totals    categoryTotals
}

// Analytics computes totals, per-system usage, the monthly series and the
// per-category breakdown for the months of each assignment that fall in the
// range. Cancelled exercises are counted nowhere.
func (a *Aggregator) Analytics(in AnalyticsInput) (*model.AnalyticsData, error) {
	granularity := in.Granularity
	if granularity == "" {
		granularity = Monthly
	}
	out := &model.AnalyticsData{
		From:        in.From,
		To:          in.To,
		Granularity: string(granularity),
	}

	var totals categoryTotals
	usage := make(map[string]*usageAcc)
	months := make(map[string]*model.MonthlyCost)
	systemsSeen := make(map[string]bool)

	for _, ec := range in.Exercises {
		if ec.Exercise == nil {
			continue
		}
		switch ec.Exercise.Status {
		case model.ExerciseStatusActive:
			out.ActiveExercises++
		case model.ExerciseStatusPending, model.ExerciseStatusPlanning:
			out.PendingExercises++
		case model.ExerciseStatusCancelled:
			continue
		}

		for _, c := range ec.Costs {
			if c == nil || !overlaps(c.WindowStart, c.WindowEnd, in.From, in.To) {
				continue
			}

			// Totals are folded from the in-range month samples only.
			var ct categoryTotals
			matched := false
			for _, s := range monthlySamples(c) {
				if !inRange(s.Date, in.From, in.To) {
					continue
				}
				matched = true
				key := monthKey(s.Date)
				m, ok := months[key]
				if !ok {
					m = &model.MonthlyCost{Month: key}
					months[key] = m
				}
				m.Hardware += s.Hardware
				m.FSR += s.FSR
				m.Consumables += s.Consumables
				m.Total += s.MonthlyTotal
				ct.add(categoryTotals{hardware: s.Hardware, fsr: s.FSR, consumables: s.Consumables})
			}
			if !matched {
				continue
			}
			total := ct.sum()
			out.TotalSpending += total
			totals.add(ct)

			u, ok := usage[c.SystemName]
			if !ok {
				u = &usageAcc{exercises: make(map[string]bool)}
				usage[c.SystemName] = u
			}
			u.exercises[ec.Exercise.ID] = true
			u.quantity += c.Quantity
			u.total += total
			u.totals.add(ct)

			id := c.SystemID
			if id == "" {
				id = c.SystemName
			}
			systemsSeen[id] = true
		}
	}

	monthKeys := slices.Sorted(maps.Keys(months))
	out.MonthlyCosts = make([]model.MonthlyCost, 0, len(monthKeys))
	for _, k := range monthKeys {
		out.MonthlyCosts = append(out.MonthlyCosts, *months[k])
	}

	monthCount := len(monthKeys)
	if !in.From.IsZero() && !in.To.IsZero() {
		monthCount = DurationInMonths(in.From, in.To)
	}
	out.MonthlyAverage = perMonth(out.TotalSpending, monthCount)
	out.MonthlyChange, out.YearlyChange = periodChanges(months, monthKeys)

	if in.CatalogSize > 0 {
		out.SystemUtilization = float64(len(systemsSeen)) / float64(in.CatalogSize) * 100
	}

	out.SystemUsage = make([]model.SystemUsage, 0, len(usage))
	for name, u := range usage {
		out.SystemUsage = append(out.SystemUsage, model.SystemUsage{
			SystemName:    name,
			ExerciseCount: len(u.exercises),
			Quantity:      u.quantity,
			TotalCost:     u.total,
			Percentage:    percentOf(u.total, out.TotalSpending),
		})
	}
	slices.SortFunc(out.SystemUsage, func(x, y model.SystemUsage) int {
		if c := cmp.Compare(y.TotalCost, x.TotalCost); c != 0 {
			return c
		}
		return cmp.Compare(x.SystemName, y.SystemName)
	})

	out.CostBreakdown = make([]model.CategoryBreakdown, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		value := totals.get(cat)
		series := make([]float64, len(out.MonthlyCosts))
		monthValues := make([]model.NamedValue, len(out.MonthlyCosts))
		for i, m := range out.MonthlyCosts {
			v := monthlyCategory(m, cat)
			series[i] = v
			monthValues[i] = model.NamedValue{Name: m.Month, Value: v}
		}
		systemValues := make([]model.NamedValue, 0, len(usage))
		for name, u := range usage {
			systemValues = append(systemValues, model.NamedValue{Name: name, Value: u.totals.get(cat)})
		}
		sortNamedDesc(systemValues)

		out.CostBreakdown = append(out.CostBreakdown, model.CategoryBreakdown{
			Category:          cat,
			Value:             value,
			PercentageOfTotal: percentOf(value, out.TotalSpending),
			MonthlyAverage:    perMonth(value, monthCount),
			Trend:             ClassifyTrend(series, a.trend),
			Systems:           systemValues,
			Months:            monthValues,
		})
	}

	samples := make([]model.CostData, len(out.MonthlyCosts))
	for i, m := range out.MonthlyCosts {
		date, err := time.Parse("2006-01", m.Month)
		if err != nil {
			return nil, &ComputationError{Op: "analytics", Field: "month", Value: m.Month, Err: err}
		}
		samples[i] = model.CostData{
			Date:         date,
			Hardware:     m.Hardware,
			FSR:          m.FSR,
			Consumables:  m.Consumables,
			MonthlyTotal: m.Total,
		}
	}
	series, err := a.bucketer.Group(samples, granularity)
	if err != nil {
		return nil, err
	}
	out.Series = series
	return out, nil
}

// monthlySamples spreads a SystemCost over the months of its window: hardware in the
// first month, recurring costs in every month. Windows shorter than one month,
// inverted ones included, carry only the hardware cost.
func monthlySamples(c *model.SystemCost) []model.CostData {
	start := monthStart(c.WindowStart)
	if c.DurationMonths < 1 {
		return []model.CostData{{
			Date:         start,
			Hardware:     c.BaseHardwareCost,
			MonthlyTotal: c.BaseHardwareCost,
		}}
	}
	samples := make([]model.CostData, c.DurationMonths)
	for i := range samples {
		s := model.CostData{
			Date:        start.AddDate(0, i, 0),
			FSR:         c.FSRCost,
			Consumables: c.ConsumablesCost,
		}
		if i == 0 {
			s.Hardware = c.BaseHardwareCost
		}
		s.MonthlyTotal = s.Hardware + s.FSR + s.Consumables
		samples[i] = s
	}
	return samples
}

// periodChanges returns the latest month's change against the previous calendar
// month and the latest year's change against the previous calendar year.
func periodChanges(months map[string]*model.MonthlyCost, keys []string) (monthly, yearly float64) {
	if len(keys) == 0 {
		return 0, 0
	}
	last := keys[len(keys)-1]
	latest, err := time.Parse("2006-01", last)
	if err != nil {
		return 0, 0
	}
	if prev, ok := months[monthKey(latest.AddDate(0, -1, 0))]; ok {
		monthly = PercentChange(prev.Total, months[last].Total)
	}

	var cur, prior float64
	var hasPrior bool
	for _, k := range keys {
		switch k[:4] {
		case latest.Format("2006"):
			cur += months[k].Total
		case latest.AddDate(-1, 0, 0).Format("2006"):
			prior += months[k].Total
			hasPrior = true
		}
	}
	if hasPrior {
		yearly = PercentChange(prior, cur)
	}
	return monthly, yearly
}

func monthlyCategory(m model.MonthlyCost, cat model.CostCategory) float64 {
	switch cat {
	case model.CategoryHardware:
		return m.Hardware
	case model.CategoryFSR:
		return m.FSR
	case model.CategoryConsumables:
		return m.Consumables
	}
	return 0
}

// overlaps reports whether [start, end] intersects [from, to]. Inverted windows are
// normalized and zero bounds are open.
func overlaps(start, end, from, to time.Time) bool {
	if end.Before(start) {
		start, end = end, start
	}
	if !from.IsZero() && end.Before(from) {
		return false
	}
	if !to.IsZero() && start.After(to) {
		return false
	}
	return true
}

// inRange reports whether a month sample dated t belongs to [from, to]. The
// lower bound is widened to the start of from's month.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(monthStart(from)) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

func percentOf(part, total float64) float64 {
	return safeDiv(part, total) * 100
}

// perMonth averages value over months; empty or inverted ranges average to 0.
func perMonth(value float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	return value / float64(months)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func sortNamedDesc(values []model.NamedValue) {
	slices.SortFunc(values, func(x, y model.NamedValue) int {
		if c := cmp.Compare(y.Value, x.Value); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
}
