package costing

import (
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// DaysPerMonth is the fixed month length used to scale launch-dependent usage.
const DaysPerMonth = 30

// Window is the amortization period of an assignment.
type Window struct {
	Start  time.Time
	End    time.Time
	Source model.WindowSource
}

// WindowFor returns the exercise's planned dates when both are set. Otherwise it falls
// back to the assignment's created/updated timestamps, which older records relied on.
func WindowFor(ex *model.Exercise, es *model.ExerciseSystem) Window {
	if ex != nil && ex.StartDate != nil && ex.EndDate != nil {
		return Window{Start: *ex.StartDate, End: *ex.EndDate, Source: model.WindowSourceExercise}
	}
	if es == nil {
		return Window{Source: model.WindowSourceRecord}
	}
	return Window{Start: es.CreatedAt, End: es.UpdatedAt, Source: model.WindowSourceRecord}
}

// Calculator prices exercise-system assignments.
type Calculator struct {
	classifier *Classifier
}

// NewCalculator returns a Calculator. A nil classifier uses DefaultClassifier.
func NewCalculator(classifier *Classifier) *Calculator {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Calculator{classifier: classifier}
}

// SystemCost computes the cost breakdown of one assignment over window.
// Missing prices, costs and launch rates count as 0. An unknown or empty FSR
// tier fails.
func (c *Calculator) SystemCost(es *model.ExerciseSystem, window Window) (*model.SystemCost, error) {
	if es == nil {
		return nil, &ComputationError{Op: "system_cost", Err: ErrMissingAssignment}
	}
	if es.System == nil {
		return nil, &ComputationError{Op: "system_cost", ID: es.ID, Err: ErrMissingSystem}
	}
	tier, err := model.ParseFSRTier(string(es.FSRSupport))
	if err != nil {
		return nil, &ComputationError{
			Op:    "system_cost",
			ID:    es.ID,
			Field: "fsr_support",
			Value: string(es.FSRSupport),
			Err:   ErrInvalidFSRTier,
		}
	}

	duration := DurationInMonths(window.Start, window.End)
	baseHardware := model.Float(es.System.BasePrice) * float64(es.Quantity)

	var fsr float64
	if tier != model.FSRNone {
		fsr = model.Float(es.FSRCost)
	}

	launches := model.Float(es.LaunchesPerDay)
	breakdown := make([]model.ConsumableCost, 0, len(es.Consumables))
	var consumables float64
	for _, sel := range es.Consumables {
		if sel == nil {
			continue
		}
		line := c.consumableLine(sel, launches)
		consumables += line.MonthlyCost
		breakdown = append(breakdown, line)
	}

	recurring := fsr + consumables
	return &model.SystemCost{
		ExerciseSystemID:      es.ID,
		SystemID:              es.System.ID,
		SystemName:            es.System.Name,
		Quantity:              es.Quantity,
		BaseHardwareCost:      baseHardware,
		FSRCost:               fsr,
		ConsumablesCost:       consumables,
		TotalMonthlyRecurring: recurring,
		TotalForDuration:      baseHardware + recurring*float64(duration),
		DurationMonths:        duration,
		LaunchesPerDay:        es.LaunchesPerDay,
		Breakdown:             breakdown,
		WindowStart:           window.Start,
		WindowEnd:             window.End,
		WindowSource:          window.Source,
	}, nil
}

func (c *Calculator) consumableLine(sel *model.ExerciseSystemConsumable, launchesPerDay float64) model.ConsumableCost {
	preset := sel.Preset
	if preset == nil {
		return model.ConsumableCost{Name: sel.PresetID}
	}

	quantity := preset.Quantity
	if sel.Quantity != nil {
		quantity = *sel.Quantity
	}
	name := preset.Name
	var unitCost float64
	if preset.Consumable != nil {
		name = preset.Consumable.Name
		unitCost = model.Float(preset.Consumable.CurrentUnitCost)
	}

	perLaunch := c.classifier.IsLaunchScaled(name)
	if perLaunch {
		quantity = quantity * launchesPerDay * DaysPerMonth
	}
	return model.ConsumableCost{
		Name:        name,
		Quantity:    quantity,
		UnitCost:    unitCost,
		MonthlyCost: quantity * unitCost,
		IsPerLaunch: perLaunch,
	}
}
