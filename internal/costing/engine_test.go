package costing

import (
	"errors"
	"testing"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

func TestEngine_ExerciseCosts(t *testing.T) {
	engine := NewEngine(nil)
	ex := &model.Exercise{
		ID:        "e1",
		Name:      "Northern Watch",
		StartDate: ptr(date(2024, 1, 1)),
		EndDate:   ptr(date(2024, 4, 1)),
		Systems:   []*model.ExerciseSystem{balloonGasAssignment()},
	}

	got, err := engine.ExerciseCosts(ex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ExerciseName != "Northern Watch" || len(got.Systems) != 1 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if got.TotalCost != 30500 || got.TotalHardwareCost != 20000 || got.TotalMonthlyRecurring != 3500 {
		t.Errorf("unexpected totals: %+v", got)
	}
}

func TestEngine_UsesSettings(t *testing.T) {
	settings := model.DefaultSettings()
	settings.LaunchKeywords = []string{"hydrogen"}
	engine := NewEngine(settings)

	ex := &model.Exercise{
		StartDate: ptr(date(2024, 1, 1)),
		EndDate:   ptr(date(2024, 4, 1)),
		Systems:   []*model.ExerciseSystem{balloonGasAssignment()},
	}
	got, err := engine.ExerciseCosts(ex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// balloon gas is no longer launch-scaled: 5 * 10 per month
	if got.Systems[0].ConsumablesCost != 50 {
		t.Errorf("expected flat consumables 50, got %v", got.Systems[0].ConsumablesCost)
	}
}

func TestEngine_ExerciseCosts_PropagatesError(t *testing.T) {
	es := balloonGasAssignment()
	es.FSRSupport = "BOGUS"
	_, err := NewEngine(nil).ExerciseCosts(&model.Exercise{Systems: []*model.ExerciseSystem{es}})
	if !errors.Is(err, ErrInvalidFSRTier) {
		t.Errorf("expected ErrInvalidFSRTier, got %v", err)
	}
}
