package service

import (
	"context"

	"github.com/jaw1999/planning-tool-sub002/internal/costing"
	"github.com/jaw1999/planning-tool-sub002/internal/metrics"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
)

// CostService は演習コストと見積もりを計算する
type CostService interface {
	ExerciseCosts(ctx context.Context, exerciseID string) (*model.ExerciseCostSummary, error)
	Estimate(ctx context.Context, input model.EstimateInput) (*model.SystemCost, error)
}

// CostServiceImpl は CostService の実装
type CostServiceImpl struct {
	exercises repository.ExerciseRepository
	systems   repository.SystemRepository
	settings  SettingsService
	metrics   *metrics.Collectors
}

// NewCostService は CostServiceImpl を生成する。m は nil でもよい
func NewCostService(exercises repository.ExerciseRepository, systems repository.SystemRepository, settings SettingsService, m *metrics.Collectors) CostService {
	return &CostServiceImpl{exercises: exercises, systems: systems, settings: settings, metrics: m}
}

// ExerciseCosts は演習の全割り当てのコストを計算する
func (s *CostServiceImpl) ExerciseCosts(ctx context.Context, exerciseID string) (*model.ExerciseCostSummary, error) {
	ex, err := s.exercises.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	engine, err := s.settings.Engine(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := engine.ExerciseCosts(ex)
	s.metrics.CountComputation(err)
	if err != nil {
		return nil, err
	}
	return summary.Rounded(), nil
}

// Estimate は保存前の割り当てのコストを、指定された期間で計算する
func (s *CostServiceImpl) Estimate(ctx context.Context, input model.EstimateInput) (*model.SystemCost, error) {
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, invalidf("start_date and end_date are required")
	}
	tier, err := validateAssignment(input.ExerciseSystemInput)
	if err != nil {
		return nil, err
	}
	system, err := s.systems.GetByID(ctx, input.SystemID)
	if err != nil {
		return nil, err
	}
	selections, err := resolveSelections(system, input.Consumables)
	if err != nil {
		return nil, err
	}
	engine, err := s.settings.Engine(ctx)
	if err != nil {
		return nil, err
	}

	es := &model.ExerciseSystem{
		SystemID:       system.ID,
		Quantity:       input.Quantity,
		FSRSupport:     tier,
		FSRCost:        input.FSRCost,
		LaunchesPerDay: input.LaunchesPerDay,
		Consumables:    selections,
		System:         system,
	}
	window := costing.Window{Start: input.StartDate, End: input.EndDate, Source: model.WindowSourceRequest}
	cost, err := engine.Calculator.SystemCost(es, window)
	s.metrics.CountComputation(err)
	if err != nil {
		return nil, err
	}
	return cost.Rounded(), nil
}
