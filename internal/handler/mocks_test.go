package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/jaw1999/planning-tool-sub002/internal/costing"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
)

// serve routes req through a mux registered with pattern so PathValue works.
func serve(pattern string, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

type mockSystemService struct {
	listFunc        func(ctx context.Context) ([]*model.System, error)
	getFunc         func(ctx context.Context, id string) (*model.System, error)
	createFunc      func(ctx context.Context, input model.SystemInput) (*model.System, error)
	deleteFunc      func(ctx context.Context, id string) error
	listPresetsFunc func(ctx context.Context, systemID string) ([]*model.ConsumablePreset, error)
	addPresetFunc   func(ctx context.Context, systemID string, input model.ConsumablePresetInput) (*model.ConsumablePreset, error)
}

func (m *mockSystemService) List(ctx context.Context) ([]*model.System, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}
func (m *mockSystemService) Get(ctx context.Context, id string) (*model.System, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockSystemService) Create(ctx context.Context, input model.SystemInput) (*model.System, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &model.System{}, nil
}
func (m *mockSystemService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
func (m *mockSystemService) ListPresets(ctx context.Context, systemID string) ([]*model.ConsumablePreset, error) {
	if m.listPresetsFunc != nil {
		return m.listPresetsFunc(ctx, systemID)
	}
	return nil, nil
}
func (m *mockSystemService) AddPreset(ctx context.Context, systemID string, input model.ConsumablePresetInput) (*model.ConsumablePreset, error) {
	if m.addPresetFunc != nil {
		return m.addPresetFunc(ctx, systemID, input)
	}
	return &model.ConsumablePreset{}, nil
}

type mockConsumableService struct {
	listFunc   func(ctx context.Context) ([]*model.Consumable, error)
	getFunc    func(ctx context.Context, id string) (*model.Consumable, error)
	createFunc func(ctx context.Context, input model.ConsumableInput) (*model.Consumable, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockConsumableService) List(ctx context.Context) ([]*model.Consumable, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}
func (m *mockConsumableService) Get(ctx context.Context, id string) (*model.Consumable, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockConsumableService) Create(ctx context.Context, input model.ConsumableInput) (*model.Consumable, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &model.Consumable{}, nil
}
func (m *mockConsumableService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockExerciseService struct {
	listFunc         func(ctx context.Context, status model.ExerciseStatus) ([]*model.Exercise, error)
	getFunc          func(ctx context.Context, id string) (*model.Exercise, error)
	createFunc       func(ctx context.Context, input model.ExerciseInput) (*model.Exercise, error)
	updateStatusFunc func(ctx context.Context, id string, status model.ExerciseStatus) error
	deleteFunc       func(ctx context.Context, id string) error
	addSystemFunc    func(ctx context.Context, exerciseID string, input model.ExerciseSystemInput) (*model.ExerciseSystem, error)
	removeSystemFunc func(ctx context.Context, exerciseID, exerciseSystemID string) error
}

func (m *mockExerciseService) List(ctx context.Context, status model.ExerciseStatus) ([]*model.Exercise, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, status)
	}
	return nil, nil
}
func (m *mockExerciseService) Get(ctx context.Context, id string) (*model.Exercise, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockExerciseService) Create(ctx context.Context, input model.ExerciseInput) (*model.Exercise, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &model.Exercise{}, nil
}
func (m *mockExerciseService) UpdateStatus(ctx context.Context, id string, status model.ExerciseStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}
func (m *mockExerciseService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
func (m *mockExerciseService) AddSystem(ctx context.Context, exerciseID string, input model.ExerciseSystemInput) (*model.ExerciseSystem, error) {
	if m.addSystemFunc != nil {
		return m.addSystemFunc(ctx, exerciseID, input)
	}
	return &model.ExerciseSystem{}, nil
}
func (m *mockExerciseService) RemoveSystem(ctx context.Context, exerciseID, exerciseSystemID string) error {
	if m.removeSystemFunc != nil {
		return m.removeSystemFunc(ctx, exerciseID, exerciseSystemID)
	}
	return nil
}

type mockCostService struct {
	exerciseCostsFunc func(ctx context.Context, exerciseID string) (*model.ExerciseCostSummary, error)
	estimateFunc      func(ctx context.Context, input model.EstimateInput) (*model.SystemCost, error)
}

func (m *mockCostService) ExerciseCosts(ctx context.Context, exerciseID string) (*model.ExerciseCostSummary, error) {
	if m.exerciseCostsFunc != nil {
		return m.exerciseCostsFunc(ctx, exerciseID)
	}
	return &model.ExerciseCostSummary{}, nil
}
func (m *mockCostService) Estimate(ctx context.Context, input model.EstimateInput) (*model.SystemCost, error) {
	if m.estimateFunc != nil {
		return m.estimateFunc(ctx, input)
	}
	return &model.SystemCost{}, nil
}

type mockAnalyticsService struct {
	analyticsFunc func(ctx context.Context, q model.AnalyticsQuery) (*model.AnalyticsData, error)
}

func (m *mockAnalyticsService) Analytics(ctx context.Context, q model.AnalyticsQuery) (*model.AnalyticsData, error) {
	if m.analyticsFunc != nil {
		return m.analyticsFunc(ctx, q)
	}
	return &model.AnalyticsData{}, nil
}

type mockSettingsService struct {
	getFunc    func(ctx context.Context) (*model.Settings, error)
	updateFunc func(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error)
}

func (m *mockSettingsService) Get(ctx context.Context) (*model.Settings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return model.DefaultSettings(), nil
}
func (m *mockSettingsService) Update(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, patch)
	}
	return model.DefaultSettings(), nil
}
func (m *mockSettingsService) Engine(ctx context.Context) (*costing.Engine, error) {
	return costing.NewEngine(nil), nil
}
