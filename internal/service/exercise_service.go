package service

import (
	"context"
	"strings"

	"github.com/jaw1999/planning-tool-sub002/internal/cache"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
)

// ExerciseService は演習とシステム割り当てのビジネスロジック
type ExerciseService interface {
	List(ctx context.Context, status model.ExerciseStatus) ([]*model.Exercise, error)
	Get(ctx context.Context, id string) (*model.Exercise, error)
	Create(ctx context.Context, input model.ExerciseInput) (*model.Exercise, error)
	UpdateStatus(ctx context.Context, id string, status model.ExerciseStatus) error
	Delete(ctx context.Context, id string) error
	AddSystem(ctx context.Context, exerciseID string, input model.ExerciseSystemInput) (*model.ExerciseSystem, error)
	RemoveSystem(ctx context.Context, exerciseID, exerciseSystemID string) error
}

// ExerciseServiceImpl は ExerciseService の実装
type ExerciseServiceImpl struct {
	repo    repository.ExerciseRepository
	systems repository.SystemRepository
	cache   cache.AnalyticsCache
}

// NewExerciseService は ExerciseServiceImpl を生成する
func NewExerciseService(repo repository.ExerciseRepository, systems repository.SystemRepository, c cache.AnalyticsCache) ExerciseService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ExerciseServiceImpl{repo: repo, systems: systems, cache: c}
}

// List は演習一覧を返す。status が空なら全件
func (s *ExerciseServiceImpl) List(ctx context.Context, status model.ExerciseStatus) ([]*model.Exercise, error) {
	if status != "" && !status.Valid() {
		return nil, invalidf("unknown status %q", status)
	}
	return s.repo.List(ctx, status)
}

// Get は割り当て込みの演習を返す
func (s *ExerciseServiceImpl) Get(ctx context.Context, id string) (*model.Exercise, error) {
	return s.repo.GetByID(ctx, id)
}

// Create は演習を作成する。ステータス未指定なら PLANNING
func (s *ExerciseServiceImpl) Create(ctx context.Context, input model.ExerciseInput) (*model.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	status := input.Status
	if status == "" {
		status = model.ExerciseStatusPlanning
	}
	if !status.Valid() {
		return nil, invalidf("unknown status %q", status)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, invalidf("end_date is before start_date")
	}

	ex := &model.Exercise{
		Name:        name,
		Description: input.Description,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		Systems:     []*model.ExerciseSystem{},
	}
	if err := s.repo.Create(ctx, ex); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return ex, nil
}

// UpdateStatus は演習のステータスを変更する
func (s *ExerciseServiceImpl) UpdateStatus(ctx context.Context, id string, status model.ExerciseStatus) error {
	if !status.Valid() {
		return invalidf("unknown status %q", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Delete は演習を削除する
func (s *ExerciseServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// AddSystem は演習にシステムを割り当てる。
// 選択されたプリセットはそのシステムに属している必要がある
func (s *ExerciseServiceImpl) AddSystem(ctx context.Context, exerciseID string, input model.ExerciseSystemInput) (*model.ExerciseSystem, error) {
	tier, err := validateAssignment(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, exerciseID); err != nil {
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

	es := &model.ExerciseSystem{
		ExerciseID:     exerciseID,
		SystemID:       system.ID,
		Quantity:       input.Quantity,
		FSRSupport:     tier,
		FSRCost:        input.FSRCost,
		LaunchesPerDay: input.LaunchesPerDay,
		Consumables:    selections,
	}
	if err := s.repo.AddSystem(ctx, es); err != nil {
		return nil, err
	}
	es.System = system
	s.cache.Invalidate(ctx)
	return es, nil
}

// RemoveSystem は演習からシステム割り当てを外す
func (s *ExerciseServiceImpl) RemoveSystem(ctx context.Context, exerciseID, exerciseSystemID string) error {
	if err := s.repo.RemoveSystem(ctx, exerciseID, exerciseSystemID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// validateAssignment は割り当て入力の数量・FSR 区分・単価を検証し、正規化した区分を返す
func validateAssignment(input model.ExerciseSystemInput) (model.FSRTier, error) {
	if input.Quantity < 1 {
		return "", invalidf("quantity must be at least 1")
	}
	tier, err := model.ParseFSRTierInput(input.FSRSupport)
	if err != nil {
		return "", invalidf("%v", err)
	}
	if negative(input.FSRCost) {
		return "", invalidf("fsr_cost must not be negative")
	}
	if negative(input.LaunchesPerDay) {
		return "", invalidf("launches_per_day must not be negative")
	}
	return tier, nil
}

// resolveSelections は入力のプリセット ID をシステムのプリセットに解決する。入力順は保持する
func resolveSelections(system *model.System, inputs []model.ConsumableSelectionInput) ([]*model.ExerciseSystemConsumable, error) {
	presets := make(map[string]*model.ConsumablePreset, len(system.Presets))
	for _, p := range system.Presets {
		presets[p.ID] = p
	}
	out := make([]*model.ExerciseSystemConsumable, 0, len(inputs))
	for i, in := range inputs {
		preset, ok := presets[in.PresetID]
		if !ok {
			return nil, invalidf("consumables[%d]: preset %q does not belong to system %q", i, in.PresetID, system.ID)
		}
		if negative(in.Quantity) {
			return nil, invalidf("consumables[%d]: quantity must not be negative", i)
		}
		out = append(out, &model.ExerciseSystemConsumable{
			PresetID: preset.ID,
			Quantity: in.Quantity,
			Preset:   preset,
		})
	}
	return out, nil
}
