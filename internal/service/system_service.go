package service

import (
	"context"
	"strings"

	"github.com/jaw1999/planning-tool-sub002/internal/cache"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
)

// SystemService はシステムカタログのビジネスロジック
type SystemService interface {
	List(ctx context.Context) ([]*model.System, error)
	Get(ctx context.Context, id string) (*model.System, error)
	Create(ctx context.Context, input model.SystemInput) (*model.System, error)
	Delete(ctx context.Context, id string) error
	ListPresets(ctx context.Context, systemID string) ([]*model.ConsumablePreset, error)
	AddPreset(ctx context.Context, systemID string, input model.ConsumablePresetInput) (*model.ConsumablePreset, error)
}

// SystemServiceImpl は SystemService の実装
type SystemServiceImpl struct {
	repo        repository.SystemRepository
	consumables repository.ConsumableRepository
	cache       cache.AnalyticsCache
}

// NewSystemService は SystemServiceImpl を生成する。c が nil のときはキャッシュなし
func NewSystemService(repo repository.SystemRepository, consumables repository.ConsumableRepository, c cache.AnalyticsCache) SystemService {
	if c == nil {
		c = cache.Nop{}
	}
	return &SystemServiceImpl{repo: repo, consumables: consumables, cache: c}
}

// List はシステム一覧を返す
func (s *SystemServiceImpl) List(ctx context.Context) ([]*model.System, error) {
	return s.repo.List(ctx)
}

// Get はプリセット込みのシステムを返す
func (s *SystemServiceImpl) Get(ctx context.Context, id string) (*model.System, error) {
	return s.repo.GetByID(ctx, id)
}

// Create は入力を検証してシステムを作成する
func (s *SystemServiceImpl) Create(ctx context.Context, input model.SystemInput) (*model.System, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	if negative(input.BasePrice) {
		return nil, invalidf("base_price must not be negative")
	}
	if negative(input.LicensePrice) {
		return nil, invalidf("license_price must not be negative")
	}
	if negative(input.ConsumablesRate) {
		return nil, invalidf("consumables_rate must not be negative")
	}
	if input.LeadTimeDays < 0 {
		return nil, invalidf("lead_time_days must not be negative")
	}

	system := &model.System{
		Name:            name,
		Description:     input.Description,
		BasePrice:       input.BasePrice,
		HasLicense:      input.HasLicense,
		LicensePrice:    input.LicensePrice,
		LeadTimeDays:    input.LeadTimeDays,
		Specifications:  input.Specifications,
		ConsumablesRate: input.ConsumablesRate,
	}
	if err := s.repo.Create(ctx, system); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return system, nil
}

// Delete はシステムを削除する
func (s *SystemServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ListPresets はシステムの消耗品プリセットを返す
func (s *SystemServiceImpl) ListPresets(ctx context.Context, systemID string) ([]*model.ConsumablePreset, error) {
	if _, err := s.repo.GetByID(ctx, systemID); err != nil {
		return nil, err
	}
	return s.repo.ListPresets(ctx, systemID)
}

// AddPreset はシステムに消耗品プリセットを追加する
func (s *SystemServiceImpl) AddPreset(ctx context.Context, systemID string, input model.ConsumablePresetInput) (*model.ConsumablePreset, error) {
	if input.Quantity < 0 {
		return nil, invalidf("quantity must not be negative")
	}
	if _, err := s.repo.GetByID(ctx, systemID); err != nil {
		return nil, err
	}
	consumable, err := s.consumables.GetByID(ctx, input.ConsumableID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = consumable.Name
	}
	preset := &model.ConsumablePreset{
		SystemID:     systemID,
		ConsumableID: consumable.ID,
		Name:         name,
		Quantity:     input.Quantity,
		Notes:        input.Notes,
		Consumable:   consumable,
	}
	if err := s.repo.CreatePreset(ctx, preset); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return preset, nil
}

func negative(p *float64) bool {
	return p != nil && *p < 0
}
