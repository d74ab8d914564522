package service

import (
	"context"
	"strings"

	"github.com/jaw1999/planning-tool-sub002/internal/cache"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
)

// ConsumableService は消耗品のビジネスロジック
type ConsumableService interface {
	List(ctx context.Context) ([]*model.Consumable, error)
	Get(ctx context.Context, id string) (*model.Consumable, error)
	Create(ctx context.Context, input model.ConsumableInput) (*model.Consumable, error)
	Delete(ctx context.Context, id string) error
}

// ConsumableServiceImpl は ConsumableService の実装
type ConsumableServiceImpl struct {
	repo  repository.ConsumableRepository
	cache cache.AnalyticsCache
}

// NewConsumableService は ConsumableServiceImpl を生成する
func NewConsumableService(repo repository.ConsumableRepository, c cache.AnalyticsCache) ConsumableService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ConsumableServiceImpl{repo: repo, cache: c}
}

func (s *ConsumableServiceImpl) List(ctx context.Context) ([]*model.Consumable, error) {
	return s.repo.List(ctx)
}

func (s *ConsumableServiceImpl) Get(ctx context.Context, id string) (*model.Consumable, error) {
	return s.repo.GetByID(ctx, id)
}

// Create は名前と単位を必須として消耗品を作成する
func (s *ConsumableServiceImpl) Create(ctx context.Context, input model.ConsumableInput) (*model.Consumable, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		return nil, invalidf("unit is required")
	}
	if negative(input.CurrentUnitCost) {
		return nil, invalidf("current_unit_cost must not be negative")
	}
	c := &model.Consumable{
		Name:            name,
		Description:     input.Description,
		Unit:            unit,
		CurrentUnitCost: input.CurrentUnitCost,
		Category:        strings.TrimSpace(input.Category),
		Notes:           input.Notes,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return c, nil
}

func (s *ConsumableServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
