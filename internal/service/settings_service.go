package service

import (
	"context"
	"errors"

	"github.com/jaw1999/planning-tool-sub002/internal/cache"
	"github.com/jaw1999/planning-tool-sub002/internal/costing"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
)

// SettingsService はエンジン設定のビジネスロジック
type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error)
	// Engine は現在の設定で構成したコストエンジンを返す
	Engine(ctx context.Context) (*costing.Engine, error)
}

// SettingsServiceImpl は SettingsService の実装
type SettingsServiceImpl struct {
	repo  repository.SettingsRepository
	cache cache.AnalyticsCache
}

// NewSettingsService は SettingsServiceImpl を生成する
func NewSettingsService(repo repository.SettingsRepository, c cache.AnalyticsCache) SettingsService {
	if c == nil {
		c = cache.Nop{}
	}
	return &SettingsServiceImpl{repo: repo, cache: c}
}

// Get は保存済みの設定を返す。未保存ならデフォルト値を返す
func (s *SettingsServiceImpl) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Update はパッチを適用して検証し、保存する
func (s *SettingsServiceImpl) Update(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if patch.TrendThreshold != nil {
		if *patch.TrendThreshold < 0 {
			return nil, invalidf("trend_threshold must not be negative")
		}
		settings.TrendThreshold = *patch.TrendThreshold
	}
	if patch.TrendWindow != nil {
		if *patch.TrendWindow < 1 {
			return nil, invalidf("trend_window must be at least 1")
		}
		settings.TrendWindow = *patch.TrendWindow
	}
	if patch.WeekStart != nil {
		if *patch.WeekStart < 0 || *patch.WeekStart > 6 {
			return nil, invalidf("week_start must be between 0 and 6")
		}
		settings.WeekStart = *patch.WeekStart
	}
	if patch.LaunchKeywords != nil {
		settings.LaunchKeywords = costing.NewClassifier(patch.LaunchKeywords...).Keywords()
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return settings, nil
}

// Engine は現在の設定からコストエンジンを組み立てる
func (s *SettingsServiceImpl) Engine(ctx context.Context) (*costing.Engine, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return costing.NewEngine(settings), nil
}
