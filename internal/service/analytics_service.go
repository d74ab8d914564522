package service

import (
	"context"
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/cache"
	"github.com/jaw1999/planning-tool-sub002/internal/costing"
	"github.com/jaw1999/planning-tool-sub002/internal/metrics"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DefaultAnalyticsConcurrency は演習ごとのコスト計算の同時実行数の既定値
const DefaultAnalyticsConcurrency = 8

// AnalyticsService はダッシュボード用の集計を提供する
type AnalyticsService interface {
	Analytics(ctx context.Context, q model.AnalyticsQuery) (*model.AnalyticsData, error)
}

// AnalyticsServiceImpl は AnalyticsService の実装
type AnalyticsServiceImpl struct {
	exercises   repository.ExerciseRepository
	systems     repository.SystemRepository
	settings    SettingsService
	cache       cache.AnalyticsCache
	metrics     *metrics.Collectors
	concurrency int
}

// AnalyticsOption は AnalyticsServiceImpl の任意設定
type AnalyticsOption func(*AnalyticsServiceImpl)

// WithCache は結果キャッシュを設定する
func WithCache(c cache.AnalyticsCache) AnalyticsOption {
	return func(s *AnalyticsServiceImpl) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithMetrics は Prometheus のコレクタを設定する
func WithMetrics(m *metrics.Collectors) AnalyticsOption {
	return func(s *AnalyticsServiceImpl) { s.metrics = m }
}

// WithConcurrency は同時に計算する演習数の上限を設定する
func WithConcurrency(n int) AnalyticsOption {
	return func(s *AnalyticsServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewAnalyticsService は AnalyticsServiceImpl を生成する
func NewAnalyticsService(exercises repository.ExerciseRepository, systems repository.SystemRepository, settings SettingsService, opts ...AnalyticsOption) AnalyticsService {
	s := &AnalyticsServiceImpl{
		exercises:   exercises,
		systems:     systems,
		settings:    settings,
		cache:       cache.Nop{},
		concurrency: DefaultAnalyticsConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analytics は期間内の演習コストを集計する。結果はキャッシュされ、書き込みで無効化される
func (s *AnalyticsServiceImpl) Analytics(ctx context.Context, q model.AnalyticsQuery) (*model.AnalyticsData, error) {
	granularity, err := costing.ParseGranularity(q.Granularity)
	if err != nil {
		return nil, invalidf("unknown granularity %q", q.Granularity)
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return nil, invalidf("to is before from")
	}
	q.Granularity = string(granularity)

	// 世代は読み込み前に取得する。計算中の書き込みで世代が進むと、この結果は古い世代のキーに入る
	gen, cacheable := s.cache.Generation(ctx)
	key := cache.Key(gen, q)
	if cacheable {
		if data, ok := s.cache.Get(ctx, key); ok {
			s.metrics.CountCache(true)
			return data, nil
		}
	}
	s.metrics.CountCache(false)

	started := time.Now()
	data, err := s.compute(ctx, q, granularity)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAnalytics(time.Since(started))

	if cacheable {
		if now, ok := s.cache.Generation(ctx); ok && now == gen {
			s.cache.Set(ctx, key, data)
		}
	}
	return data, nil
}

func (s *AnalyticsServiceImpl) compute(ctx context.Context, q model.AnalyticsQuery, granularity costing.Granularity) (*model.AnalyticsData, error) {
	var (
		exercises   []*model.Exercise
		catalogSize int
		engine      *costing.Engine
	)
	load, lctx := errgroup.WithContext(ctx)
	load.Go(func() error {
		var err error
		exercises, err = s.exercises.ListWithSystems(lctx, q.From, q.To)
		return err
	})
	load.Go(func() error {
		var err error
		catalogSize, err = s.systems.Count(lctx)
		return err
	})
	load.Go(func() error {
		var err error
		engine, err = s.settings.Engine(lctx)
		return err
	})
	if err := load.Wait(); err != nil {
		return nil, err
	}

	priced := make([]costing.ExerciseCosts, len(exercises))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ex := range exercises {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := engine.ExerciseCosts(ex)
			s.metrics.CountComputation(err)
			if err != nil {
				return err
			}
			priced[i] = costing.ExerciseCosts{Exercise: ex, Costs: summary.Systems}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data, err := engine.Aggregator.Analytics(costing.AnalyticsInput{
		From:        q.From,
		To:          q.To,
		Granularity: granularity,
		Exercises:   priced,
		CatalogSize: catalogSize,
	})
	if err != nil {
		return nil, err
	}
	return data.Rounded(), nil
}
