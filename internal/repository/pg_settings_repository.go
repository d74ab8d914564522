package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// PgSettingsRepository は SettingsRepository の PostgreSQL 実装
type PgSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPgSettingsRepository は PgSettingsRepository を生成する
func NewPgSettingsRepository(pool *pgxpool.Pool) *PgSettingsRepository {
	return &PgSettingsRepository{pool: pool}
}

// Get は設定を取得する。行がなければ ErrNotFound を返す
func (r *PgSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.pool.QueryRow(ctx,
		`SELECT trend_threshold, trend_window, launch_keywords, week_start, updated_at
		 FROM settings WHERE id = 1`,
	).Scan(&s.TrendThreshold, &s.TrendWindow, &s.LaunchKeywords, &s.WeekStart, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save は設定を upsert する
func (r *PgSettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	keywords := s.LaunchKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO settings (id, trend_threshold, trend_window, launch_keywords, week_start)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   trend_threshold = EXCLUDED.trend_threshold,
		   trend_window = EXCLUDED.trend_window,
		   launch_keywords = EXCLUDED.launch_keywords,
		   week_start = EXCLUDED.week_start,
		   updated_at = NOW()
		 RETURNING updated_at`,
		s.TrendThreshold, s.TrendWindow, keywords, s.WeekStart,
	).Scan(&s.UpdatedAt)
}
