package repository

import (
	"context"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// SettingsRepository はエンジン設定（単一行）の永続化インターフェース
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) error
}
