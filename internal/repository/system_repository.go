package repository

import (
	"context"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// SystemRepository はシステムカタログと消耗品プリセットの永続化インターフェース
type SystemRepository interface {
	List(ctx context.Context) ([]*model.System, error)
	GetByID(ctx context.Context, id string) (*model.System, error)
	Create(ctx context.Context, system *model.System) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	ListPresets(ctx context.Context, systemID string) ([]*model.ConsumablePreset, error)
	CreatePreset(ctx context.Context, preset *model.ConsumablePreset) error
}
