package repository

import (
	"context"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// ConsumableRepository は消耗品の永続化インターフェース
type ConsumableRepository interface {
	List(ctx context.Context) ([]*model.Consumable, error)
	GetByID(ctx context.Context, id string) (*model.Consumable, error)
	Create(ctx context.Context, c *model.Consumable) error
	Delete(ctx context.Context, id string) error
}
