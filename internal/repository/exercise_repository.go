package repository

import (
	"context"
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// ExerciseRepository は演習とシステム割り当ての永続化インターフェース
type ExerciseRepository interface {
	List(ctx context.Context, status model.ExerciseStatus) ([]*model.Exercise, error)
	// ListWithSystems は [from, to] と重なる演習を割り当て込みで返す。ゼロ値の境界は開区間
	ListWithSystems(ctx context.Context, from, to time.Time) ([]*model.Exercise, error)
	GetByID(ctx context.Context, id string) (*model.Exercise, error)
	Create(ctx context.Context, ex *model.Exercise) error
	UpdateStatus(ctx context.Context, id string, status model.ExerciseStatus) error
	Delete(ctx context.Context, id string) error
	AddSystem(ctx context.Context, es *model.ExerciseSystem) error
	RemoveSystem(ctx context.Context, exerciseID, exerciseSystemID string) error
}
