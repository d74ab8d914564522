package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

// PgConsumableRepository は ConsumableRepository の PostgreSQL 実装
type PgConsumableRepository struct {
	pool *pgxpool.Pool
}

// NewPgConsumableRepository は PgConsumableRepository を生成する
func NewPgConsumableRepository(pool *pgxpool.Pool) *PgConsumableRepository {
	return &PgConsumableRepository{pool: pool}
}

// List は消耗品一覧を取得する
func (r *PgConsumableRepository) List(ctx context.Context) ([]*model.Consumable, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, unit, current_unit_cost, category, notes, created_at, updated_at
		 FROM consumables ORDER BY name, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*model.Consumable{}
	for rows.Next() {
		var c model.Consumable
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Unit, &c.CurrentUnitCost, &c.Category, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

// GetByID は ID で消耗品を取得する
func (r *PgConsumableRepository) GetByID(ctx context.Context, id string) (*model.Consumable, error) {
	var c model.Consumable
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, unit, current_unit_cost, category, notes, created_at, updated_at
		 FROM consumables WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Unit, &c.CurrentUnitCost, &c.Category, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create は消耗品を作成する
func (r *PgConsumableRepository) Create(ctx context.Context, c *model.Consumable) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO consumables (name, description, unit, current_unit_cost, category, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.Unit, c.CurrentUnitCost, c.Category, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Delete は消耗品を削除する
func (r *PgConsumableRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM consumables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
