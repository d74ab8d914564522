package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

const systemColumns = `id, name, description, base_price, has_license, license_price, lead_time_days,
	specifications, consumables_rate, created_at, updated_at`

// PgSystemRepository は SystemRepository の PostgreSQL 実装
type PgSystemRepository struct {
	pool *pgxpool.Pool
}

// NewPgSystemRepository は PgSystemRepository を生成する
func NewPgSystemRepository(pool *pgxpool.Pool) *PgSystemRepository {
	return &PgSystemRepository{pool: pool}
}

// List はシステム一覧を名前順で取得する
func (r *PgSystemRepository) List(ctx context.Context) ([]*model.System, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+systemColumns+` FROM systems ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	systems := []*model.System{}
	for rows.Next() {
		s, err := scanSystem(rows)
		if err != nil {
			return nil, err
		}
		systems = append(systems, s)
	}
	return systems, rows.Err()
}

// GetByID は ID でシステムを取得する（プリセット込み）
func (r *PgSystemRepository) GetByID(ctx context.Context, id string) (*model.System, error) {
	s, err := scanSystem(r.pool.QueryRow(ctx, `SELECT `+systemColumns+` FROM systems WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	presets, err := r.ListPresets(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Presets = presets
	return s, nil
}

// Create はシステムを作成する
func (r *PgSystemRepository) Create(ctx context.Context, s *model.System) error {
	specs := s.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO systems (name, description, base_price, has_license, license_price, lead_time_days, specifications, consumables_rate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Description, s.BasePrice, s.HasLicense, s.LicensePrice, s.LeadTimeDays, specs, s.ConsumablesRate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Delete はシステムを削除する（プリセットと割り当ては CASCADE で削除）
func (r *PgSystemRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM systems WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count はカタログ内のシステム数を返す
func (r *PgSystemRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM systems`).Scan(&n)
	return n, err
}

// ListPresets はシステムの消耗品プリセットを消耗品込みで取得する
func (r *PgSystemRepository) ListPresets(ctx context.Context, systemID string) ([]*model.ConsumablePreset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.system_id, p.consumable_id, p.name, p.quantity, p.notes,
		        c.id, c.name, c.description, c.unit, c.current_unit_cost, c.category, c.notes, c.created_at, c.updated_at
		 FROM consumable_presets p
		 JOIN consumables c ON c.id = p.consumable_id
		 WHERE p.system_id = $1
		 ORDER BY p.name, p.id`,
		systemID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presets := []*model.ConsumablePreset{}
	for rows.Next() {
		var p model.ConsumablePreset
		var c model.Consumable
		if err := rows.Scan(&p.ID, &p.SystemID, &p.ConsumableID, &p.Name, &p.Quantity, &p.Notes,
			&c.ID, &c.Name, &c.Description, &c.Unit, &c.CurrentUnitCost, &c.Category, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		p.Consumable = &c
		presets = append(presets, &p)
	}
	return presets, rows.Err()
}

// CreatePreset は消耗品プリセットを作成する
func (r *PgSystemRepository) CreatePreset(ctx context.Context, p *model.ConsumablePreset) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO consumable_presets (system_id, consumable_id, name, quantity, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.SystemID, p.ConsumableID, p.Name, p.Quantity, p.Notes,
	).Scan(&p.ID)
}

func scanSystem(row pgx.Row) (*model.System, error) {
	var s model.System
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.HasLicense, &s.LicensePrice, &s.LeadTimeDays,
		&s.Specifications, &s.ConsumablesRate, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
