package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaw1999/planning-tool-sub002/internal/model"
)

const exerciseColumns = `id, name, description, location, start_date, end_date, status, created_at, updated_at`

// PgExerciseRepository は ExerciseRepository の PostgreSQL 実装
type PgExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewPgExerciseRepository は PgExerciseRepository を生成する
func NewPgExerciseRepository(pool *pgxpool.Pool) *PgExerciseRepository {
	return &PgExerciseRepository{pool: pool}
}

// List は演習一覧を取得する。status が空なら全件
func (r *PgExerciseRepository) List(ctx context.Context, status model.ExerciseStatus) ([]*model.Exercise, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY start_date NULLS LAST, created_at DESC`,
		string(status),
	)
	if err != nil {
		return nil, err
	}
	return collectExercises(rows)
}

// ListWithSystems は期間と重なる演習を割り当て・プリセット込みで取得する
func (r *PgExerciseRepository) ListWithSystems(ctx context.Context, from, to time.Time) ([]*model.Exercise, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE status <> 'CANCELLED'
		   AND ($1::date IS NULL OR end_date IS NULL OR end_date >= $1::date)
		   AND ($2::date IS NULL OR start_date IS NULL OR start_date <= $2::date)
		 ORDER BY start_date NULLS LAST, id`,
		nullableTime(from), nullableTime(to),
	)
	if err != nil {
		return nil, err
	}
	exercises, err := collectExercises(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachSystems(ctx, exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetByID は ID で演習を取得する（割り当て込み）
func (r *PgExerciseRepository) GetByID(ctx context.Context, id string) (*model.Exercise, error) {
	ex, err := scanExercise(r.pool.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachSystems(ctx, []*model.Exercise{ex}); err != nil {
		return nil, err
	}
	return ex, nil
}

// Create は演習を作成する
func (r *PgExerciseRepository) Create(ctx context.Context, ex *model.Exercise) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exercises (name, description, location, start_date, end_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		ex.Name, ex.Description, ex.Location, ex.StartDate, ex.EndDate, string(ex.Status),
	).Scan(&ex.ID, &ex.CreatedAt, &ex.UpdatedAt)
}

// UpdateStatus は演習のステータスを更新する
func (r *PgExerciseRepository) UpdateStatus(ctx context.Context, id string, status model.ExerciseStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exercises SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete は演習を削除する
func (r *PgExerciseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddSystem は演習にシステムを割り当てる。選択された消耗品も同一トランザクションで保存する
func (r *PgExerciseRepository) AddSystem(ctx context.Context, es *model.ExerciseSystem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exercise_systems (exercise_id, system_id, quantity, fsr_support, fsr_cost, launches_per_day)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		es.ExerciseID, es.SystemID, es.Quantity, string(es.FSRSupport), es.FSRCost, es.LaunchesPerDay,
	).Scan(&es.ID, &es.CreatedAt, &es.UpdatedAt)
	if err != nil {
		return err
	}

	for i, c := range es.Consumables {
		if err := tx.QueryRow(ctx,
			`INSERT INTO exercise_system_consumables (exercise_system_id, preset_id, quantity, sort_order)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			es.ID, c.PresetID, c.Quantity, i,
		).Scan(&c.ID); err != nil {
			return fmt.Errorf("insert consumable %d: %w", i, err)
		}
	}
	if _, err := tx.Exec(ctx, `UPDATE exercises SET updated_at = NOW() WHERE id = $1`, es.ExerciseID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveSystem は演習からシステム割り当てを外す
func (r *PgExerciseRepository) RemoveSystem(ctx context.Context, exerciseID, exerciseSystemID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM exercise_systems WHERE id = $1 AND exercise_id = $2`,
		exerciseSystemID, exerciseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// attachSystems は演習の割り当て・システム・選択消耗品をまとめて読み込む
func (r *PgExerciseRepository) attachSystems(ctx context.Context, exercises []*model.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	byExercise := make(map[string]*model.Exercise, len(exercises))
	ids := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		ex.Systems = []*model.ExerciseSystem{}
		byExercise[ex.ID] = ex
		ids = append(ids, ex.ID)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT es.id, es.exercise_id, es.system_id, es.quantity, es.fsr_support, es.fsr_cost, es.launches_per_day,
		        es.created_at, es.updated_at,
		        s.id, s.name, s.description, s.base_price, s.has_license, s.license_price, s.lead_time_days,
		        s.specifications, s.consumables_rate, s.created_at, s.updated_at
		 FROM exercise_systems es
		 JOIN systems s ON s.id = es.system_id
		 WHERE es.exercise_id = ANY($1::uuid[])
		 ORDER BY es.created_at, es.id`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	byAssignment := make(map[string]*model.ExerciseSystem)
	var assignmentIDs []string
	for rows.Next() {
		var es model.ExerciseSystem
		var s model.System
		if err := rows.Scan(&es.ID, &es.ExerciseID, &es.SystemID, &es.Quantity, (*string)(&es.FSRSupport), &es.FSRCost,
			&es.LaunchesPerDay, &es.CreatedAt, &es.UpdatedAt,
			&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.HasLicense, &s.LicensePrice, &s.LeadTimeDays,
			&s.Specifications, &s.ConsumablesRate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return err
		}
		es.System = &s
		es.Consumables = []*model.ExerciseSystemConsumable{}
		ex := byExercise[es.ExerciseID]
		ex.Systems = append(ex.Systems, &es)
		byAssignment[es.ID] = &es
		assignmentIDs = append(assignmentIDs, es.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()
	if len(assignmentIDs) == 0 {
		return nil
	}

	crows, err := r.pool.Query(ctx,
		`SELECT esc.id, esc.exercise_system_id, esc.preset_id, esc.quantity,
		        p.id, p.system_id, p.consumable_id, p.name, p.quantity, p.notes,
		        c.id, c.name, c.description, c.unit, c.current_unit_cost, c.category, c.notes, c.created_at, c.updated_at
		 FROM exercise_system_consumables esc
		 JOIN consumable_presets p ON p.id = esc.preset_id
		 JOIN consumables c ON c.id = p.consumable_id
		 WHERE esc.exercise_system_id = ANY($1::uuid[])
		 ORDER BY esc.sort_order, esc.id`,
		assignmentIDs,
	)
	if err != nil {
		return err
	}
	defer crows.Close()

	for crows.Next() {
		var sel model.ExerciseSystemConsumable
		var p model.ConsumablePreset
		var c model.Consumable
		var assignmentID string
		if err := crows.Scan(&sel.ID, &assignmentID, &sel.PresetID, &sel.Quantity,
			&p.ID, &p.SystemID, &p.ConsumableID, &p.Name, &p.Quantity, &p.Notes,
			&c.ID, &c.Name, &c.Description, &c.Unit, &c.CurrentUnitCost, &c.Category, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		p.Consumable = &c
		sel.Preset = &p
		es := byAssignment[assignmentID]
		es.Consumables = append(es.Consumables, &sel)
	}
	return crows.Err()
}

func collectExercises(rows pgx.Rows) ([]*model.Exercise, error) {
	defer rows.Close()
	exercises := []*model.Exercise{}
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

func scanExercise(row pgx.Row) (*model.Exercise, error) {
	var ex model.Exercise
	if err := row.Scan(&ex.ID, &ex.Name, &ex.Description, &ex.Location, &ex.StartDate, &ex.EndDate,
		(*string)(&ex.Status), &ex.CreatedAt, &ex.UpdatedAt); err != nil {
		return nil, err
	}
	return &ex, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
