package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arktribe/tribestore/internal/model"
)

var ErrBlueprintNotFound = errors.New("blueprint not found")

// BlueprintRepo persists blueprints and their material requirements.
type BlueprintRepo struct{ DB *sql.DB }

func NewBlueprintRepo(db *sql.DB) *BlueprintRepo { return &BlueprintRepo{DB: db} }

// Create inserts the blueprint and its materials atomically.
func (r *BlueprintRepo) Create(ctx context.Context, b *model.Blueprint, materials []model.BlueprintMaterial) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if b.OutputQuantity == 0 {
		b.OutputQuantity = 1
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO blueprints (output_item_id, description, output_quantity) VALUES (?,?,?)",
		b.OutputItemID, b.Description, b.OutputQuantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrItemNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	for i := range materials {
		materials[i].BlueprintID = b.ID
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO blueprint_materials (blueprint_id, item_id, quantity) VALUES (?,?,?)",
			b.ID, materials[i].ItemID, materials[i].Quantity); err != nil {
			if isForeignKeyViolation(err) {
				return ErrItemNotFound
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *BlueprintRepo) GetByID(ctx context.Context, id uint64) (model.Blueprint, error) {
	var b model.Blueprint
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, output_item_id, description, output_quantity FROM blueprints WHERE id=? LIMIT 1", id).
		Scan(&b.ID, &b.OutputItemID, &b.Description, &b.OutputQuantity)
	if err == sql.ErrNoRows {
		return model.Blueprint{}, ErrBlueprintNotFound
	}
	return b, err
}

func (r *BlueprintRepo) List(ctx context.Context) ([]model.Blueprint, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, output_item_id, description, output_quantity FROM blueprints ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bps := make([]model.Blueprint, 0)
	for rows.Next() {
		var b model.Blueprint
		if err := rows.Scan(&b.ID, &b.OutputItemID, &b.Description, &b.OutputQuantity); err != nil {
			return nil, err
		}
		bps = append(bps, b)
	}
	return bps, rows.Err()
}

// Materials returns the material lines of a blueprint.
func (r *BlueprintRepo) Materials(ctx context.Context, blueprintID uint64) ([]model.BlueprintMaterial, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, blueprint_id, item_id, quantity FROM blueprint_materials WHERE blueprint_id=? ORDER BY id", blueprintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mats := make([]model.BlueprintMaterial, 0)
	for rows.Next() {
		var m model.BlueprintMaterial
		if err := rows.Scan(&m.ID, &m.BlueprintID, &m.ItemID, &m.Quantity); err != nil {
			return nil, err
		}
		mats = append(mats, m)
	}
	return mats, rows.Err()
}

// Delete removes a blueprint; material lines cascade in the schema.
func (r *BlueprintRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM blueprints WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlueprintNotFound
	}
	return nil
}
