package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arktribe/tribestore/internal/model"
)

var ErrTribeNotFound = errors.New("tribe not found")

type TribeRepo struct{ DB *sql.DB }

func NewTribeRepo(db *sql.DB) *TribeRepo { return &TribeRepo{DB: db} }

// Create inserts a tribe and populates its ID.
func (r *TribeRepo) Create(ctx context.Context, t *model.Tribe) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tribes (name, description) VALUES (?,?)", t.Name, t.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

func (r *TribeRepo) GetByID(ctx context.Context, id uint64) (model.Tribe, error) {
	var t model.Tribe
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description FROM tribes WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.Name, &t.Description)
	if err == sql.ErrNoRows {
		return model.Tribe{}, ErrTribeNotFound
	}
	return t, err
}

func (r *TribeRepo) List(ctx context.Context) ([]model.Tribe, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, description FROM tribes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tribes := make([]model.Tribe, 0)
	for rows.Next() {
		var t model.Tribe
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		tribes = append(tribes, t)
	}
	return tribes, rows.Err()
}

func (r *TribeRepo) Update(ctx context.Context, t model.Tribe) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tribes SET name=?, description=? WHERE id=?", t.Name, t.Description, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a tribe. Accounts reference tribes with RESTRICT, so
// deleting a tribe that still owns accounts reports ErrConflict.
func (r *TribeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tribes WHERE id=?", id)
	if err != nil {
		if isRestrictedDelete(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTribeNotFound
	}
	return nil
}
