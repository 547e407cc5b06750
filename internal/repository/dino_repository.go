package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arktribe/tribestore/internal/model"
)

var ErrDinoNotFound = errors.New("dino not found")

type DinoRepo struct{ DB *sql.DB }

func NewDinoRepo(db *sql.DB) *DinoRepo { return &DinoRepo{DB: db} }

func (r *DinoRepo) Create(ctx context.Context, d *model.Dino) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO dinos (fullname, name, category, egg_type) VALUES (?,?,?,?)",
		d.FullName, d.Name, d.Category, d.EggType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

func (r *DinoRepo) GetByID(ctx context.Context, id uint64) (model.Dino, error) {
	var d model.Dino
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, fullname, name, category, egg_type FROM dinos WHERE id=? LIMIT 1", id).
		Scan(&d.ID, &d.FullName, &d.Name, &d.Category, &d.EggType)
	if err == sql.ErrNoRows {
		return model.Dino{}, ErrDinoNotFound
	}
	return d, err
}

// List returns dinos, optionally filtered by category ("" means all).
func (r *DinoRepo) List(ctx context.Context, category string) ([]model.Dino, error) {
	q := "SELECT id, fullname, name, category, egg_type FROM dinos"
	args := []interface{}{}
	if category != "" {
		q += " WHERE category=?"
		args = append(args, category)
	}
	q += " ORDER BY fullname"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dinos := make([]model.Dino, 0)
	for rows.Next() {
		var d model.Dino
		if err := rows.Scan(&d.ID, &d.FullName, &d.Name, &d.Category, &d.EggType); err != nil {
			return nil, err
		}
		dinos = append(dinos, d)
	}
	return dinos, rows.Err()
}

func (r *DinoRepo) Update(ctx context.Context, d model.Dino) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE dinos SET fullname=?, name=?, category=?, egg_type=? WHERE id=?",
		d.FullName, d.Name, d.Category, d.EggType, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, d.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a species. Genetics reference dinos with RESTRICT, so
// a referenced species reports ErrConflict.
func (r *DinoRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM dinos WHERE id=?", id)
	if err != nil {
		if isRestrictedDelete(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDinoNotFound
	}
	return nil
}
