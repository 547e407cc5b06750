package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arktribe/tribestore/internal/model"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrItemNameTaken = errors.New("item name already exists")
)

type ItemRepo struct{ DB *sql.DB }

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{DB: db} }

func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	it.Name = strings.TrimSpace(it.Name)
	if it.Stack == 0 {
		it.Stack = 1
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO items (name, description, stack) VALUES (?,?,?)",
		it.Name, it.Description, it.Stack)
	if err != nil {
		if isDuplicateOf(err, "uq_items_name") {
			return ErrItemNameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	var it model.Item
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, stack FROM items WHERE id=? LIMIT 1", id).
		Scan(&it.ID, &it.Name, &it.Description, &it.Stack)
	if err == sql.ErrNoRows {
		return model.Item{}, ErrItemNotFound
	}
	return it, err
}

func (r *ItemRepo) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, description, stack FROM items ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Stack); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ItemRepo) Update(ctx context.Context, it model.Item) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE items SET name=?, description=?, stack=? WHERE id=?",
		strings.TrimSpace(it.Name), it.Description, it.Stack, it.ID)
	if err != nil {
		if isDuplicateOf(err, "uq_items_name") {
			return ErrItemNameTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, it.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an item. Recipes, blueprints and prices reference
// items with RESTRICT, so a referenced item reports ErrConflict.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM items WHERE id=?", id)
	if err != nil {
		if isRestrictedDelete(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}
