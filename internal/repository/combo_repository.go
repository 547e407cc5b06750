package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arktribe/tribestore/internal/model"
)

var ErrComboNotFound = errors.New("combo not found")

// ComboRepo persists combos together with their item lines and price
// options. A combo and its lines are created in one transaction so a
// half-written bundle is never visible.
type ComboRepo struct{ DB *sql.DB }

func NewComboRepo(db *sql.DB) *ComboRepo { return &ComboRepo{DB: db} }

// Create inserts the combo, its details and its prices atomically.
func (r *ComboRepo) Create(ctx context.Context, c *model.Combo, details []model.ComboDetail, prices []model.Price) error {
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

	res, err := tx.ExecContext(ctx,
		"INSERT INTO combos (name, description, tribe_id, is_available, is_for_sale) VALUES (?,?,?,?,?)",
		c.Name, c.Description, c.TribeID, c.IsAvailable, c.IsForSale)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrTribeNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	for i := range details {
		details[i].ComboID = c.ID
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO combo_details (combo_id, item_id, quantity) VALUES (?,?,?)",
			c.ID, details[i].ItemID, details[i].Quantity); err != nil {
			if isForeignKeyViolation(err) {
				return ErrItemNotFound
			}
			return err
		}
	}
	for i := range prices {
		prices[i].ComboID = c.ID
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO prices (combo_id, type, item_id, quantity, amount) VALUES (?,?,?,?,?)",
			c.ID, prices[i].Type, prices[i].ItemID, prices[i].Quantity, prices[i].Amount); err != nil {
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

func (r *ComboRepo) GetByID(ctx context.Context, id uint64) (model.Combo, error) {
	var c model.Combo
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, tribe_id, is_available, is_for_sale FROM combos WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.Description, &c.TribeID, &c.IsAvailable, &c.IsForSale)
	if err == sql.ErrNoRows {
		return model.Combo{}, ErrComboNotFound
	}
	return c, err
}

// ListByTribe returns one tribe's combos.
func (r *ComboRepo) ListByTribe(ctx context.Context, tribeID uint64) ([]model.Combo, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description, tribe_id, is_available, is_for_sale FROM combos WHERE tribe_id=? ORDER BY id", tribeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	combos := make([]model.Combo, 0)
	for rows.Next() {
		var c model.Combo
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.TribeID, &c.IsAvailable, &c.IsForSale); err != nil {
			return nil, err
		}
		combos = append(combos, c)
	}
	return combos, rows.Err()
}

// Details returns the item lines of a combo.
func (r *ComboRepo) Details(ctx context.Context, comboID uint64) ([]model.ComboDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, combo_id, item_id, quantity FROM combo_details WHERE combo_id=? ORDER BY id", comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]model.ComboDetail, 0)
	for rows.Next() {
		var d model.ComboDetail
		if err := rows.Scan(&d.ID, &d.ComboID, &d.ItemID, &d.Quantity); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// Prices returns the accepted payment options of a combo.
func (r *ComboRepo) Prices(ctx context.Context, comboID uint64) ([]model.Price, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, combo_id, type, item_id, quantity, amount FROM prices WHERE combo_id=? ORDER BY id", comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make([]model.Price, 0)
	for rows.Next() {
		var p model.Price
		if err := rows.Scan(&p.ID, &p.ComboID, &p.Type, &p.ItemID, &p.Quantity, &p.Amount); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// SetAvailability flips the availability/for-sale flags.
func (r *ComboRepo) SetAvailability(ctx context.Context, id uint64, available, forSale bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE combos SET is_available=?, is_for_sale=? WHERE id=?", available, forSale, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a combo; details and prices cascade in the schema.
func (r *ComboRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM combos WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrComboNotFound
	}
	return nil
}
