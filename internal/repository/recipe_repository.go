package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arktribe/tribestore/internal/model"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepo persists recipes and their ingredient lines. A recipe and
// its ingredients are written in one transaction.
type RecipeRepo struct{ DB *sql.DB }

func NewRecipeRepo(db *sql.DB) *RecipeRepo { return &RecipeRepo{DB: db} }

// Create inserts the recipe and its ingredients atomically. When the
// recipe name is blank it defaults to the output item's name.
func (r *RecipeRepo) Create(ctx context.Context, rec *model.Recipe, ingredients []model.RecipeIngredient) error {
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

	if strings.TrimSpace(rec.Name) == "" {
		if err := tx.QueryRowContext(ctx,
			"SELECT name FROM items WHERE id=?", rec.OutputItemID).Scan(&rec.Name); err != nil {
			if err == sql.ErrNoRows {
				return ErrItemNotFound
			}
			return err
		}
	}
	if rec.OutputQuantity == 0 {
		rec.OutputQuantity = 1
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO recipes (name, description, output_item_id, output_quantity) VALUES (?,?,?,?)",
		rec.Name, rec.Description, rec.OutputItemID, rec.OutputQuantity)
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
	rec.ID = uint64(id)

	for i := range ingredients {
		ingredients[i].RecipeID = rec.ID
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recipe_ingredients (recipe_id, item_id, quantity) VALUES (?,?,?)",
			rec.ID, ingredients[i].ItemID, ingredients[i].Quantity); err != nil {
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

func (r *RecipeRepo) GetByID(ctx context.Context, id uint64) (model.Recipe, error) {
	var rec model.Recipe
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, output_item_id, output_quantity FROM recipes WHERE id=? LIMIT 1", id).
		Scan(&rec.ID, &rec.Name, &rec.Description, &rec.OutputItemID, &rec.OutputQuantity)
	if err == sql.ErrNoRows {
		return model.Recipe{}, ErrRecipeNotFound
	}
	return rec, err
}

func (r *RecipeRepo) List(ctx context.Context) ([]model.Recipe, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description, output_item_id, output_quantity FROM recipes ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]model.Recipe, 0)
	for rows.Next() {
		var rec model.Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.OutputItemID, &rec.OutputQuantity); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// Ingredients returns the ingredient lines of a recipe.
func (r *RecipeRepo) Ingredients(ctx context.Context, recipeID uint64) ([]model.RecipeIngredient, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, recipe_id, item_id, quantity FROM recipe_ingredients WHERE recipe_id=? ORDER BY id", recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ings := make([]model.RecipeIngredient, 0)
	for rows.Next() {
		var in model.RecipeIngredient
		if err := rows.Scan(&in.ID, &in.RecipeID, &in.ItemID, &in.Quantity); err != nil {
			return nil, err
		}
		ings = append(ings, in)
	}
	return ings, rows.Err()
}

// Delete removes a recipe; ingredient lines cascade in the schema.
func (r *RecipeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM recipes WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
