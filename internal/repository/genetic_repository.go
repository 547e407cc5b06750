package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arktribe/tribestore/internal/model"
)

var (
	ErrGeneticNotFound  = errors.New("genetic not found")
	ErrSalePostNotFound = errors.New("sale post not found")
)

// GeneticRepo persists bred-creature stat records and the sale posts
// advertising them.
type GeneticRepo struct{ DB *sql.DB }

func NewGeneticRepo(db *sql.DB) *GeneticRepo { return &GeneticRepo{DB: db} }

const geneticCols = `id, dino_id, tribe_id,
	health_base, health_mutates, stamina_base, stamina_mutates,
	oxygen_base, oxygen_mutates, food_base, food_mutates,
	weight_base, weight_mutates, damage_base, damage_mutates`

func (r *GeneticRepo) Create(ctx context.Context, g *model.Genetic) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO genetics (dino_id, tribe_id,
			health_base, health_mutates, stamina_base, stamina_mutates,
			oxygen_base, oxygen_mutates, food_base, food_mutates,
			weight_base, weight_mutates, damage_base, damage_mutates)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		g.DinoID, g.TribeID,
		g.HealthBase, g.HealthMutates, g.StaminaBase, g.StaminaMutate,
		g.OxygenBase, g.OxygenMutates, g.FoodBase, g.FoodMutates,
		g.WeightBase, g.WeightMutates, g.DamageBase, g.DamageMutates)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrDinoNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

func (r *GeneticRepo) GetByID(ctx context.Context, id uint64) (model.Genetic, error) {
	var g model.Genetic
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+geneticCols+" FROM genetics WHERE id=? LIMIT 1", id).Scan(
		&g.ID, &g.DinoID, &g.TribeID,
		&g.HealthBase, &g.HealthMutates, &g.StaminaBase, &g.StaminaMutate,
		&g.OxygenBase, &g.OxygenMutates, &g.FoodBase, &g.FoodMutates,
		&g.WeightBase, &g.WeightMutates, &g.DamageBase, &g.DamageMutates)
	if err == sql.ErrNoRows {
		return model.Genetic{}, ErrGeneticNotFound
	}
	return g, err
}

// ListByTribe returns one tribe's genetic lines.
func (r *GeneticRepo) ListByTribe(ctx context.Context, tribeID uint64) ([]model.Genetic, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+geneticCols+" FROM genetics WHERE tribe_id=? ORDER BY id", tribeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gens := make([]model.Genetic, 0)
	for rows.Next() {
		var g model.Genetic
		if err := rows.Scan(&g.ID, &g.DinoID, &g.TribeID,
			&g.HealthBase, &g.HealthMutates, &g.StaminaBase, &g.StaminaMutate,
			&g.OxygenBase, &g.OxygenMutates, &g.FoodBase, &g.FoodMutates,
			&g.WeightBase, &g.WeightMutates, &g.DamageBase, &g.DamageMutates); err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

func (r *GeneticRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM genetics WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGeneticNotFound
	}
	return nil
}

// ----- sale posts -----

const salePostCols = "id, tribe_id, genetic_id, title, description, discord_contact, is_for_sale, payment_method, item_payment_id, price_amount"

func (r *GeneticRepo) CreateSalePost(ctx context.Context, p *model.SalePost) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO sale_posts (tribe_id, genetic_id, title, description, discord_contact,
			is_for_sale, payment_method, item_payment_id, price_amount)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		p.TribeID, p.GeneticID, p.Title, p.Description, p.DiscordContact,
		p.IsForSale, p.PaymentMethod, p.ItemPaymentID, p.PriceAmount)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrGeneticNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// ListSalePosts returns posts currently marked for sale.
func (r *GeneticRepo) ListSalePosts(ctx context.Context) ([]model.SalePost, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+salePostCols+" FROM sale_posts WHERE is_for_sale=1 ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]model.SalePost, 0)
	for rows.Next() {
		var p model.SalePost
		if err := rows.Scan(&p.ID, &p.TribeID, &p.GeneticID, &p.Title, &p.Description,
			&p.DiscordContact, &p.IsForSale, &p.PaymentMethod, &p.ItemPaymentID, &p.PriceAmount); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *GeneticRepo) DeleteSalePost(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sale_posts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSalePostNotFound
	}
	return nil
}
