package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arktribe/tribestore/internal/model"
)

var (
	ErrAccountNameExists = errors.New("account name already exists")
	ErrShortCodeExists   = errors.New("account short code already exists")
)

// AccountRepo provides data access to the shared game accounts owned by
// tribes. Deleting an account must release any live lease on it first;
// DeleteTx exists so the handler can do that and the row removal in one
// transaction together with LeaseRepo.ReleaseByAccountTx.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// Create inserts an account and populates its ID. Name and short code
// are unique across all tribes.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	a.Name = strings.TrimSpace(a.Name)
	a.ShortCode = strings.TrimSpace(a.ShortCode)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (name, short_code, tribe_id) VALUES (?,?,?)",
		a.Name, a.ShortCode, a.TribeID)
	if err != nil {
		switch {
		case isDuplicateOf(err, "uq_accounts_name"):
			return ErrAccountNameExists
		case isDuplicateOf(err, "uq_accounts_short_code"):
			return ErrShortCodeExists
		case isForeignKeyViolation(err):
			return ErrTribeNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, short_code, tribe_id, created_at FROM accounts WHERE id=? LIMIT 1", id).
		Scan(&a.ID, &a.Name, &a.ShortCode, &a.TribeID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Account{}, ErrAccountNotFound
	}
	return a, err
}

// ListByTribe returns one tribe's accounts ordered by short code.
func (r *AccountRepo) ListByTribe(ctx context.Context, tribeID uint64) ([]model.Account, error) {
	return r.list(ctx,
		"SELECT id, name, short_code, tribe_id, created_at FROM accounts WHERE tribe_id=? ORDER BY short_code", tribeID)
}

// ListAll returns every account (superuser dashboards).
func (r *AccountRepo) ListAll(ctx context.Context) ([]model.Account, error) {
	return r.list(ctx, "SELECT id, name, short_code, tribe_id, created_at FROM accounts ORDER BY short_code")
}

func (r *AccountRepo) Update(ctx context.Context, a model.Account) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET name=?, short_code=? WHERE id=?",
		strings.TrimSpace(a.Name), strings.TrimSpace(a.ShortCode), a.ID)
	if err != nil {
		switch {
		case isDuplicateOf(err, "uq_accounts_name"):
			return ErrAccountNameExists
		case isDuplicateOf(err, "uq_accounts_short_code"):
			return ErrShortCodeExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTx removes the account row within the caller's transaction.
// The caller is expected to have released any active lease first.
func (r *AccountRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM accounts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Account, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.ShortCode, &a.TribeID, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
