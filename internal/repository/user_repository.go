package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
	ErrUserNotFound   = errors.New("user not found")
)

const userCols = "id, username, email, password_hash, role, tribe_id, is_active, is_superuser, created_at, updated_at"

// Create inserts a user and returns its ID. The role defaults to "user"
// when empty; tribe may be nil for tribe-less users.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string, tribeID *uint64, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role, tribe_id) VALUES (?,?,?,?,?)",
		username, email, hash, role, tribeID)
	if err != nil {
		switch {
		case isDuplicateOf(err, "uq_users_username"):
			return 0, ErrUsernameExists
		case isDuplicateOf(err, "uq_users_email"):
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.get(ctx, "SELECT "+userCols+" FROM users WHERE username=? LIMIT 1", strings.TrimSpace(username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id)
}

// ListAll returns every user (superuser view).
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userCols+" FROM users ORDER BY id")
}

// ListByTribe returns the users of one tribe (admin view).
func (r *UserRepo) ListByTribe(ctx context.Context, tribeID uint64) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userCols+" FROM users WHERE tribe_id=? ORDER BY id", tribeID)
}

// Update rewrites the mutable profile fields of a user.
func (r *UserRepo) Update(ctx context.Context, id uint64, role string, tribeID *uint64, isActive bool) error {
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, tribe_id=?, is_active=? WHERE id=?",
		role, tribeID, isActive, id)
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

// Delete removes a user. Refresh tokens cascade in the schema; a user
// currently holding a lease cannot be deleted and reports ErrConflict.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		if isRestrictedDelete(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) get(ctx context.Context, q string, args ...interface{}) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, q, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.TribeID,
		&u.IsActive, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *UserRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.TribeID,
			&u.IsActive, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
