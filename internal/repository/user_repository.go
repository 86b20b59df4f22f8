package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/waseet/event-social/internal/model"
)

// UserRepo persists users. Soft-deleted rows (deleted_at set) are
// invisible to every query.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, full_name, password_hash, created_at, updated_at, deleted_at"

// Create inserts a user row. The caller supplies the uuid id and the
// already-hashed password.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, full_name, password_hash) VALUES (?,?,?,?)",
		u.ID, u.Email, u.FullName, u.Password)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByEmail fetches a live user by normalized email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? AND deleted_at IS NULL LIMIT 1", email)
}

// FindByID fetches a live user by id.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? AND deleted_at IS NULL LIMIT 1", id)
}

// Update writes full_name and password_hash for an existing user.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET full_name=?, password_hash=?, updated_at=NOW() WHERE id=? AND deleted_at IS NULL",
		u.FullName, u.Password, u.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	var (
		u       model.User
		deleted sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.FullName, &u.Password, &u.CreatedAt, &u.UpdatedAt, &deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if deleted.Valid {
		t := deleted.Time
		u.DeletedAt = &t
	}
	return &u, nil
}

// isDuplicateKey reports whether err is a MySQL unique-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
