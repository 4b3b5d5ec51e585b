package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
)

// UserRepository provides database access for accounts and the
// password-reset token lifecycle.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, reset_token_hash, reset_token_expiry, created_at`

// Create inserts a new account and fills in the generated id and
// creation timestamp.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail returns a user by email address, exact match.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// SetResetToken stores the hash and expiry of a freshly issued reset
// token against the account with the given email. A single UPDATE keyed
// by email keeps concurrent requests last-writer-wins: the losing token
// simply never validates. Returns false when no such account exists.
func (r *UserRepository) SetResetToken(ctx context.Context, email, tokenHash string, expiry time.Time) (bool, error) {
	const query = `UPDATE users SET reset_token_hash = $1, reset_token_expiry = $2 WHERE email = $3`
	res, err := r.db.ExecContext(ctx, query, tokenHash, expiry, email)
	if err != nil {
		return false, fmt.Errorf("set reset token: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set reset token rows: %w", err)
	}
	return rows > 0, nil
}

// FindByResetToken returns the user holding an unexpired token with the
// given hash. Pure query, no mutation.
func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE reset_token_hash = $1 AND reset_token_expiry > $2 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, tokenHash, now); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by reset token: %w", err)
	}
	return &user, nil
}

// ConsumeResetToken atomically replaces the password and clears the reset
// columns, conditioned on the token still matching and being unexpired.
// The single conditional UPDATE guarantees at most one of two concurrent
// submissions of the same token succeeds. Returns false when the token
// no longer matches or has expired.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (bool, error) {
	const query = `UPDATE users
		SET password_hash = $1, reset_token_hash = NULL, reset_token_expiry = NULL
		WHERE reset_token_hash = $2 AND reset_token_expiry > $3`
	res, err := r.db.ExecContext(ctx, query, newPasswordHash, tokenHash, now)
	if err != nil {
		return false, fmt.Errorf("consume reset token: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume reset token rows: %w", err)
	}
	return rows > 0, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (duplicate email on signup).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
