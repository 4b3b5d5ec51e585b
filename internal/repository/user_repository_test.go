package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "reset_token_hash", "reset_token_expiry", "created_at"}).
		AddRow(int64(1), "user@example.com", "hash", string(models.RoleStudent), nil, nil, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, role, reset_token_hash, reset_token_expiry, created_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("user@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Nil(t, user.ResetTokenHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsGeneratedID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at")).
		WithArgs("new@example.com", "hash", string(models.RoleTeacher)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	user := &models.User{Email: "new@example.com", PasswordHash: "hash", Role: models.RoleTeacher}
	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetResetToken(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	expiry := time.Now().Add(30 * time.Minute)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET reset_token_hash = $1, reset_token_expiry = $2 WHERE email = $3")).
		WithArgs("digest", expiry, "user@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := repo.SetResetToken(context.Background(), "user@example.com", "digest", expiry)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetResetTokenUnknownEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	expiry := time.Now().Add(30 * time.Minute)
	mock.ExpectExec("UPDATE users SET reset_token_hash").
		WithArgs("digest", expiry, "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	matched, err := repo.SetResetToken(context.Background(), "ghost@example.com", "digest", expiry)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeResetToken(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectExec("UPDATE users").
		WithArgs("newhash", "digest", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	consumed, err := repo.ConsumeResetToken(context.Background(), "digest", "newhash", now)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeResetTokenAlreadyUsed(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectExec("UPDATE users").
		WithArgs("newhash", "digest", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	consumed, err := repo.ConsumeResetToken(context.Background(), "digest", "newhash", now)
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.False(t, IsUniqueViolation(nil))
}
