package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail      *models.User
	findByEmailErr   error
	createErr        error
	created          *models.User
	setTokenMatched  bool
	setTokenErr      error
	setTokenHash     string
	setTokenExpiry   time.Time
	userByResetToken *models.User
	findByTokenErr   error
	consumed         bool
	consumeErr       error
	consumedHash     string
	consumedPassword string
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	user.CreatedAt = time.Now()
	m.created = user
	return nil
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.userByEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.userByEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) SetResetToken(ctx context.Context, email, tokenHash string, expiry time.Time) (bool, error) {
	if m.setTokenErr != nil {
		return false, m.setTokenErr
	}
	m.setTokenHash = tokenHash
	m.setTokenExpiry = expiry
	return m.setTokenMatched, nil
}

func (m *mockAuthRepo) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	if m.findByTokenErr != nil {
		return nil, m.findByTokenErr
	}
	if m.userByResetToken == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByResetToken, nil
}

func (m *mockAuthRepo) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (bool, error) {
	if m.consumeErr != nil {
		return false, m.consumeErr
	}
	m.consumedHash = tokenHash
	m.consumedPassword = newPasswordHash
	return m.consumed, nil
}

type mockMailer struct {
	emails []string
	tokens []string
}

func (m *mockMailer) EnqueueResetEmail(email, token string) {
	m.emails = append(m.emails, email)
	m.tokens = append(m.tokens, token)
}

func newAuthService(repo *mockAuthRepo, mailer *mockMailer) *AuthService {
	return NewAuthService(repo, mailer, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: 24 * time.Hour,
		ResetTokenTTL:     30 * time.Minute,
	})
}

func TestSignupSuccess(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := newAuthService(repo, &mockMailer{})

	res, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "new@example.com",
		Password: "secret1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(1), res.User.ID)
	assert.Equal(t, models.RoleStudent, res.User.Role)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "secret1", repo.created.PasswordHash)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: &models.User{ID: 1, Email: "dup@example.com"}}
	svc := newAuthService(repo, &mockMailer{})

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "dup@example.com",
		Password: "secret1",
		Role:     models.RoleTeacher,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{})

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "new@example.com",
		Password: "short",
		Role:     models.RoleStudent,
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: 5, Email: "user@example.com", PasswordHash: string(hash), Role: models.RoleTeacher}}
	svc := newAuthService(repo, &mockMailer{})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(5), res.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: 5, Email: "user@example.com", PasswordHash: string(hash)}}
	svc := newAuthService(repo, &mockMailer{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid credentials", appErr.Message)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", appErrors.FromError(err).Message)
}

func TestForgotPasswordKnownEmail(t *testing.T) {
	repo := &mockAuthRepo{setTokenMatched: true}
	mailer := &mockMailer{}
	svc := newAuthService(repo, mailer)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "user@example.com"})
	require.NoError(t, err)
	require.Len(t, mailer.tokens, 1)

	// The stored value must be the digest, never the emailed token.
	assert.Len(t, mailer.tokens[0], 64)
	assert.NotEqual(t, mailer.tokens[0], repo.setTokenHash)
	assert.Equal(t, hashToken(mailer.tokens[0]), repo.setTokenHash)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), repo.setTokenExpiry, time.Minute)
}

func TestForgotPasswordReissueInvalidatesPrior(t *testing.T) {
	repo := &mockAuthRepo{setTokenMatched: true}
	mailer := &mockMailer{}
	svc := newAuthService(repo, mailer)

	require.NoError(t, svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "user@example.com"}))
	require.NoError(t, svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "user@example.com"}))
	require.Len(t, mailer.tokens, 2)
	require.NotEqual(t, mailer.tokens[0], mailer.tokens[1])

	// Only the latest token's digest survives; the first link is dead.
	assert.Equal(t, hashToken(mailer.tokens[1]), repo.setTokenHash)
	assert.NotEqual(t, hashToken(mailer.tokens[0]), repo.setTokenHash)
}

func TestForgotPasswordUnknownEmailStaysQuiet(t *testing.T) {
	repo := &mockAuthRepo{setTokenMatched: false}
	mailer := &mockMailer{}
	svc := newAuthService(repo, mailer)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Empty(t, mailer.emails)
}

func TestValidateResetToken(t *testing.T) {
	repo := &mockAuthRepo{userByResetToken: &models.User{ID: 1}}
	svc := newAuthService(repo, &mockMailer{})

	err := svc.ValidateResetToken(context.Background(), models.ValidateResetTokenRequest{Token: "sometoken"})
	assert.NoError(t, err)
}

func TestValidateResetTokenExpired(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{})

	err := svc.ValidateResetToken(context.Background(), models.ValidateResetTokenRequest{Token: "sometoken"})
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired token", appErrors.FromError(err).Message)
}

func TestResetPasswordConsumesToken(t *testing.T) {
	repo := &mockAuthRepo{consumed: true}
	svc := newAuthService(repo, &mockMailer{})

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "sometoken", NewPassword: "newsecret"})
	require.NoError(t, err)
	assert.Equal(t, hashToken("sometoken"), repo.consumedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.consumedPassword), []byte("newsecret")))
}

func TestResetPasswordSingleUse(t *testing.T) {
	repo := &mockAuthRepo{consumed: false}
	svc := newAuthService(repo, &mockMailer{})

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "sometoken", NewPassword: "newsecret"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid or expired token", appErr.Message)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockMailer{})

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}
