package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	"github.com/Muazzam0101/neurolearn-amep/internal/repository"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
)

type authUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	SetResetToken(ctx context.Context, email, tokenHash string, expiry time.Time) (bool, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (bool, error)
}

type resetMailer interface {
	EnqueueResetEmail(email, token string)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	ResetTokenTTL     time.Duration
	Issuer            string
}

// AuthService provides account and password-reset use cases.
type AuthService struct {
	repo      authUserRepository
	mailer    resetMailer
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, mailer resetMailer, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 24 * time.Hour
	}
	if config.ResetTokenTTL <= 0 {
		config.ResetTokenTTL = 30 * time.Minute
	}
	return &AuthService{
		repo:      repo,
		mailer:    mailer,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a new account and returns a signed session token.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.ErrDuplicateAccount
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Concurrent signup for the same email loses the race at the
		// unique index rather than the pre-check.
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrDuplicateAccount
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.logger.Info("account created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))

	return &models.AuthResponse{
		Token: token,
		User:  models.UserInfo{ID: user.ID, Email: user.Email, Role: user.Role},
	}, nil
}

// Login authenticates credentials and returns a signed session token.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return &models.AuthResponse{
		Token: token,
		User:  models.UserInfo{ID: user.ID, Email: user.Email, Role: user.Role},
	}, nil
}

// ForgotPassword issues a reset token when the email belongs to an
// account. The caller always answers with the same generic message, so
// the return value only distinguishes storage failures. Issuing a new
// token overwrites any outstanding one.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	token, tokenHash, err := generateResetToken()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	expiry := s.now().Add(s.config.ResetTokenTTL)
	matched, err := s.repo.SetResetToken(ctx, req.Email, tokenHash, expiry)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !matched {
		// Unknown email. Nothing to send, but the response upstream
		// stays indistinguishable from the happy path.
		s.logger.Info("password reset requested for unknown email")
		return nil
	}

	s.mailer.EnqueueResetEmail(req.Email, token)
	s.logger.Info("password reset token issued", zap.Time("expires_at", expiry))
	return nil
}

// ValidateResetToken checks an emailed token without consuming it.
func (s *AuthService) ValidateResetToken(ctx context.Context, req models.ValidateResetTokenRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	if _, err := s.repo.FindByResetToken(ctx, hashToken(req.Token), s.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrInvalidResetToken
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return nil
}

// ResetPassword consumes a reset token and installs the new password.
// The swap is a single conditional update, so a token can only ever be
// spent once.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	consumed, err := s.repo.ConsumeResetToken(ctx, hashToken(req.Token), string(hash), s.now())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !consumed {
		return appErrors.ErrInvalidResetToken
	}

	s.logger.Info("password reset completed")
	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	issuedAt := s.now()
	claims := &models.JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

// generateResetToken returns the plaintext token and its stored digest.
// 32 random bytes hex-encoded gives 256 bits of entropy; only the SHA-256
// digest ever touches the database.
func generateResetToken() (token, tokenHash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
