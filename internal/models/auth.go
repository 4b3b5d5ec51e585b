package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SignupRequest creates a new account.
type SignupRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role" validate:"required,oneof=student teacher"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest initiates the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ValidateResetTokenRequest checks an emailed token without consuming it.
type ValidateResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResetPasswordRequest consumes a reset token and sets a new password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// AuthResponse is the body returned by signup and login.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// JWTClaims represents the session credential payload.
type JWTClaims struct {
	UserID int64    `json:"userId"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
