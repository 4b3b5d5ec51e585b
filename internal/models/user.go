package models

import "time"

// UserRole enumerates account roles. Values match the wire contract.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// Valid reports whether the role is one of the accepted values.
func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User represents an account stored in the users table.
//
// ResetTokenHash holds the SHA-256 hex digest of the outstanding
// password-reset token; the plaintext is never persisted. Both reset
// columns are set and cleared together: a hash without an expiry (or the
// reverse) never occurs. Expired tokens are not purged; they simply fail
// validation until overwritten by the next reset request.
type User struct {
	ID               int64      `db:"id" json:"id"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	Role             UserRole   `db:"role" json:"role"`
	ResetTokenHash   *string    `db:"reset_token_hash" json:"-"`
	ResetTokenExpiry *time.Time `db:"reset_token_expiry" json:"-"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}
