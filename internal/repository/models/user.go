package models

import (
	"database/sql"
	"time"
)

// User represents a user row.
type User struct {
	ID                     string         `db:"id"` // ULID
	Email                  string         `db:"email"`
	Username               string         `db:"username"`
	PasswordHash           string         `db:"password_hash"`
	MobileNumber           sql.NullString `db:"mobile_number"`
	RegNumber              sql.NullString `db:"reg_number"`   // DCET registration number
	CollegeName            sql.NullString `db:"college_name"`
	Role                   string         `db:"role"` // "student" or "admin"
	EmailVerified          bool           `db:"email_verified"`
	EmailVerifyToken       sql.NullString `db:"email_verify_token"`
	EmailVerifyTokenExpiry sql.NullTime   `db:"email_verify_token_expiry"`
	ResetToken             sql.NullString `db:"reset_token"`
	ResetTokenExpiry       sql.NullTime   `db:"reset_token_expiry"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
}
