package models

import (
	"time"
)

// User is a row of the users table.
type User struct {
	UserID       string  `db:"user_id"`
	Email        string  `db:"email"`
	FullName     string  `db:"full_name"`
	Phone        *string `db:"phone"`
	Role         string  `db:"role"`
	PasswordHash string  `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
