package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "User"
	RoleStaff UserRole = "Staff"
	RoleAdmin UserRole = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsStaff is true for Staff and Admin.
func (r UserRole) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	FullName     *string  `db:"full_name"`
	Phone        *string  `db:"phone"`
	AvatarURL    *string  `db:"avatar_url"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}

type UserPreference struct {
	UserID             uuid.UUID `db:"user_id"`
	FavoriteGenres     []string  `db:"favorite_genres"`
	Language           string    `db:"language"`
	EmailNotifications bool      `db:"email_notifications"`
	Theme              string    `db:"theme"`
	UpdatedAt          time.Time `db:"updated_at"`
}
