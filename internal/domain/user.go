package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type UserRole string

const (
	RoleCitizen UserRole = "CITIZEN"
	RoleStaff   UserRole = "STAFF"
	RoleAdmin   UserRole = "ADMIN"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole validates a role string. An empty string falls back to CITIZEN
// (the documented registration default); any other unknown value is rejected.
func ParseRole(s string) (UserRole, error) {
	if s == "" {
		return RoleCitizen, nil
	}
	role := UserRole(strings.ToUpper(s))
	if !role.IsValid() {
		return "", InvalidInputError("invalid role: %s", s)
	}
	return role, nil
}

// HasRole reports whether the user's role grants the required level.
// ADMIN covers STAFF, STAFF covers CITIZEN.
func (u *User) HasRole(required UserRole) bool {
	switch required {
	case RoleAdmin:
		return u.Role == RoleAdmin
	case RoleStaff:
		return u.Role == RoleStaff || u.Role == RoleAdmin
	case RoleCitizen:
		return u.Role.IsValid()
	default:
		return false
	}
}

type RegisterInput struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name  string  `json:"name" validate:"required,min=2"`
	Phone *string `json:"phone,omitempty"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
