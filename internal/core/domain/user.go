package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// IsValidRole reports whether role is one of the two account roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// User models an account holder.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Credential Credential `json:"-"`
	Role       string     `json:"role"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Identity returns the authenticated view of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Identity is the caller resolved from a bearer token. It is passed
// explicitly to every guarded operation.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanonicalID returns the stored form of a record id. Object ids are hex and
// the store parses either case, so comparisons use the lowercase form.
func CanonicalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// NormalizeEmail lowercases and trims an email address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
