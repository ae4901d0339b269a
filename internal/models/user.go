package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Privileged reports whether the role may perform staff operations
// (status transitions, order messages, capacity changes, menu edits).
// Staff and admin are equally privileged.
func (r Role) Privileged() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User is a registered account. PasswordHash and Salt never leave the
// process; handlers expose Public() views only.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	RollNumber   string    `json:"rollNumber"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the view of a user returned by the auth endpoints.
type PublicUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	RollNumber string `json:"rollNumber,omitempty"`
}

// Public returns the externally visible view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Role:       u.Role,
		Email:      u.Email,
		Phone:      u.Phone,
		RollNumber: u.RollNumber,
	}
}

// Session ties an issued bearer token to a user for the process lifetime.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
