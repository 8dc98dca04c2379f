// Package users implements registration, login, and profile lookup.
package users

import "time"

// User is an account record. PasswordHash never leaves the package.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthResponse is the login/register payload.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
