// Package domain holds DTOs for auth http and service contracts
package domain

import "time"

// LoginInput carries the credentials posted to login
type LoginInput struct {
	Username string `json:"username" validate:"required,min=1,max=64" example:"admin"`
	Password string `json:"password" validate:"required,min=1,max=128" example:"admin"`
}

// Identity is the signed in user
type Identity struct {
	Username string `json:"username" example:"admin"`
	Role     string `json:"role"     example:"admin"`
}

// Session is an opaque bearer token bound to an identity
type Session struct {
	Token     string    `json:"token"      example:"0b6c1f7e-6f4e-4d0b-9d8a-1b6f3c2a9e10"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at" example:"2025-09-03T13:00:00Z"`
}

// LogoutResult reports whether a session was removed
type LogoutResult struct {
	LoggedOut bool `json:"logged_out" example:"true"`
}
