package model

import "time"

// User represents a registered user in the database. Username is unique
// and immutable; the password hash is opaque to everything but the
// crypto package.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse echoes the authenticated identity along with the session
// token. The token is also set as a cookie by the handler.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// ProfileResponse represents the identity bound to a presented token.
type ProfileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
