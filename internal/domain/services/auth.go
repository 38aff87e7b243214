package services

import (
	"context"

	"lempek/internal/domain/models"
)

// TokenPair carries the signed cookie values issued at login/refresh
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService handles account lifecycle and session tokens. The storage core
// never authenticates; it only ever sees the Principal this service (via the
// middleware) resolves.
type AuthService interface {
	// Register creates a user with a bcrypt-hashed password and a
	// root-namespace full grant, then opens a session
	Register(ctx context.Context, req *RegisterRequest, userAgent *string) (*models.Principal, *TokenPair, error)

	// Login verifies credentials and opens a session
	Login(ctx context.Context, req *LoginRequest, userAgent *string) (*models.Principal, *TokenPair, error)

	// Refresh validates a refresh token against its session row and issues a
	// fresh access token
	Refresh(ctx context.Context, refreshToken string) (*models.Principal, string, error)

	// Logout revokes the session behind the refresh token; unknown tokens
	// are ignored so logout never fails visibly
	Logout(ctx context.Context, refreshToken string)

	// Sessions lists the principal's refresh-token sessions
	Sessions(ctx context.Context, principal *models.Principal) ([]models.UserToken, error)

	// RevokeSession removes one of the principal's sessions by ID
	RevokeSession(ctx context.Context, principal *models.Principal, id string) error

	// ChangePassword verifies the current password and stores a new hash
	ChangePassword(ctx context.Context, principal *models.Principal, req *ChangePasswordRequest) error
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
