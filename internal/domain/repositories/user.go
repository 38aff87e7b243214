package repositories

import (
	"context"

	"lempek/internal/domain/models"
)

// UserRepository defines data access operations for user accounts
type UserRepository interface {
	// Create creates a new user and fills in its ID and timestamps
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByLogin retrieves a user by login
	GetByLogin(ctx context.Context, login string) (*models.User, error)

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// TokenRepository defines data access operations for refresh-token sessions
type TokenRepository interface {
	// Create inserts a session row and fills in its ID, token and timestamps
	Create(ctx context.Context, token *models.UserToken) error

	// Find retrieves a session by (user, refresh token value); a missing or
	// revoked session returns (nil, nil)
	Find(ctx context.Context, userID, refreshToken string) (*models.UserToken, error)

	// ListByUser lists a user's sessions, oldest first
	ListByUser(ctx context.Context, userID string) ([]models.UserToken, error)

	// Delete removes one session row by ID, scoped to the user
	Delete(ctx context.Context, userID, id string) error

	// DeleteByToken removes the session with the given token value along
	// with any of the user's expired sessions
	DeleteByToken(ctx context.Context, userID, refreshToken string) error
}
