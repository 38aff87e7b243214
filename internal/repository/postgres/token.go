package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
)

// PostgresTokenRepository implements the TokenRepository interface
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new session token repository
func NewTokenRepository(config *RepositoryConfig) repositories.TokenRepository {
	return &PostgresTokenRepository{pool: config.Pool}
}

// Create stores a new refresh session
func (r *PostgresTokenRepository) Create(ctx context.Context, token *models.UserToken) error {
	query := `
		INSERT INTO user_tokens (user_id, refresh_token, user_agent, expires_at)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id, created_at
	`

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		token.UserID,
		token.RefreshToken,
		token.UserAgent,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)

	if err != nil {
		return fmt.Errorf("create session: %w", domainDB(err))
	}

	return nil
}

// Find looks up an unexpired session by its refresh token value.
// Returns (nil, nil) when no live session matches.
func (r *PostgresTokenRepository) Find(ctx context.Context, userID, refreshToken string) (*models.UserToken, error) {
	query := `
		SELECT id, user_id, refresh_token, user_agent, expires_at, created_at
		FROM user_tokens
		WHERE user_id = $1::uuid AND refresh_token = $2 AND expires_at > NOW()
	`

	var token models.UserToken
	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query, userID, refreshToken).Scan(
		&token.ID,
		&token.UserID,
		&token.RefreshToken,
		&token.UserAgent,
		&token.ExpiresAt,
		&token.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find session: %w", domainDB(err))
	}

	return &token, nil
}

// ListByUser returns all live sessions for a user, oldest first
func (r *PostgresTokenRepository) ListByUser(ctx context.Context, userID string) ([]models.UserToken, error) {
	query := `
		SELECT id, user_id, refresh_token, user_agent, expires_at, created_at
		FROM user_tokens
		WHERE user_id = $1::uuid AND expires_at > NOW()
		ORDER BY created_at ASC
	`

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", domainDB(err))
	}
	defer rows.Close()

	var tokens []models.UserToken
	for rows.Next() {
		var token models.UserToken
		err := rows.Scan(
			&token.ID,
			&token.UserID,
			&token.RefreshToken,
			&token.UserAgent,
			&token.ExpiresAt,
			&token.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", domainDB(err))
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", domainDB(err))
	}

	return tokens, nil
}

// Delete removes a session by ID, scoped to its owner
func (r *PostgresTokenRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM user_tokens WHERE id = $1::uuid AND user_id = $2::uuid`

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", domainDB(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByToken removes the session holding the given refresh token and
// sweeps out the user's already-expired sessions along the way.
func (r *PostgresTokenRepository) DeleteByToken(ctx context.Context, userID, refreshToken string) error {
	query := `
		DELETE FROM user_tokens
		WHERE user_id = $1::uuid AND (refresh_token = $2 OR expires_at < NOW())
	`

	db := GetExecutor(ctx, r.pool)
	if _, err := db.Exec(ctx, query, userID, refreshToken); err != nil {
		return fmt.Errorf("delete session: %w", domainDB(err))
	}

	return nil
}
