package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{pool: config.Pool}
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (login, username, password, admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		user.Login,
		user.Username,
		user.Password,
		user.Admin,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("login %q: %w", user.Login, domain.ErrConflict)
		}
		return fmt.Errorf("create user: %w", domainDB(err))
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, login, username, password, admin, created_at, updated_at
		FROM users
		WHERE id = $1::uuid
	`

	return r.getOne(ctx, query, id)
}

// GetByLogin retrieves a user by login
func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT id, login, username, password, admin, created_at, updated_at
		FROM users
		WHERE login = $1
	`

	return r.getOne(ctx, query, login)
}

// UpdatePassword replaces a user's password hash
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE users
		SET password = $1, updated_at = NOW()
		WHERE id = $2::uuid
	`

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", domainDB(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Login,
		&user.Username,
		&user.Password,
		&user.Admin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", domainDB(err))
	}

	return &user, nil
}
