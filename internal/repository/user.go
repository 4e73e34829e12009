package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightplan/flightplan/internal/auth"
	"github.com/flightplan/flightplan/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// usernameConstraint is the primary-key constraint on users.username.
// Only violations of this constraint mean the username is taken; a
// collision on the api_key unique index is a fault, not a conflict.
const usernameConstraint = "users_pkey"

// CreateUser inserts a new user and returns the generated API key.
// The key is assigned server-side; callers never choose it.
func (r *Repository) CreateUser(ctx context.Context, username, fullname string) (string, error) {
	apiKey, err := auth.NewKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer r.pool.Release(conn)

	query := `
		INSERT INTO users (username, fullname, api_key)
		VALUES ($1, $2, $3)
	`

	if _, err := conn.Exec(ctx, query, username, fullname, apiKey); err != nil {
		if isUniqueViolation(err, usernameConstraint) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return apiKey, nil
}

// GetUserByAPIKey resolves a presented API key to its user.
// A key matching no row yields ErrUserNotFound, never a fault.
func (r *Repository) GetUserByAPIKey(ctx context.Context, key string) (*model.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Release(conn)

	query := `
		SELECT username, fullname, api_key
		FROM users
		WHERE api_key = $1
	`

	var user model.User
	err = conn.QueryRow(ctx, query, key).Scan(
		&user.Username,
		&user.Fullname,
		&user.APIKey,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by API key: %w", err)
	}

	return &user, nil
}
