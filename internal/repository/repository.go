package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Repository translates domain operations into single parameterized
// statements. Every operation borrows one connection from the pool for
// its duration and releases it on all exit paths.
type Repository struct {
	pool *Pool
}

// New creates a Repository on top of an existing pool.
func New(pool *Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the underlying connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// isUniqueViolation reports whether err is a unique-constraint violation
// on the named constraint. Matching the constraint keeps collisions on
// unrelated unique columns from being mistaken for one another.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
