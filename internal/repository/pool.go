// Package repository provides database access for users and flight plans.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPoolExhausted indicates no connection became available within the
// configured acquire timeout.
var ErrPoolExhausted = errors.New("connection pool exhausted")

// PoolConfig holds settings for the connection pool.
type PoolConfig struct {
	// ConnectString is a postgres URL or DSN.
	ConnectString string
	// AppName is attached to every connection as application_name.
	AppName string
	// MaxConns bounds concurrent store usage. Zero keeps the driver default.
	MaxConns int32
	// MinConns is the number of connections kept warm. Zero keeps the driver default.
	MinConns int32
	// AcquireTimeout is the longest a caller waits for a connection when
	// the pool is at capacity before failing with ErrPoolExhausted.
	AcquireTimeout time.Duration
	// TestOnCheckout validates liveness before handing out a connection.
	TestOnCheckout bool

	Logger *slog.Logger
}

// Pool owns a bounded set of live Postgres connections and hands them
// out one per operation. It is safe for concurrent use.
type Pool struct {
	inner          *pgxpool.Pool
	acquireTimeout time.Duration
	testOnCheckout bool
	logger         *slog.Logger
}

// NewPool creates a connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connect string: %w", err)
	}

	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}

	inner, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := inner.Ping(ctx); err != nil {
		inner.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		inner:          inner,
		acquireTimeout: cfg.AcquireTimeout,
		testOnCheckout: cfg.TestOnCheckout,
		logger:         logger,
	}, nil
}

// Acquire returns an idle validated connection, waiting at most the
// acquire timeout when the pool is at capacity. The connection must be
// returned with Release exactly once.
func (p *Pool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, err := p.inner.Acquire(acquireCtx)
	if err != nil {
		// Only the pool's own acquire timeout maps to exhaustion; a
		// deadline or cancellation inherited from the caller's context
		// propagates as a plain acquire failure.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrPoolExhausted
		}
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	if p.testOnCheckout {
		if err := conn.Ping(acquireCtx); err != nil {
			p.logger.Debug("discarding dead connection", "error", err)
			// Close the underlying connection so Release destroys it
			// instead of returning it to the idle set.
			_ = conn.Conn().Close(acquireCtx)
			conn.Release()
			return nil, fmt.Errorf("connection failed liveness check: %w", err)
		}
	}

	p.logger.Debug("connection checked out",
		"acquired", p.inner.Stat().AcquiredConns(),
		"total", p.inner.Stat().TotalConns(),
	)

	return conn, nil
}

// Release returns a connection to the idle set for reuse.
func (p *Pool) Release(conn *pgxpool.Conn) {
	conn.Release()
	p.logger.Debug("connection returned",
		"acquired", p.inner.Stat().AcquiredConns(),
		"total", p.inner.Stat().TotalConns(),
	)
}

// Ping checks database connectivity.
func (p *Pool) Ping(ctx context.Context) error {
	return p.inner.Ping(ctx)
}

// Stat returns a snapshot of pool statistics.
func (p *Pool) Stat() *pgxpool.Stat {
	return p.inner.Stat()
}

// Close closes all connections in the pool.
func (p *Pool) Close() {
	p.inner.Close()
}
