//go:build integration

package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flightplan/flightplan/internal/testutil"
)

// newRepoTestEnv builds a Repository against the DATABASE_URL database
// with a fresh schema. Tests are serialized by a global advisory lock.
func newRepoTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	databaseURL := testutil.RequireEnv(t, "DATABASE_URL")
	ctx := context.Background()

	raw, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect for test setup: %v", err)
	}
	t.Cleanup(raw.Close)

	unlock, err := testutil.AcquireDBLock(ctx, raw)
	if err != nil {
		t.Fatalf("acquire test lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release test lock: %v", err)
		}
	})

	if err := testutil.ResetUsersSchema(ctx, raw); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}
	if err := testutil.ResetFlightPlansSchema(ctx, raw); err != nil {
		t.Fatalf("reset flight_plans schema: %v", err)
	}

	pool, err := NewPool(ctx, PoolConfig{
		ConnectString:  databaseURL,
		AppName:        "repository-test",
		MaxConns:       4,
		MinConns:       1,
		AcquireTimeout: 5 * time.Second,
		TestOnCheckout: true,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return ctx, New(pool)
}
