//go:build integration

package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Harshitk-cp/casebook/internal/config"
	"github.com/Harshitk-cp/casebook/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// StartPostgres runs a disposable Postgres container.
func StartPostgres(ctx context.Context, dbUser, dbPassword, dbName string) (*postgres.PostgresContainer, error) {
	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithDatabase(dbName),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start Postgres container: %w", err)
	}
	return container, nil
}

// NewPostgresDB starts a container, opens it through the ci profile and
// creates the schema. Container and handle are released on cleanup.
func NewPostgresDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := StartPostgres(ctx, "casebook", "casebook", "casebook")
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := database.Open(ctx, config.Profile{
		Name:   config.ProfileCI,
		Client: config.ClientPostgres,
		URL:    url,
		Schema: "public",
		Pool:   config.PoolConfig{MinConns: 1, MaxConns: 4},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}
