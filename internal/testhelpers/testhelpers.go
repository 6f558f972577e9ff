package testhelpers

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/casebook/internal/config"
	"github.com/Harshitk-cp/casebook/internal/database"
	"go.uber.org/zap"
)

// SQLiteProfile returns a test profile backed by an in-memory database.
func SQLiteProfile() config.Profile {
	return config.Profile{
		Name:   config.ProfileTest,
		Client: config.ClientSQLite,
		URL:    ":memory:",
	}
}

// NewTestDB returns an in-memory SQLite database with the agentes and casos
// tables created. The database is automatically closed when the test
// completes.
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, SQLiteProfile(), zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	return db
}

// MustExec runs a statement written with ? placeholders against db and
// fails the test on error.
func MustExec(t *testing.T, db *database.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.SQL().ExecContext(context.Background(), db.Dialect().Rebind(query), args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// Count returns the number of rows in table.
func Count(t *testing.T, db *database.DB, table string) int {
	t.Helper()
	var n int
	if err := db.SQL().QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
