package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// EnsureSchema creates the agentes and casos tables when they are missing.
// Existing tables are left alone; no version history is kept.
func EnsureSchema(ctx context.Context, db *DB) error {
	script, err := schemaFS.ReadFile("schema/" + db.Dialect().Name() + ".sql")
	if err != nil {
		return fmt.Errorf("read %s schema: %w", db.Dialect().Name(), err)
	}

	for _, stmt := range strings.Split(string(script), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.SQL().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	db.logger.Info("schema is ready", zap.String("profile", db.profile))
	return nil
}
