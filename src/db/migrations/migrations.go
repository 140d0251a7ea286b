// Package migrations applies the embedded Postgres schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"finpal-server/src/logger"

	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schema embed.FS

// Files returns the migration file names in apply order.
func Files() ([]string, error) {
	names, err := fs.Glob(schema, "schema/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Apply executes every migration in order. Each file is idempotent, so Apply
// is safe to run on every start.
func Apply(ctx context.Context, db *sql.DB) error {
	names, err := Files()
	if err != nil {
		return err
	}
	for _, name := range names {
		body, err := schema.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		logger.Get().Info("migration applied", zap.String("file", name))
	}
	return nil
}
