package sqldb

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrate applies every pending migration for the pool's dialect.
func Migrate(ctx context.Context, db *DB) ([]*goose.MigrationResult, error) {
	var (
		dir     string
		dialect goose.Dialect
	)
	switch db.dialect {
	case DialectPostgres:
		dir, dialect = "migrations/postgres", goose.DialectPostgres
	default:
		dir, dialect = "migrations/sqlite", goose.DialectSQLite3
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("apply migrations: %w", err)
	}
	return results, nil
}
