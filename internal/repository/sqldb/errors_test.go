package sqldb

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolationPostgres(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_lower_key"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert user: %w", unique)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, isUniqueViolation(fmt.Errorf("insert user: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})))
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("duplicate key value violates unique constraint")))
}

func TestMigrationsMatchAcrossDialects(t *testing.T) {
	sqliteFiles, err := fs.Glob(migrations, "migrations/sqlite/*.sql")
	require.NoError(t, err)
	postgresFiles, err := fs.Glob(migrations, "migrations/postgres/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, sqliteFiles)

	base := func(paths []string) []string {
		out := make([]string, len(paths))
		for i, p := range paths {
			out[i] = path.Base(p)
		}
		return out
	}
	assert.Equal(t, base(sqliteFiles), base(postgresFiles))

	users, err := fs.ReadFile(migrations, "migrations/postgres/00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(users), "ON users (LOWER(email))")
}
