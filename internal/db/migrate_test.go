package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"laundry-be/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE users (id int);
ALTER TABLE users ADD COLUMN name text;

-- +migrate Down
DROP TABLE users;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE users")
		assert.Contains(t, up, "ALTER TABLE users")
		assert.NotContains(t, up, "DROP TABLE users")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE users")
		assert.NotContains(t, down, "CREATE TABLE users")
	})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"migrations/0002_more.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE more (id int);\n-- +migrate Down\nDROP TABLE more;\n")},
		"migrations/0001_init.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE test (id int);\n-- +migrate Down\nDROP TABLE test;\n")},
	}
}

func TestRunMigrationsUp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// 0001 already applied
	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs("0001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs("0002_more.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE more").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("0002_more.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = runMigrations(context.Background(), db, testFS(), "up")

	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsDown(t *testing.T) {
	t.Run("RollsBackLatest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0002_more.sql"))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE more").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0002_more.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = runMigrations(context.Background(), db, testFS(), "down")

		assert.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NothingApplied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnError(sql.ErrNoRows)

		assert.NoError(t, runMigrations(context.Background(), db, testFS(), "down"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FailedBodyRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_init.sql"))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE test").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = runMigrations(context.Background(), db, testFS(), "down")

		assert.ErrorIs(t, err, assert.AnError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunMigrations_UnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = runMigrations(context.Background(), db, testFS(), "sideways")
	assert.ErrorContains(t, err, "unknown mode")
}

// openTestDB returns a migrated, seeded SQLite database in a temp dir.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "laundry.db")}
	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db, "up"))
	require.NoError(t, Seed(context.Background(), db))
	return db
}

func TestMigrateAndSeed_SQLite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	counts := map[string]int{
		"users":             2,
		"services":          10,
		"inventory":         10,
		"members":           1,
		"service_materials": 33,
		"orders":            0,
	}
	for table, want := range counts {
		var got int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&got))
		assert.Equal(t, want, got, table)
	}

	t.Run("Idempotent", func(t *testing.T) {
		require.NoError(t, Migrate(ctx, db, "up"))
		require.NoError(t, Seed(ctx, db))

		var users int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users))
		assert.Equal(t, 2, users)
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO members (id, name, phone, join_date, expiry_date) VALUES ($1, $2, $3, $4, $5)`,
			"M-X", "Dup", "081234567890", "2025-01-01", "2026-01-01")
		assert.True(t, IsUniqueViolation(err))
		assert.False(t, IsForeignKeyViolation(err))
	})

	t.Run("ForeignKeyViolation", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO service_materials (id, service_id, inventory_id, quantity, unit) VALUES ($1, $2, $3, $4, $5)`,
			"SM-X", "SV-404", "INV-001", "1", "kg")
		assert.True(t, IsForeignKeyViolation(err))
	})

	t.Run("Down", func(t *testing.T) {
		require.NoError(t, Migrate(ctx, db, "down"))

		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
		assert.Error(t, err)
	})
}

func TestIsUniqueViolation_Unrelated(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(assert.AnError))
}

func TestRequireAffected(t *testing.T) {
	notFound := errors.New("missing")
	assert.ErrorIs(t, RequireAffected(sqlmock.NewResult(0, 0), notFound), notFound)
	assert.NoError(t, RequireAffected(sqlmock.NewResult(0, 1), notFound))
	assert.ErrorIs(t, RequireAffected(sqlmock.NewErrorResult(assert.AnError), notFound), assert.AnError)
}
