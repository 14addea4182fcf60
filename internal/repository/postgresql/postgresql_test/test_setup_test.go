package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated test database connection
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations.
// The test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.MigrateUp(dsn))

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables removes all rows from every table
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"deductions",
		"payrolls",
		"leave_requests",
		"attendance_records",
		"pay_rates",
		"holidays",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

func (t *TestDatabaseSetup) createEmployee(tb testing.TB, first, last string) string {
	tb.Helper()

	var id string
	err := t.DB.QueryRow(context.Background(), `
		INSERT INTO employees (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`, first, last).Scan(&id)
	require.NoError(tb, err)
	return id
}
