package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/db?sslmode=disable", "pgx5://u:p@localhost:5432/db?sslmode=disable"},
		{"postgresql://u:p@db/app", "pgx5://u:p@db/app"},
		{"pgx5://u:p@db/app", "pgx5://u:p@db/app"},
	}

	for _, tt := range tests {
		if got := migrationURL(tt.in); got != tt.want {
			t.Errorf("migrationURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}
