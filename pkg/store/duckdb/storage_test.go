package duckdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesSchema(t *testing.T) {
	tests := []struct {
		name     string
		settings func(t *testing.T) Settings
	}{
		{
			name:     "in memory",
			settings: func(t *testing.T) Settings { return Settings{} },
		},
		{
			name: "file backed",
			settings: func(t *testing.T) Settings {
				return Settings{DbPath: filepath.Join(t.TempDir(), "test.db"), Threads: 2}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := NewDB(tt.settings(t))
			require.NoError(t, err)
			require.NotNil(t, db)
			t.Cleanup(func() {
				if err := db.Close(); err != nil {
					t.Errorf("failed to close database connection: %v", err)
				}
			})

			_, err = db.Exec(
				`INSERT INTO surveillance_records VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), "North", 10.1, 8.2, 900, 765, 45, 17.5,
			)
			require.NoError(t, err)

			var count int
			err = db.QueryRow("SELECT COUNT(*) FROM surveillance_records WHERE region = ?", "North").Scan(&count)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}
