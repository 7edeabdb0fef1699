package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/bujo-tasks/internal/config"
	"github.com/yukikurage/bujo-tasks/internal/models"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBPath: ":memory:"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "bujo.db")}
	require.NoError(t, Connect(cfg))
	t.Cleanup(func() {
		if sqlDB, err := GetDB().DB(); err == nil {
			sqlDB.Close()
		}
		SetDB(nil)
	})

	require.NoError(t, Migrate())
	for _, m := range Models() {
		assert.True(t, GetDB().Migrator().HasTable(m))
	}
	assert.True(t, GetDB().Migrator().HasColumn(&models.Task{}, "reminder_before"))
}
