package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"inventory/config"
	"inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenSQLiteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "inventory.db")

	gdb, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: path}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { Close(gdb) })

	_, err = os.Stat(path)
	assert.NoError(t, err)

	require.NoError(t, Migrate(gdb))
	repo := models.NewCategoriesRepository(gdb)
	require.NoError(t, repo.CreateCategory(context.Background(), &models.Category{Name: "Dairy", Description: "Milk"}))

	total, err := repo.CountCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestOpenRejectsMongoDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: config.DriverMongo}, zap.NewNop())
	assert.Error(t, err)
}
