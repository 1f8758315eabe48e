package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hrdash-service/service/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestAutoMigrateAndSeed(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable(&models.EmployeeRecord{}))
	assert.True(t, db.Migrator().HasTable(&models.DatasetLoad{}))

	require.NoError(t, InitializeData(db))
	require.NoError(t, InitializeData(db))

	var records []models.EmployeeRecord
	require.NoError(t, db.Order("row_num").Find(&records).Error)
	require.Len(t, records, 7)
	assert.Equal(t, "Alice Johnson", records[0].Name)
	assert.NotEmpty(t, records[0].ID)
	assert.True(t, records[1].Terminated)
}
