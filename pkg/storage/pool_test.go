package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()

	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxIdleTime)
}

func TestEmbeddedPoolConfig(t *testing.T) {
	cfg := EmbeddedPoolConfig()

	assert.Equal(t, 1, cfg.MaxOpenConns)
	assert.Equal(t, 1, cfg.MaxIdleConns)
	assert.Zero(t, cfg.ConnMaxLifetime)
	assert.Zero(t, cfg.ConnMaxIdleTime)
}

func TestPoolOptions_Apply(t *testing.T) {
	cfg := DefaultPoolConfig()

	WithConns(8, 3).applyPool(&cfg)
	WithLifetimes(time.Hour, time.Minute).applyPool(&cfg)

	assert.Equal(t, PoolConfig{
		MaxOpenConns:    8,
		MaxIdleConns:    3,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute,
	}, cfg)
}

func TestConfigurePool_AppliesToSQLDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg, err := ConfigurePool(db, WithConns(3, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxOpenConns)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
}

func TestNewGormStorageWithPool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := NewGormStorageWithPool(db, WithPoolConfig(EmbeddedPoolConfig()))
	require.NoError(t, err)
	require.NotNil(t, store)
}
