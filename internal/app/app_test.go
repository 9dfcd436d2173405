package app

import (
	"testing"
	"time"

	"go-commission/internal/shared/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("S3_PRESIGN_TTL", "")

	cfg := LoadConfig()

	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, "/media", cfg.MediaBaseURL)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 15*time.Minute, cfg.S3PresignTTL)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("S3_USE_PATH_STYLE", "1")
	t.Setenv("S3_PRESIGN_TTL", "1h")
	t.Setenv("S3_BUCKET", "receipts")

	cfg := LoadConfig()

	assert.Equal(t, "s3", cfg.StorageDriver)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.S3UsePathStyle)
	assert.Equal(t, time.Hour, cfg.S3PresignTTL)
	assert.Equal(t, "receipts", cfg.S3Bucket)
}

func TestNewFileStorage(t *testing.T) {
	local, err := newFileStorage(Config{StorageDriver: "local", MediaRoot: t.TempDir(), MediaBaseURL: "/media"}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, local)

	_, err = newFileStorage(Config{StorageDriver: "s3"}, zap.NewNop())
	assert.Error(t, err)

	_, err = newFileStorage(Config{StorageDriver: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "sales", "commission_lots", "commission_payments", "sales_goals", "outbox_events", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
