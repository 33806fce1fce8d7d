package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(104857600), cfg.Server.MaxUploadSize)
	assert.Equal(t, "elearning", cfg.Database.Name)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "/uploads", cfg.Storage.PublicPrefix)
	assert.Equal(t, "uploads", cfg.Storage.Local.Root)
	assert.Equal(t, "sha256", cfg.Auth.PasswordHash)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "6543")
	t.Setenv("STORAGE_PROVIDER", "minio")
	t.Setenv("STORAGE_MINIO_ENDPOINT", "objects:9000")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "minio", cfg.Storage.Provider)
	assert.Equal(t, "objects:9000", cfg.Storage.MinIO.Endpoint)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "lms",
		Password: "pw",
		Name:     "elearning",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://lms:pw@localhost:5432/elearning?sslmode=disable", c.DSN())
}
