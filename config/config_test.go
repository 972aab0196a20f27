package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty secrets dir and a clean environment.
func isolate(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST", "ALLOWED_ORIGINS", "DB_DRIVER", "DB_HOST", "DB_PORT",
		"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "SQLITE_PATH", "REDIS_HOST",
		"REDIS_PORT", "REDIS_URL", "REDIS_PASSWORD", "JWT_SECRET", "CATALOG_FILE",
		"RANKING_CACHE_TTL", "S3_BUCKET_NAME", "AWS_REGION", "PHOTO_UPLOAD_LIMIT",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "chef")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "kitchen")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("RANKING_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "6543", cfg.DBPort)
	assert.Equal(t, "chef", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "kitchen", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.RankingCacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "host=db.internal port=6543 user=chef password=secret dbname=kitchen sslmode=disable", cfg.DSN())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "pantrypal", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 10*time.Minute, cfg.RankingCacheTTL)
	assert.Equal(t, 10, cfg.PhotoUploadLimit)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestSecretsOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	t.Setenv("JWT_SECRET", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestValidateConfig(t *testing.T) {
	isolate(t)
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("RANKING_CACHE_TTL", "soon")
	t.Setenv("ALLOWED_ORIGINS", " , ")

	_, err := LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"SERVER_PORT", "ALLOWED_ORIGINS", "DB_DRIVER", "RANKING_CACHE_TTL"}, fields)
}

func TestProductionRequiresSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
	assert.Contains(t, err.Error(), "db_password")
}

func TestGetEnvironment(t *testing.T) {
	isolate(t)
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
