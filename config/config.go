package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is the signing secret used when none is configured outside
// production.
const DevJWTSecret = "pantrypal-dev-secret"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Recipe catalog seed file. Empty means the embedded default catalog.
	CatalogFile string

	// Ranking cache lifetime. Zero disables the cache.
	RankingCacheTTL time.Duration

	// Journal photo storage
	S3Bucket  string
	AWSRegion string

	// Photo uploads allowed per user per minute
	PhotoUploadLimit int
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads everything from environment variables
func loadCIConfig(cfg *Config) error {
	loadCommon(cfg, getEnv)

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
	}
	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = getEnv("TEST_JWT_SECRET", getEnv("JWT_SECRET", DevJWTSecret))
	cfg.RedisPassword = getEnv("TEST_REDIS_PASSWORD", os.Getenv("REDIS_PASSWORD"))
	return nil
}

// loadDevConfig prefers Docker secrets when present and falls back to the
// environment, then to local defaults.
func loadDevConfig(cfg *Config) {
	loadCommon(cfg, secretOrEnv)

	cfg.DBPassword = secretOrEnv("DB_PASSWORD", "postgres")
	cfg.RedisPassword = secretOrEnv("REDIS_PASSWORD", "")
	cfg.JWTSecret = secretOrEnv("JWT_SECRET", DevJWTSecret)
}

// loadProdConfig reads sensitive values from Docker secrets only
func loadProdConfig(cfg *Config) {
	loadCommon(cfg, secretOrEnv)

	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
}

func loadCommon(cfg *Config, get func(key, def string) string) {
	cfg.ServerPort = get("SERVER_PORT", "8080")
	cfg.ServerHost = get("SERVER_HOST", "0.0.0.0")
	cfg.AllowedOrigins = splitList(get("ALLOWED_ORIGINS", "http://localhost:3000"))

	cfg.DBDriver = strings.ToLower(get("DB_DRIVER", "postgres"))
	cfg.DBHost = get("DB_HOST", "localhost")
	cfg.DBPort = get("DB_PORT", "5432")
	cfg.DBUser = get("DB_USER", "postgres")
	cfg.DBName = get("DB_NAME", "pantrypal")
	cfg.DBSSLMode = get("DB_SSL_MODE", "disable")
	cfg.SQLitePath = get("SQLITE_PATH", "pantrypal.db")

	cfg.RedisHost = get("REDIS_HOST", "localhost")
	cfg.RedisPort = get("REDIS_PORT", "6379")
	cfg.RedisURL = get("REDIS_URL", "")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.CatalogFile = get("CATALOG_FILE", "")
	cfg.RankingCacheTTL = parseDuration(get("RANKING_CACHE_TTL", "10m"))

	cfg.S3Bucket = get("S3_BUCKET_NAME", "")
	cfg.AWSRegion = get("AWS_REGION", "us-east-1")
	cfg.PhotoUploadLimit = parseInt(get("PHOTO_UPLOAD_LIMIT", "10"))
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// secretOrEnv looks up the lowercased key as a Docker secret, then the
// environment.
func secretOrEnv(key, def string) string {
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return getEnv(key, def)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDuration returns -1 for garbage so validation can report it.
func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return -1
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
