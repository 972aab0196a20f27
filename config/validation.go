package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if len(cfg.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{"ALLOWED_ORIGINS", "at least one origin is required"})
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{"DB_HOST", "required for postgres"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "required for postgres"})
		}
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"db_user", "required for postgres"})
		}
		if env == Production && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"db_password", "secret is required"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "required for sqlite"})
		}
		if env == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not supported in production"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"jwt_secret", "secret is required"})
	} else if env == Production && cfg.JWTSecret == DevJWTSecret {
		errs = append(errs, ValidationError{"jwt_secret", "development secret used in production"})
	}

	if cfg.RankingCacheTTL < 0 {
		errs = append(errs, ValidationError{"RANKING_CACHE_TTL", "must be a non-negative duration"})
	}
	if cfg.PhotoUploadLimit <= 0 {
		errs = append(errs, ValidationError{"PHOTO_UPLOAD_LIMIT", "must be a positive integer"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
