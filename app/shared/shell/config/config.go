package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Supported values of LIBRARY_DB_DRIVER.
const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLX     = "sqlx"
	DriverSQLite   = "sqlite3"
)

// Environment variable names.
const (
	EnvDBDriver    = "LIBRARY_DB_DRIVER"
	EnvPostgresDSN = "LIBRARY_POSTGRES_DSN"
	EnvSQLitePath  = "LIBRARY_SQLITE_PATH"
	EnvHTTPAddr    = "LIBRARY_HTTP_ADDR"
	EnvLogLevel    = "LIBRARY_LOG_LEVEL"
	EnvCORSOrigins = "LIBRARY_CORS_ORIGINS"
)

const (
	defaultDriver     = DriverSQLite
	defaultSQLitePath = "library.db"
	defaultHTTPAddr   = ":8080"
)

var (
	ErrUnsupportedDriver   = errors.New("unsupported database driver")
	ErrMissingPostgresDSN  = errors.New(EnvPostgresDSN + " must be set for postgres drivers")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrLoadingDotEnvFailed = errors.New("loading .env file failed")
)

// Config holds the runtime settings of the library service.
type Config struct {
	DBDriver    string
	PostgresDSN string
	SQLitePath  string
	HTTPAddr    string
	LogLevel    slog.Level
	CORSOrigins []string
}

// Load reads the configuration from the environment.
// Values from the given .env files (default ".env") fill in variables that are not set; missing files are ignored.
func Load(dotEnvFiles ...string) (Config, error) {
	if len(dotEnvFiles) == 0 {
		dotEnvFiles = []string{".env"}
	}

	for _, file := range dotEnvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadingDotEnvFailed, err)
		}
	}

	cfg := Config{
		DBDriver:    strings.ToLower(envOr(EnvDBDriver, defaultDriver)),
		PostgresDSN: os.Getenv(EnvPostgresDSN),
		SQLitePath:  envOr(EnvSQLitePath, defaultSQLitePath),
		HTTPAddr:    envOr(EnvHTTPAddr, defaultHTTPAddr),
		CORSOrigins: splitList(os.Getenv(EnvCORSOrigins)),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(envOr(EnvLogLevel, "info"))); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the driver selection and its connection settings.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPGX, DriverPostgres, DriverSQLX:
		if c.PostgresDSN == "" {
			return ErrMissingPostgresDSN
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DBDriver)
	}

	return nil
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}

	return fallback
}

func splitList(raw string) []string {
	var list []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}
