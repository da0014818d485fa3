package helpers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once in main and handed to every constructor.
type Config struct {
	GoEnv string
	Port  string

	StoreDriver      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MigrationsDir    string
	SQLitePath       string

	LedgerLockTimeout time.Duration

	JWTSecret     string
	AdminTokenTTL time.Duration
	AllowedOrigin string

	NatsURL     string
	NatsStream  string
	NatsSubject string

	SeedAdminEmail    string
	SeedAdminPassword string
}

// LoadConfig reads the process environment. Callers that want a .env file
// import github.com/joho/godotenv/autoload before calling it.
func LoadConfig() (Config, error) {
	cfg := Config{
		GoEnv:             getEnvOrDefault("GO_ENV", "dev"),
		Port:              getEnvOrDefault("PORT", "3000"),
		StoreDriver:       strings.ToLower(getEnvOrDefault("STORE_DRIVER", STORE_DRIVER_POSTGRES)),
		PostgresHost:      os.Getenv("POSTGRES_HOST"),
		PostgresPort:      getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser:      os.Getenv("POSTGRES_USER"),
		PostgresPassword:  os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:        os.Getenv("POSTGRES_DB"),
		PostgresSSLMode:   getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		MigrationsDir:     getEnvOrDefault("POSTGRES_MIGRATIONS_DIR", "migrations"),
		SQLitePath:        getEnvOrDefault("SQLITE_PATH", "booking.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AllowedOrigin:     getEnvOrDefault("ALLOWED_ORIGIN", "https://racquetek.com"),
		NatsURL:           os.Getenv("NATS_URL"),
		NatsStream:        getEnvOrDefault("NATS_REGISTRATION_STREAM_NAME", "REGISTRATIONS"),
		NatsSubject:       getEnvOrDefault("NATS_REGISTRATION_STREAM_SUBJECT", "registrations.changed"),
		SeedAdminEmail:    getEnvOrDefault("SEED_ADMIN_EMAIL", "admin@racquetek.com"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	var err error
	if cfg.LedgerLockTimeout, err = getDurationOrDefault("LEDGER_LOCK_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AdminTokenTTL, err = getDurationOrDefault("ADMIN_TOKEN_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}

	switch cfg.StoreDriver {
	case STORE_DRIVER_POSTGRES:
		if cfg.PostgresHost == "" || cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("missing required environment variables for Postgres")
		}
	case STORE_DRIVER_SQLITE:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProd() {
			return Config{}, fmt.Errorf("JWT_SECRET is required in prod")
		}
		cfg.JWTSecret = "dev-only-secret"
	}

	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == GO_PROD_ENV
}

// SeedEnabled reports whether POST /api/seed is exposed.
func (c Config) SeedEnabled() bool {
	return !c.IsProd()
}

// PostgresDSN is the URL form used by pgx.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSLMode)
}

// PostgresConnString is the key/value form used by lib/pq for migrations.
func (c Config) PostgresConnString() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresUser, c.PostgresPassword, c.PostgresSSLMode)
}

// IsLambda reports whether the binary runs inside AWS Lambda.
func IsLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	// bare integers are milliseconds
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
