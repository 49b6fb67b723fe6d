package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/comitanigiacomo/dailypulse/internal/adapters/cache"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/media"
	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Enabled reports whether a database was configured at all. Without one the
// API keeps documents in memory.
func (c DBConfig) Enabled() bool {
	return c.User != "" && c.Name != ""
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.Name)
}

type Config struct {
	// DotEnvLoaded reports whether a .env file was read.
	DotEnvLoaded bool

	Env      string
	LogLevel string
	Port     string

	DB    DBConfig
	Redis cache.Config
	// RedisEnabled is false when REDIS_HOST is unset.
	RedisEnabled bool
	DocCacheTTL  time.Duration

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	S3 media.Config

	ReminderHour     int
	ReminderRetry    time.Duration
	ReminderLocation *time.Location

	RateLimit  int
	RateWindow time.Duration
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	foundEnv := godotenv.Load(files...) == nil

	cfg := &Config{
		DotEnvLoaded: foundEnv,

		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),

		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},

		Redis: cache.Config{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnv("JWT_ISSUER", "dailypulse"),

		S3: media.Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          getEnv("S3_REGION", "auto"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		},
	}
	cfg.RedisEnabled = cfg.Redis.Host != ""

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.DocCacheTTL, err = getDuration("DOC_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReminderHour, err = getInt("REMINDER_HOUR", 17); err != nil {
		return nil, err
	}
	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 {
		return nil, fmt.Errorf("config: REMINDER_HOUR must be between 0 and 23, got %d", cfg.ReminderHour)
	}
	if cfg.ReminderRetry, err = getDuration("REMINDER_RETRY", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReminderLocation, err = time.LoadLocation(getEnv("REMINDER_TZ", "Local")); err != nil {
		return nil, fmt.Errorf("config: invalid REMINDER_TZ: %w", err)
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = getDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		if cfg.Production() {
			return nil, fmt.Errorf("config: JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
