package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"baby-tracker-go/pkg/logger"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string
	StaticDir   string
	DB          DBConfig
	Auth        AuthConfig
	Invites     InvitesConfig
	RateLimit   RateLimitConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type InvitesConfig struct {
	AppBaseURL string
	TTL        time.Duration
	QRSize     int
}

type RateLimitConfig struct {
	RedisURL    string
	AuthLimit   int
	InviteLimit int
	Window      time.Duration
}

const devJWTSecret = "baby-tracker-dev-secret"

func Load(log logger.Logger, envFile string) (Config, error) {
	if err := loadDotEnv(log, envFile); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:    getEnv("HTTP_PORT", "4000"),
		Env:         getEnv("ENV", "development"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		StaticDir:   getEnv("STATIC_DIR", ""),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "baby_tracker"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   getEnvDuration("AUTH_TOKEN_TTL", 30*24*time.Hour),
			BcryptCost: getEnvInt("AUTH_BCRYPT_COST", 10),
		},
		Invites: InvitesConfig{
			AppBaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
			TTL:        getEnvDuration("INVITE_TTL", 7*24*time.Hour),
			QRSize:     getEnvInt("INVITE_QR_SIZE", 256),
		},
		RateLimit: RateLimitConfig{
			RedisURL:    getEnv("REDIS_URL", ""),
			AuthLimit:   getEnvInt("RATE_LIMIT_AUTH", 20),
			InviteLimit: getEnvInt("RATE_LIMIT_INVITES", 60),
			Window:      getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.Env != "development" && cfg.Env != "test" {
			return Config{}, fmt.Errorf("JWT_SECRET is required when ENV=%s", cfg.Env)
		}
		log.Warn("config: JWT_SECRET not set, using development secret")
		cfg.Auth.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
