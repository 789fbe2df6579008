package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresConn  string
	ServerAddress string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	AdminEmail        string
	AdminPasswordHash string

	// Redis, пустой URL - без кэша
	RedisURL string
	CacheTTL time.Duration

	CORSOrigins []string

	RLEnabled     bool
	RLSubmitLimit int
	RLWindow      time.Duration

	SweepOnStart bool

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.PostgresConn = getEnv("POSTGRES_CONN", "")
	cfg.ServerAddress = getEnv("SERVER_ADDRESS", "0.0.0.0:8080")

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "hackhub")
	cfg.TokenTTL = getDuration("TOKEN_TTL", 24*time.Hour)

	cfg.AdminEmail = getEnv("ADMIN_EMAIL", "")
	cfg.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTL = getDuration("CACHE_TTL", 5*time.Minute)

	cfg.CORSOrigins = getList("CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLSubmitLimit = getIntEnv("RL_SUBMIT_LIMIT", 10)
	cfg.RLWindow = getDuration("RL_WINDOW", time.Minute)

	cfg.SweepOnStart = getEnv("SWEEP_ON_START", "true") == "true"

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	if cfg.PostgresConn == "" {
		return nil, fmt.Errorf("POSTGRES_CONN env variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET env variable is not set")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
