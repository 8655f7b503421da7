package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	AuthTokenSecret     string
	AuthTokenTTLSeconds int
	AuthPublicPaths     string

	PolicyBundlePath string

	PermCacheTTLSeconds int

	LoginRateLimit         int
	LoginRateWindowSeconds int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		PostgresDSN:            os.Getenv("POSTGRES_DSN"),
		LogLevel:               envDefault("LOG_LEVEL", "info"),
		AuthTokenSecret:        os.Getenv("AUTH_TOKEN_SECRET"),
		AuthTokenTTLSeconds:    envIntDefault("AUTH_TOKEN_TTL_SECONDS", 3600),
		AuthPublicPaths:        envDefault("AUTH_PUBLIC_PATHS", "/,/auth/login"),
		PolicyBundlePath:       os.Getenv("POLICY_BUNDLE_PATH"),
		PermCacheTTLSeconds:    envIntDefault("PERM_CACHE_TTL_SECONDS", 60),
		LoginRateLimit:         envIntDefault("LOGIN_RATE_LIMIT", 0),
		LoginRateWindowSeconds: envIntDefault("LOGIN_RATE_WINDOW_SECONDS", 60),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func (c Config) TokenTTL() time.Duration {
	if c.AuthTokenTTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.AuthTokenTTLSeconds) * time.Second
}

func (c Config) PermCacheTTL() time.Duration {
	if c.PermCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.PermCacheTTLSeconds) * time.Second
}

func (c Config) LoginRateWindow() time.Duration {
	if c.LoginRateWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.LoginRateWindowSeconds) * time.Second
}

// PublicPaths returns the exact-match allow-list of paths that bypass
// authentication.
func (c Config) PublicPaths() []string {
	parts := strings.Split(c.AuthPublicPaths, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
