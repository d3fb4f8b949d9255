package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int

	YouTubeAPIKey   string
	JamendoClientID string

	CacheTTL           time.Duration
	UpstreamTimeout    time.Duration
	RateLimitPerSecond int

	LogLevel string
	LogFile  string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvAsIntWithDefault("PORT", 4000),

		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
		JamendoClientID: os.Getenv("JAMENDO_CLIENT_ID"),

		CacheTTL:           time.Duration(getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 600)) * time.Second,
		UpstreamTimeout:    time.Duration(getEnvAsIntWithDefault("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		RateLimitPerSecond: getEnvAsIntWithDefault("RATE_LIMIT_RPS", 100),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnvAsIntWithDefault("REDIS_PORT", 6379),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsIntWithDefault("REDIS_DB", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return errors.New("YOUTUBE_API_KEY is required")
	}

	if c.JamendoClientID == "" {
		return errors.New("JAMENDO_CLIENT_ID is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return errors.New("PORT must be between 1 and 65535")
	}

	if c.CacheTTL <= 0 {
		return errors.New("CACHE_TTL_SECONDS must be positive")
	}

	// 0 disables rate limiting.
	if c.RateLimitPerSecond < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}

	return nil
}

// UseRedis reports whether a shared Redis cache is configured. Without it the
// server falls back to the per-process memory cache.
func (c *Config) UseRedis() bool {
	return c.RedisHost != ""
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c *Config) GetRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
