// Package config
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIHost      string
	BidFeedWsURL string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	RedisDB       int

	HTTPTimeout time.Duration
	PageSize    int

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	_ = godotenv.Load()

	// Logs
	logLevel := getEnv("LOG_LEVEL", "info")
	logFormat := getEnv("LOG_FORMAT", "text")

	// Remote API
	apiHost := getEnv("API_HOST", "http://localhost:8080")
	bidFeedWsURL := getEnv("BID_FEED_WS_URL", "ws://localhost:8080/ws/bids")

	httpTimeout := 15 * time.Second
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil && duration > 0 {
			httpTimeout = duration
		}
	}

	pageSize := 12
	if raw := os.Getenv("PAGE_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}

	// Session store
	redisAddress := getEnv("REDIS_ADDR", "localhost:6379")
	redisUsername := getEnv("REDIS_USERNAME", "")
	redisPassword := getEnv("REDIS_PASSWORD", "")
	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			redisDB = n
		}
	}

	return &Config{
		LogLevel:  logLevel,
		LogFormat: logFormat,

		APIHost:      apiHost,
		BidFeedWsURL: bidFeedWsURL,

		RedisAddress:  redisAddress,
		RedisUsername: redisUsername,
		RedisPassword: redisPassword,
		RedisDB:       redisDB,

		HTTPTimeout: httpTimeout,
		PageSize:    pageSize,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
