package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration values.
type Config struct {
	// HTTP server
	HTTPAddr         string
	WebhookPath      string `validate:"startswith=/"`
	WebhookRateLimit int    `validate:"gte=0"` // requests per minute per client IP, 0 disables

	// kintone
	KintoneDomain  string        `validate:"required_without=KintoneBaseURL"`
	KintoneBaseURL string        `validate:"omitempty,url"`
	KintoneTimeout time.Duration `validate:"gte=0"` // 0 disables the client timeout
	OrderAppID     string        `validate:"required"`
	OrderAPIToken  string        `validate:"required"`
	ItemAppID      string        `validate:"required"`
	ItemAPIToken   string        `validate:"required"`

	// Redis adjustment journal, disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JournalKey    string
	JournalMaxLen int64 `validate:"gt=0"`

	// Kafka adjustment events, disabled when KafkaBrokers is empty
	KafkaBrokers []string
	KafkaTopic   string

	// Application
	Environment string
	LogLevel    string
}

// New creates a Config populated from environment variables with sensible defaults.
func New() *Config {
	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":3000"),
		WebhookPath:      getEnv("WEBHOOK_PATH", "/webhook"),
		WebhookRateLimit: getEnvInt("WEBHOOK_RATE_LIMIT", 0),
		KintoneDomain:    getEnv("KINTONE_DOMAIN_NAME", ""),
		KintoneBaseURL:   getEnv("KINTONE_BASE_URL", ""),
		KintoneTimeout:   getEnvDuration("KINTONE_TIMEOUT", 30*time.Second),
		OrderAppID:       getEnv("ORDER_TRACKING_APP_ID", ""),
		OrderAPIToken:    getEnv("ORDER_TRACKING_APP_API_TOKEN", ""),
		ItemAppID:        getEnv("ITEMS_MASTER_APP_ID", ""),
		ItemAPIToken:     getEnv("ITEMS_MASTER_APP_API_TOKEN", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		JournalKey:       getEnv("JOURNAL_KEY", "stocksync:adjustments"),
		JournalMaxLen:    int64(getEnvInt("JOURNAL_MAX_LEN", 1000)),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "stock-adjustments"),
		Environment:      getEnv("ENVIRONMENT", "local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if v := getEnv("KAFKA_BROKERS", ""); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}

	return cfg
}

// Validate checks that the kintone settings needed to serve webhooks are present.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// BaseURL returns the kintone origin, honouring KINTONE_BASE_URL when set.
func (c *Config) BaseURL() string {
	if c.KintoneBaseURL != "" {
		return strings.TrimRight(c.KintoneBaseURL, "/")
	}
	return "https://" + c.KintoneDomain + ".kintone.com"
}

// JournalEnabled reports whether adjustments are journaled to Redis.
func (c *Config) JournalEnabled() bool {
	return c.RedisAddr != ""
}

// EventsEnabled reports whether adjustments are published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
