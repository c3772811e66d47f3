package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment       string        `mapstructure:"ENV"`
	HTTPAddr          string        `mapstructure:"HTTP_ADDR"`
	DBDSN             string        `mapstructure:"DB_DSN"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	Timezone          string        `mapstructure:"TIMEZONE"`
	LogFile           string        `mapstructure:"LOG_FILE"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`
	CacheTTL          time.Duration `mapstructure:"CACHE_TTL"`
	TelegramToken     string        `mapstructure:"TELEGRAM_TOKEN"`
	TelegramChatID    int64         `mapstructure:"TELEGRAM_CHAT_ID"`
	RateLimitPerMin   int           `mapstructure:"RATE_LIMIT_PER_MIN"`
	MigrationsOnStart bool          `mapstructure:"MIGRATIONS_ON_START"`

	location *time.Location
}

var keys = []string{
	"ENV", "HTTP_ADDR", "DB_DSN", "JWT_SECRET", "TIMEZONE", "LOG_FILE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
	"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "RATE_LIMIT_PER_MIN", "MIGRATIONS_ON_START",
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	// Unmarshal видит только известные ключи, поэтому биндим их явно
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	setDefaults(v)

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_ADDR", ":3000")
	// Секрет mock-аутентификации, в проде переопределяется
	v.SetDefault("JWT_SECRET", "secret-key")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", time.Minute)
	v.SetDefault("RATE_LIMIT_PER_MIN", 200)
	v.SetDefault("MIGRATIONS_ON_START", true)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Environment = normalizeEnv(cfg.Environment)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет обязательные поля и загружает часовой пояс
func (c *Config) Validate() error {
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required but not set")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be positive, got %d", c.RateLimitPerMin)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	return nil
}

// Location возвращает часовой пояс, в котором интерпретируются все времена
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local", "":
		return "development"
	case "prod", "production":
		return "production"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
