package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Driver string // sqlite or postgres
	URL    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type GenerationConfig struct {
	Provider        string // anthropic, openai or remote
	Model           string
	MaxTokens       int64
	AnthropicAPIKey string
	OpenAIAPIKey    string
	Endpoint        string
}

type AuthConfig struct {
	Mode      string // jwt or insecure
	JWTSecret string
}

type KafkaConfig struct {
	Brokers string
	Topic   string
}

type Config struct {
	Env                string
	LogLevel           string
	GRPCPort           string
	HTTPPort           string
	Database           DatabaseConfig
	Redis              RedisConfig
	Generation         GenerationConfig
	Auth               AuthConfig
	Kafka              KafkaConfig
	Compression        string
	HTMLRenderSchedule string
}

func defaults(v *viper.Viper) {
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GRPC_PORT", "4020")
	v.SetDefault("HTTP_PORT", "4021")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", ".tmp/db/prd.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("GENERATION_PROVIDER", "anthropic")
	v.SetDefault("GENERATION_MAX_TOKENS", 4096)
	v.SetDefault("AUTH_MODE", "jwt")
	v.SetDefault("KAFKA_TOPIC", "prd.events")
	v.SetDefault("COMPRESSION", "gzip")
	v.SetDefault("HTML_RENDER_SCHEDULE", "@every 30s")
}

// LoadConfig reads the configuration from the environment (and .env).
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	defaults(v)

	cfg := &Config{
		Env:      v.GetString("ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		GRPCPort: v.GetString("GRPC_PORT"),
		HTTPPort: v.GetString("HTTP_PORT"),
		Database: DatabaseConfig{
			Driver: v.GetString("DATABASE_DRIVER"),
			URL:    v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Generation: GenerationConfig{
			Provider:        v.GetString("GENERATION_PROVIDER"),
			Model:           v.GetString("GENERATION_MODEL"),
			MaxTokens:       v.GetInt64("GENERATION_MAX_TOKENS"),
			AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
			OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),
			Endpoint:        v.GetString("GENERATION_ENDPOINT"),
		},
		Auth: AuthConfig{
			Mode:      v.GetString("AUTH_MODE"),
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
		},
		Kafka: KafkaConfig{
			Brokers: v.GetString("KAFKA_BROKERS"),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Compression:        v.GetString("COMPRESSION"),
		HTMLRenderSchedule: v.GetString("HTML_RENDER_SCHEDULE"),
	}

	return cfg
}

// ConfigureLogging applies the configured log level to the standard logrus logger.
func ConfigureLogging(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// GetDb opens the configured database.
func GetDb(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.URL)
	case "sqlite":
		if dir := filepath.Dir(cfg.Database.URL); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", cfg.Database.URL))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}

	if cfg.Database.Driver == "sqlite" {
		// a single writer avoids "database is locked" errors
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	return db, nil
}

// NewGormLogger routes gorm's logger through logrus.
func NewGormLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(logrus.StandardLogger().Writer(), "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
