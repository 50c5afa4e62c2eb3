package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Redis (unread-count cache; optional)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Content moderation service. Empty URL disables screening, which is a
	// deliberate dev-mode choice; when set, an unreachable classifier
	// rejects content (fail closed).
	ModerationURL       string `mapstructure:"MODERATION_URL"`
	ModerationTimeoutMS int    `mapstructure:"MODERATION_TIMEOUT_MS"`

	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("MODERATION_TIMEOUT_MS", 2000)
	viper.SetDefault("METRICS_ENABLED", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

// ModerationTimeout returns the classifier call timeout as a duration.
func (c *Config) ModerationTimeout() time.Duration {
	if c.ModerationTimeoutMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.ModerationTimeoutMS) * time.Millisecond
}
