package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	GRPCPort       string `mapstructure:"GRPC_PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`

	SessionSecret      string        `mapstructure:"SESSION_SECRET"`
	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`
	MaxSessions        int           `mapstructure:"MAX_SESSIONS"`
	ToggleRateLimit    int           `mapstructure:"TOGGLE_RATE_LIMIT"`

	MediaDir string `mapstructure:"MEDIA_DIR"`
	Timezone string `mapstructure:"TIMEZONE"`
}

var keys = []string{
	"PORT", "GRPC_PORT", "ALLOWED_ORIGINS",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"REDIS_ADDR",
	"SESSION_SECRET", "SESSION_IDLE_TIMEOUT", "MAX_SESSIONS", "TOGGLE_RATE_LIMIT",
	"MEDIA_DIR", "TIMEZONE",
}

// LoadConfig reads app.env from path if present, then the environment.
// A missing file is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("PORT", ":8080")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("SESSION_IDLE_TIMEOUT", time.Hour)
	v.SetDefault("MAX_SESSIONS", 10000)
	v.SetDefault("TOGGLE_RATE_LIMIT", 60)
	v.SetDefault("MEDIA_DIR", "assets")
	v.SetDefault("TIMEZONE", "Asia/Tehran")

	v.AutomaticEnv()
	for _, key := range keys {
		v.BindEnv(key)
	}

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	switch {
	case config.SessionSecret == "":
		err = errors.New("SESSION_SECRET is required")
	case config.SessionIdleTimeout <= 0:
		err = fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive, got %s", config.SessionIdleTimeout)
	case config.MaxSessions <= 0:
		err = fmt.Errorf("MAX_SESSIONS must be positive, got %d", config.MaxSessions)
	}
	return
}

// UseDatabase reports whether a postgres catalog is configured.
func (c Config) UseDatabase() bool {
	return c.DBHost != ""
}

// UseRedis reports whether the catalog cache and rate limiter are enabled.
func (c Config) UseRedis() bool {
	return c.RedisAddr != ""
}
