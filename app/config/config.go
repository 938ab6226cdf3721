package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	Port           int      `mapstructure:"port"`
	RateLimit      int      `mapstructure:"rate_limit"`
	GzipLevel      int      `mapstructure:"gzip_level"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LogLatency     bool     `mapstructure:"log_latency"`
}

type Config struct {
	DatabaseURL string       `mapstructure:"database_url"`
	Server      ServerConfig `mapstructure:"server"`
}

// Load reads configuration from the environment. dbOverride, when non-empty,
// takes precedence over DATABASE_URL (CLI positional argument).
func Load(dbOverride string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.gzip_level", 5)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.log_latency", false)

	if err := v.BindEnv("database_url", "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.address", "SERVER_ADDRESS"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.port", "SERVER_PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.rate_limit", "SERVER_RATE_LIMIT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS"); err != nil {
		return nil, err
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	if dbOverride != "" {
		conf.DatabaseURL = dbOverride
	}
	if conf.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set and no connection string was given on the command line")
	}
	return &conf, nil
}
