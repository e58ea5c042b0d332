// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Reports  ReportsConfig  `mapstructure:"reports"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type ReportsConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	TemplateDir string `mapstructure:"template_dir"`
}

type WorkerConfig struct {
	ID           string `mapstructure:"id"`
	PollInterval int    `mapstructure:"poll_interval_ms"`
}

type EmailConfig struct {
	APIKey      string `mapstructure:"api_key"`
	FromName    string `mapstructure:"from_name"`
	FromAddress string `mapstructure:"from_address"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the environment, with an optional
// .env file for local development. Missing DSN is a hard error for
// both binaries; everything else has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("reportgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("reports.output_dir", "./reports")
	v.SetDefault("reports.template_dir", "./templates")
	v.SetDefault("worker.poll_interval_ms", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for _, key := range []string{
		"server.port", "database.dsn", "redis.addr",
		"reports.output_dir", "reports.template_dir",
		"worker.id", "worker.poll_interval_ms",
		"email.api_key", "email.from_name", "email.from_address",
		"log.level", "log.format",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("REPORTGEN_DATABASE_DSN is required")
	}

	return &cfg, nil
}
