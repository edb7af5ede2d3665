package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppName string `mapstructure:"app_name"`
	Shards  int    `mapstructure:"shards"`

	Server struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Default is the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{AppName: "gridsql", Shards: 1}
	cfg.Server.Addr = "127.0.0.1:8866"
	cfg.Log.Level = "info"
	return cfg
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "gridsql")
	v.SetDefault("shards", 1)
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Shards < 1 {
		return nil, fmt.Errorf("config: shards must be >= 1, got %d", cfg.Shards)
	}

	return &cfg, nil
}

// LogLevel maps the configured level name onto slog, defaulting to Info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
