package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds the runtime settings of the labdb binary
type Config struct {
	DataDir    string `validate:"required"`
	SeqURL     string `validate:"omitempty,url"`
	LogLevel   string `validate:"oneof=debug info warn error"`
	ServerMode bool
	Port       int `validate:"min=1,max=65535"`
}

// Load parses command line flags with environment fallbacks and validates
// the result
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("labdb", flag.ContinueOnError)

	cfg := &Config{}
	fs.StringVar(&cfg.DataDir, "data", envOrDefault("LABDB_DATA_DIR", "data"), "Directory holding the table files")
	fs.StringVar(&cfg.SeqURL, "seq", envOrDefault("LABDB_SEQ_URL", ""), "Seq server URL for log shipping (empty disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", envOrDefault("LABDB_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.ServerMode, "server", false, "Run in server mode")
	fs.IntVar(&cfg.Port, "port", envIntOrDefault("LABDB_PORT", 4444), "Port to listen on")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Level converts LogLevel to a slog level
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
