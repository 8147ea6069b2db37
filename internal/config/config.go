package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read before the environment is parsed, mirroring the web app's local setup.
const DefaultEnvFile = ".env.local"

// ErrMissingDatabaseURL is returned when no connection string was supplied.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set (use the environment or -database-url)")

// Config captures runtime configuration sourced from the environment and flags.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL"`
	CACertPath     string        `env:"WESMUN_DB_CA_CERT"`
	ConnectTimeout time.Duration `env:"WESMUN_DB_CONNECT_TIMEOUT" envDefault:"15s"`
	Debug          bool          `env:"WESMUN_DEBUG"`
	LogFile        string        `env:"WESMUN_LOG_FILE"`
	MetricsFile    string        `env:"WESMUN_METRICS_FILE"`
	NotifyURLs     []string      `env:"WESMUN_NOTIFY_URLS" envSeparator:","`
}

// Load reads the optional env file, then the environment, then flags in args.
// Flags win over the environment. There is no default connection string.
func Load(name string, args []string) (Config, error) {
	if err := loadEnvFile(envFilePath()); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string")
	fs.StringVar(&cfg.CACertPath, "ca-cert", cfg.CACertPath, "CA bundle used to verify the server certificate")
	fs.DurationVar(&cfg.ConnectTimeout, "connect-timeout", cfg.ConnectTimeout, "timeout for establishing the connection")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write logs to this rotated file")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write run metrics in Prometheus textfile format")
	notify := fs.String("notify", strings.Join(cfg.NotifyURLs, ","), "comma separated shoutrrr URLs notified with the outcome")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	cfg.NotifyURLs = splitList(*notify)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return ErrMissingDatabaseURL
	}
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("connect timeout must not be negative, got %s", c.ConnectTimeout)
	}
	if c.CACertPath != "" {
		if _, err := os.Stat(c.CACertPath); err != nil {
			return fmt.Errorf("ca certificate: %w", err)
		}
	}
	return nil
}

func envFilePath() string {
	if val := os.Getenv("WESMUN_ENV_FILE"); val != "" {
		return val
	}
	return DefaultEnvFile
}

// loadEnvFile never overrides variables already present in the process environment.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
