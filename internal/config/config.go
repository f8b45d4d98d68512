package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "HANGAR_"

const (
	defaultConfigPath      = "~/.config/hangar/config.toml"
	defaultDataDir         = "~/.local/share/hangar"
	defaultLogLevel        = "info"
	defaultPollInterval    = 2 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Config is hangar's resolved runtime configuration.
type Config struct {
	// DataDir holds the hardware, container and settings tables.
	DataDir string `env:"DATA_DIR, overwrite"`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL, overwrite"`

	// LibvirtSocket is the libvirt daemon socket; empty means the system
	// default.
	LibvirtSocket string `env:"LIBVIRT_SOCKET, overwrite"`

	// PollInterval is the status refresh cadence in console mode.
	PollInterval time.Duration `env:"POLL_INTERVAL, overwrite"`

	// ShutdownTimeout bounds how long the process waits for the final
	// flush after a termination signal.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, overwrite"`

	// MetricsAddr, when set, serves Prometheus metrics in console mode.
	MetricsAddr string `env:"METRICS_ADDR, overwrite"`
}

// fileConfig is the on-disk shape. Durations are strings ("2s", "1m").
type fileConfig struct {
	DataDir         string `toml:"data_dir"`
	LogLevel        string `toml:"log_level"`
	LibvirtSocket   string `toml:"libvirt_socket"`
	PollInterval    string `toml:"poll_interval"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	MetricsAddr     string `toml:"metrics_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:         mustExpand(defaultDataDir),
		LogLevel:        defaultLogLevel,
		PollInterval:    defaultPollInterval,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Load resolves configuration from defaults, the TOML file at path (or the
// default location when empty) and HANGAR_ environment variables.
func Load(ctx context.Context, path string) (Config, error) {
	return loadWithDeps(ctx, path, envconfig.OsLookuper())
}

// loadWithDeps loads configuration with an injected environment lookuper.
func loadWithDeps(ctx context.Context, path string, lookuper envconfig.Lookuper) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := applyFile(&cfg, resolved); err != nil {
		return Config{}, err
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.DataDir = mustExpand(cfg.DataDir)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LibvirtSocket); v != "" {
		cfg.LibvirtSocket = v
	}
	if v := strings.TrimSpace(raw.MetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	if cfg.PollInterval, err = parseDuration("poll_interval", raw.PollInterval, cfg.PollInterval); err != nil {
		return err
	}
	if cfg.ShutdownTimeout, err = parseDuration("shutdown_timeout", raw.ShutdownTimeout, cfg.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// ExpandPath expands a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
