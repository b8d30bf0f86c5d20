package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigFile names an optional TOML file read before the environment.
	EnvConfigFile   = "SIE_CONFIG"
	EnvLogLevel     = "SIE_LOG_LEVEL"
	EnvJSONLogs     = "SIE_JSON_LOGS"
	EnvHistoryLimit = "SIE_HISTORY_LIMIT"
	EnvJPEGQuality  = "SIE_JPEG_QUALITY"

	MaxHistoryLimit = 500
)

// Config holds the editor settings
type Config struct {
	LogLevel       string  `toml:"log_level"`
	JSONLogs       bool    `toml:"json_logs"`
	HistoryLimit   int     `toml:"history_limit"`
	JPEGQuality    int     `toml:"jpeg_quality"`
	PreviewMaxSize int     `toml:"preview_max_size"`
	WindowWidth    float32 `toml:"window_width"`
	WindowHeight   float32 `toml:"window_height"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		LogLevel:       "info",
		JSONLogs:       false,
		HistoryLimit:   20,
		JPEGQuality:    95,
		PreviewMaxSize: 2048,
		WindowWidth:    800,
		WindowHeight:   600,
	}
}

// Load builds the configuration from defaults, the optional TOML file named
// by SIE_CONFIG, and environment overrides, in that order.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	// LOG_LEVEL and DEBUG=1 are honoured for compatibility with older launch scripts.
	switch {
	case getenv(EnvLogLevel) != "":
		c.LogLevel = getenv(EnvLogLevel)
	case getenv("LOG_LEVEL") != "":
		c.LogLevel = getenv("LOG_LEVEL")
	case getenv("DEBUG") == "1":
		c.LogLevel = "debug"
	}

	if v := getenv(EnvJSONLogs); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvJSONLogs, err)
		}
		c.JSONLogs = b
	}

	if v := getenv(EnvHistoryLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHistoryLimit, err)
		}
		c.HistoryLimit = n
	}

	if v := getenv(EnvJPEGQuality); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvJPEGQuality, err)
		}
		c.JPEGQuality = n
	}

	return nil
}

// Validate reports the first out-of-range setting
func (c Config) Validate() error {
	var errs []error
	if c.HistoryLimit < 1 || c.HistoryLimit > MaxHistoryLimit {
		errs = append(errs, fmt.Errorf("history_limit must be in [1, %d], got %d", MaxHistoryLimit, c.HistoryLimit))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be in [1, 100], got %d", c.JPEGQuality))
	}
	if c.PreviewMaxSize < 64 {
		errs = append(errs, fmt.Errorf("preview_max_size must be at least 64, got %d", c.PreviewMaxSize))
	}
	if c.WindowWidth < 400 || c.WindowHeight < 300 {
		errs = append(errs, fmt.Errorf("window size %.0fx%.0f is below 400x300", c.WindowWidth, c.WindowHeight))
	}
	return errors.Join(errs...)
}
