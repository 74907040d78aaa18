package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vidyasagar/navcore/internal/theme"
)

const (
	appName  = "navcore"
	fileName = "config.json"
	envPath  = "NAVCORE_CONFIG"
)

// Config holds navcore user configuration.
type Config struct {
	Theme         string        `mapstructure:"theme"`
	StartPage     string        `mapstructure:"start_page"`
	UserAgent     string        `mapstructure:"user_agent"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
	PageCacheSize int           `mapstructure:"page_cache_size"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFile       string        `mapstructure:"log_file"`
	path          string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	logFile := ""
	if dir, err := DataDir(); err == nil {
		logFile = filepath.Join(dir, appName+".log")
	}
	return Config{
		Theme:         "default",
		StartPage:     "http://google.com",
		UserAgent:     "",
		ProbeTimeout:  15 * time.Second,
		PageCacheSize: 50,
		LogLevel:      "info",
		LogFile:       logFile,
	}
}

// Load reads configuration from path, or from NAVCORE_CONFIG, or from the
// standard config directory. A missing file is created with the defaults.
// Environment variables prefixed NAVCORE_ override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(envPath)
	}
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, fileName)
	}

	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("theme", def.Theme)
	v.SetDefault("start_page", def.StartPage)
	v.SetDefault("user_agent", def.UserAgent)
	v.SetDefault("probe_timeout", def.ProbeTimeout)
	v.SetDefault("page_cache_size", def.PageCacheSize)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	v.SetConfigType("json")
	v.SetConfigFile(path)
	v.SetEnvPrefix("NAVCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		// Save default config.
		def.path = path
		if err := def.Save(); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
	default:
		return nil, fmt.Errorf("reading config: %w", statErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("config: probe_timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.PageCacheSize <= 0 {
		return fmt.Errorf("config: page_cache_size must be positive, got %d", c.PageCacheSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, ok := theme.Lookup(c.Theme); !ok {
		return fmt.Errorf("config: unknown theme %q (available: %s)", c.Theme, strings.Join(theme.List(), ", "))
	}
	return nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, fileName)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("theme", c.Theme)
	v.Set("start_page", c.StartPage)
	v.Set("user_agent", c.UserAgent)
	v.Set("probe_timeout", c.ProbeTimeout.String())
	v.Set("page_cache_size", c.PageCacheSize)
	v.Set("log_level", c.LogLevel)
	v.Set("log_file", c.LogFile)

	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// DataDir returns the directory for logs and other runtime files.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default: // Linux, BSD, etc.
		xdgData := os.Getenv("XDG_DATA_HOME")
		if xdgData != "" {
			dir = filepath.Join(xdgData, appName)
		} else {
			dir = filepath.Join(home, ".local", "share", appName)
		}
	}

	return dir, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default:
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig != "" {
			dir = filepath.Join(xdgConfig, appName)
		} else {
			dir = filepath.Join(home, ".config", appName)
		}
	}

	return dir, nil
}
