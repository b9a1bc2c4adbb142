package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/five82/griddy/internal/netstatus"
)

// Config holds the operator settings griddy needs to reach its spreadsheet.
type Config struct {
	APIKey          string
	CredentialsFile string
	Endpoint        string
	PollInterval    time.Duration
	ProbeAddr       string
	ProbeInterval   time.Duration
	Colors          []string
	LogFile         string
	LogLevel        string
	QueriesFile     string

	// Source is the config file that was read, or "" when defaults were used.
	Source string
}

const (
	defaultConfigDir     = "~/.config/griddy"
	defaultLogFile       = "~/.local/share/griddy/griddy.log"
	defaultLogLevel      = "info"
	defaultPollInterval  = 5 * time.Minute
	defaultProbeInterval = 15 * time.Second
	envPrefix            = "griddy"
)

var defaultColors = []string{"#4285F4", "#0F9D58", "#F4B400", "#DB4437"}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"poll":      "poll_interval",
	"log-file":  "log_file",
	"log-level": "log_level",
	"queries":   "queries_file",
	"api-key":   "api_key",
}

// Load reads the config file at path (or the default location), overlays
// GRIDDY_* environment variables and any changed flags, and validates the
// result. A missing file is not an error.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("poll_interval", defaultPollInterval)
	v.SetDefault("probe_addr", netstatus.DefaultAddr)
	v.SetDefault("probe_interval", defaultProbeInterval)
	v.SetDefault("colors", defaultColors)
	v.SetDefault("log_file", defaultLogFile)
	v.SetDefault("log_level", defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		resolved, err := expandPath(path)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigFile(resolved)
	} else {
		dir, err := expandPath(defaultConfigDir)
		if err != nil {
			return Config{}, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{
		APIKey:          strings.TrimSpace(v.GetString("api_key")),
		CredentialsFile: strings.TrimSpace(v.GetString("credentials_file")),
		Endpoint:        strings.TrimSpace(v.GetString("endpoint")),
		PollInterval:    v.GetDuration("poll_interval"),
		ProbeAddr:       strings.TrimSpace(v.GetString("probe_addr")),
		ProbeInterval:   v.GetDuration("probe_interval"),
		Colors:          v.GetStringSlice("colors"),
		LogFile:         strings.TrimSpace(v.GetString("log_file")),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		QueriesFile:     strings.TrimSpace(v.GetString("queries_file")),
		Source:          v.ConfigFileUsed(),
	}
	if cfg.Source != "" {
		if _, err := os.Stat(cfg.Source); err != nil {
			cfg.Source = ""
		}
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.ProbeInterval <= 0 {
		c.ProbeInterval = defaultProbeInterval
	}
	if c.ProbeAddr == "" {
		c.ProbeAddr = netstatus.DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	colors := make([]string, 0, len(c.Colors))
	for _, col := range c.Colors {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if !isHexColor(col) {
			return fmt.Errorf("invalid color %q: want #RRGGBB", col)
		}
		colors = append(colors, strings.ToUpper(col))
	}
	if len(colors) == 0 {
		colors = append(colors, defaultColors...)
	}
	c.Colors = colors

	var err error
	if c.CredentialsFile, err = expandOptional(c.CredentialsFile); err != nil {
		return err
	}
	if c.QueriesFile, err = expandOptional(c.QueriesFile); err != nil {
		return err
	}
	// "-" or "off" disables file logging.
	switch strings.ToLower(c.LogFile) {
	case "-", "off", "none":
		c.LogFile = ""
	case "":
		c.LogFile = mustExpand(defaultLogFile)
	default:
		if c.LogFile, err = expandPath(c.LogFile); err != nil {
			return err
		}
	}
	return nil
}

// Static reports whether no spreadsheet credentials are configured.
func (c Config) Static() bool {
	return c.APIKey == "" && c.CredentialsFile == ""
}

// DefaultPrefsPath returns where user preferences live when no path is given.
func DefaultPrefsPath() string {
	return mustExpand(defaultConfigDir + "/prefs.toml")
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func expandOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
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
