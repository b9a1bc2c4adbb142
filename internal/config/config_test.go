package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/five82/griddy/internal/netstatus"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"), nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}
	if cfg.ProbeAddr != netstatus.DefaultAddr {
		t.Fatalf("ProbeAddr = %q, want %q", cfg.ProbeAddr, netstatus.DefaultAddr)
	}
	if !reflect.DeepEqual(cfg.Colors, defaultColors) {
		t.Fatalf("Colors = %v, want %v", cfg.Colors, defaultColors)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if !cfg.Static() {
		t.Fatal("Static() = false with no credentials, want true")
	}
	if cfg.Source != "" {
		t.Fatalf("Source = %q, want empty", cfg.Source)
	}
}

func TestLoad_DefaultLocationMissingIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load("", nil); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_key = "  secret  "
credentials_file = "~/creds.json"
poll_interval = "90s"
probe_addr = "example.com:443"
colors = ["#aabbcc", " #112233 "]
log_level = "DEBUG"
queries_file = "~/queries.yaml"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("APIKey = %q, want secret", cfg.APIKey)
	}
	if cfg.CredentialsFile != filepath.Join(home, "creds.json") {
		t.Fatalf("CredentialsFile = %q, want it under HOME", cfg.CredentialsFile)
	}
	if cfg.PollInterval != 90*time.Second {
		t.Fatalf("PollInterval = %v, want 90s", cfg.PollInterval)
	}
	if cfg.ProbeAddr != "example.com:443" {
		t.Fatalf("ProbeAddr = %q", cfg.ProbeAddr)
	}
	if want := []string{"#AABBCC", "#112233"}; !reflect.DeepEqual(cfg.Colors, want) {
		t.Fatalf("Colors = %v, want %v", cfg.Colors, want)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !strings.HasPrefix(cfg.QueriesFile, home) {
		t.Fatalf("QueriesFile = %q, want it under HOME %q", cfg.QueriesFile, home)
	}
	if cfg.Static() {
		t.Fatal("Static() = true with credentials, want false")
	}
	if cfg.Source != path {
		t.Fatalf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoad_EnvAndFlagsOverrideFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_key = "from-file"
poll_interval = "1m"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("GRIDDY_API_KEY", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Duration("poll", 0, "")
	flags.String("log-file", "", "")
	if err := flags.Parse([]string{"--poll=10s"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.APIKey)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval = %v, want 10s from flag", cfg.PollInterval)
	}
	if cfg.LogFile == "" {
		t.Fatal("unchanged log-file flag should not clear the default")
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
poll_interval = "0s"
probe_addr = "   "
colors = []
log_level = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}
	if cfg.ProbeAddr != netstatus.DefaultAddr {
		t.Fatalf("ProbeAddr = %q, want default", cfg.ProbeAddr)
	}
	if !reflect.DeepEqual(cfg.Colors, defaultColors) {
		t.Fatalf("Colors = %v, want defaults", cfg.Colors)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_LogFileCanBeDisabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_file = "off"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"toml", `api_key = [`, "parse config"},
		{"color", `colors = ["blue"]`, "invalid color"},
		{"level", `log_level = "loud"`, "invalid log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path, nil)
			if err == nil {
				t.Fatalf("Load returned nil error, want %s error", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestDefaultPrefsPath_UnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := DefaultPrefsPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("DefaultPrefsPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/griddy/prefs.toml")) {
		t.Fatalf("DefaultPrefsPath = %q, want it to end with /griddy/prefs.toml", got)
	}
}
