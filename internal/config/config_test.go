package config

import (
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("DOWNFILES_PORT", "8080")
	t.Setenv("DOWNFILES_TEMP_DIR", "/var/tmp/dl")
	t.Setenv("DOWNFILES_COOKIES", "/etc/cookies.txt")
	t.Setenv("DOWNFILES_WORKERS", "4")

	cfg := &Config{Port: 3000, TempDir: "/tmp", Workers: 2}
	applyEnv(cfg)

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.TempDir != "/var/tmp/dl" {
		t.Errorf("TempDir = %q", cfg.TempDir)
	}
	if cfg.CookiesFile != "/etc/cookies.txt" {
		t.Errorf("CookiesFile = %q", cfg.CookiesFile)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestApplyEnv_LegacyPort(t *testing.T) {
	t.Setenv("DOWNFILES_PORT", "")
	t.Setenv("PORT", "9090")

	cfg := &Config{Port: 3000}
	applyEnv(cfg)
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want legacy PORT 9090", cfg.Port)
	}
}

func TestApplyEnv_BadValuesIgnored(t *testing.T) {
	t.Setenv("DOWNFILES_PORT", "not-a-number")
	t.Setenv("DOWNFILES_WORKERS", "many")

	cfg := &Config{Port: 3000, Workers: 2}
	applyEnv(cfg)
	if cfg.Port != 3000 || cfg.Workers != 2 {
		t.Errorf("bad env values applied: port %d, workers %d", cfg.Port, cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Workers:      2,
		QueueSize:    32,
		ProbeTimeout: duration(30 * time.Second),
		FetchTimeout: duration(60 * time.Second),
	}

	if err := validate(&valid); err != nil {
		t.Errorf("validate(valid) error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"zero queue", func(c *Config) { c.QueueSize = 0 }},
		{"zero probe timeout", func(c *Config) { c.ProbeTimeout = 0 }},
		{"negative fetch timeout", func(c *Config) { c.FetchTimeout = duration(-time.Second) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := validate(&cfg); err == nil {
				t.Error("validate() error = nil, want rejection")
			}
		})
	}
}

func TestTOMLDecode(t *testing.T) {
	const doc = `
port = 8888
temp_dir = "/srv/downloads"
probe_timeout = "45s"
fetch_timeout = "2m"
workers = 3
`
	var cfg Config
	if _, err := toml.Decode(doc, &cfg); err != nil {
		t.Fatalf("toml.Decode() error = %v", err)
	}
	if cfg.Port != 8888 || cfg.TempDir != "/srv/downloads" || cfg.Workers != 3 {
		t.Errorf("decoded config = %+v", cfg)
	}
	if cfg.ProbeSocketTimeout() != 45*time.Second {
		t.Errorf("ProbeSocketTimeout() = %v, want 45s", cfg.ProbeSocketTimeout())
	}
	if cfg.FetchSocketTimeout() != 2*time.Minute {
		t.Errorf("FetchSocketTimeout() = %v, want 2m", cfg.FetchSocketTimeout())
	}
}

func TestTOMLDecode_BadDuration(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode(`probe_timeout = "soon"`, &cfg); err == nil {
		t.Error("toml.Decode() error = nil for a malformed duration")
	}
}

func TestDefaultHistoryDB(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	want := "/custom/cache/downfiles/history.db"
	if got := DefaultHistoryDB(); got != want {
		t.Errorf("DefaultHistoryDB() = %q, want %q", got, want)
	}
}

func TestDefaultTempDir(t *testing.T) {
	if got := DefaultTempDir(); !strings.HasSuffix(got, "downfiles") {
		t.Errorf("DefaultTempDir() = %q", got)
	}
}
