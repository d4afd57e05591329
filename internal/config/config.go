package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port         int      `toml:"port"`
	TempDir      string   `toml:"temp_dir"`
	HistoryDB    string   `toml:"history_db"`
	YtDlpPath    string   `toml:"yt_dlp_path"`
	FFmpegPath   string   `toml:"ffmpeg_path"`
	CookiesFile  string   `toml:"cookies_file"`
	ProbeTimeout duration `toml:"probe_timeout"`
	FetchTimeout duration `toml:"fetch_timeout"`
	Workers      int      `toml:"workers"`
	QueueSize    int      `toml:"queue_size"`
}

// duration wraps time.Duration so TOML files can use "30s" style values.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// ProbeSocketTimeout returns the probe timeout as a time.Duration.
func (c *Config) ProbeSocketTimeout() time.Duration { return time.Duration(c.ProbeTimeout) }

// FetchSocketTimeout returns the fetch timeout as a time.Duration.
func (c *Config) FetchSocketTimeout() time.Duration { return time.Duration(c.FetchTimeout) }

// DefaultHistoryDB returns the default history database path using XDG_CACHE_HOME.
func DefaultHistoryDB() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, "downfiles", "history.db")
}

// DefaultTempDir returns the default directory for download artifacts.
func DefaultTempDir() string {
	return filepath.Join(os.TempDir(), "downfiles")
}

// Load parses flags, an optional TOML file and environment variables.
// Precedence is flags < file < environment.
func Load() (*Config, error) {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	cfg := &Config{}
	var file string
	var probeTimeout, fetchTimeout time.Duration

	flag.StringVar(&file, "config", "", "Optional TOML config file")
	flag.IntVar(&cfg.Port, "port", 3000, "HTTP server port")
	flag.StringVar(&cfg.TempDir, "temp-dir", DefaultTempDir(), "Directory for download artifacts")
	flag.StringVar(&cfg.HistoryDB, "history-db", DefaultHistoryDB(), "SQLite download history path")
	flag.StringVar(&cfg.YtDlpPath, "yt-dlp", "", "yt-dlp binary (empty = autodetect)")
	flag.StringVar(&cfg.FFmpegPath, "ffmpeg", "", "ffmpeg binary (empty = autodetect)")
	flag.StringVar(&cfg.CookiesFile, "cookies", "", "Netscape cookies file passed to yt-dlp")
	flag.DurationVar(&probeTimeout, "probe-timeout", 30*time.Second, "Socket timeout for metadata probes")
	flag.DurationVar(&fetchTimeout, "fetch-timeout", 60*time.Second, "Socket timeout for downloads")
	flag.IntVar(&cfg.Workers, "workers", 2, "Concurrent download jobs")
	flag.IntVar(&cfg.QueueSize, "queue-size", 32, "Pending job queue capacity")
	flag.Parse()

	cfg.ProbeTimeout = duration(probeTimeout)
	cfg.FetchTimeout = duration(fetchTimeout)

	if env := os.Getenv("DOWNFILES_CONFIG"); env != "" {
		file = env
	}
	if file != "" {
		if _, err := toml.DecodeFile(file, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", file, err)
		}
	}

	applyEnv(cfg)
	return cfg, validate(cfg)
}

func validate(cfg *Config) error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.QueueSize < 1 {
		return fmt.Errorf("queue-size must be at least 1, got %d", cfg.QueueSize)
	}
	if cfg.ProbeTimeout <= 0 || cfg.FetchTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// applyEnv overrides config values from DOWNFILES_* (and legacy PORT)
// environment variables.
func applyEnv(cfg *Config) {
	port := os.Getenv("DOWNFILES_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if dir := os.Getenv("DOWNFILES_TEMP_DIR"); dir != "" {
		cfg.TempDir = dir
	}
	if db := os.Getenv("DOWNFILES_HISTORY_DB"); db != "" {
		cfg.HistoryDB = db
	}
	if p := os.Getenv("DOWNFILES_YT_DLP"); p != "" {
		cfg.YtDlpPath = p
	}
	if p := os.Getenv("DOWNFILES_FFMPEG"); p != "" {
		cfg.FFmpegPath = p
	}
	if p := os.Getenv("DOWNFILES_COOKIES"); p != "" {
		cfg.CookiesFile = p
	}
	if w := os.Getenv("DOWNFILES_WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil {
			cfg.Workers = n
		}
	}
}
