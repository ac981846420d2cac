package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/five82/quill/internal/logging"
)

// Config holds the tunables of the autosave pipeline and where quill logs.
type Config struct {
	Debounce    time.Duration
	Latency     time.Duration
	FailureRate float64
	AckDuration time.Duration
	Seed        uint64
	Endpoint    string
	LogDir      string
	LogLevel    string
}

const (
	defaultConfigPath  = "~/.config/quill/config.toml"
	defaultLogDir      = "~/.local/share/quill/logs"
	defaultLogLevel    = "info"
	defaultDebounce    = 500 * time.Millisecond
	defaultLatency     = time.Second
	defaultFailureRate = 0.3
	defaultAckDuration = 3 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Debounce:    defaultDebounce,
		Latency:     defaultLatency,
		FailureRate: defaultFailureRate,
		AckDuration: defaultAckDuration,
		LogDir:      mustExpand(defaultLogDir),
		LogLevel:    defaultLogLevel,
	}
}

// Load reads the config from the OS filesystem.
func Load(path string) (Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS locates and parses the config on fsys, falling back to defaults
// when the file is missing.
func LoadFS(fsys afero.Fs, path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	bytes, err := afero.ReadFile(fsys, resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DebounceMS  *int64   `toml:"debounce_ms"`
		LatencyMS   *int64   `toml:"latency_ms"`
		FailureRate *float64 `toml:"failure_rate"`
		AckMS       *int64   `toml:"ack_ms"`
		Seed        uint64   `toml:"seed"`
		Endpoint    string   `toml:"endpoint"`
		LogDir      string   `toml:"log_dir"`
		LogLevel    string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.DebounceMS != nil {
		cfg.Debounce = time.Duration(*raw.DebounceMS) * time.Millisecond
	}
	if raw.LatencyMS != nil {
		cfg.Latency = time.Duration(*raw.LatencyMS) * time.Millisecond
	}
	if raw.FailureRate != nil {
		cfg.FailureRate = *raw.FailureRate
	}
	if raw.AckMS != nil {
		cfg.AckDuration = time.Duration(*raw.AckMS) * time.Millisecond
	}
	cfg.Seed = raw.Seed
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(raw.Endpoint), "/")

	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Debounce <= 0:
		return fmt.Errorf("debounce_ms must be positive, got %s", c.Debounce)
	case c.Latency <= 0:
		return fmt.Errorf("latency_ms must be positive, got %s", c.Latency)
	case c.AckDuration <= 0:
		return fmt.Errorf("ack_ms must be positive, got %s", c.AckDuration)
	case c.FailureRate < 0 || c.FailureRate > 1:
		return fmt.Errorf("failure_rate must be within [0, 1], got %v", c.FailureRate)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LogPath returns the path of quill's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/quill.log")
	}
	return filepath.Join(c.LogDir, "quill.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
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
