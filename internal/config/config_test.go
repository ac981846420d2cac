package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func writeConfig(t *testing.T, fsys afero.Fs, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := afero.WriteFile(fsys, path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Fatalf("Debounce = %s, want 500ms", cfg.Debounce)
	}
	if cfg.Latency != time.Second || cfg.AckDuration != 3*time.Second {
		t.Fatalf("Latency/AckDuration = %s/%s, want 1s/3s", cfg.Latency, cfg.AckDuration)
	}
	if cfg.FailureRate != 0.3 {
		t.Fatalf("FailureRate = %v, want 0.3", cfg.FailureRate)
	}
	if cfg.Endpoint != "" {
		t.Fatalf("Endpoint = %q, want empty", cfg.Endpoint)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
}

func TestLoadFS_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `
debounce_ms = 250
latency_ms = 2000
failure_rate = 1.0
ack_ms = 1500
seed = 42
endpoint = "  http://localhost:8080/  "
log_dir = "  ~/.quill/logs  "
log_level = " DEBUG "
`)

	cfg, err := LoadFS(fsys, path)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Fatalf("Debounce = %s, want 250ms", cfg.Debounce)
	}
	if cfg.Latency != 2*time.Second {
		t.Fatalf("Latency = %s, want 2s", cfg.Latency)
	}
	if cfg.FailureRate != 1 {
		t.Fatalf("FailureRate = %v, want 1", cfg.FailureRate)
	}
	if cfg.AckDuration != 1500*time.Millisecond {
		t.Fatalf("AckDuration = %s, want 1.5s", cfg.AckDuration)
	}
	if cfg.Seed != 42 {
		t.Fatalf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Endpoint != "http://localhost:8080" {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, "http://localhost:8080")
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogPath() != filepath.Join(cfg.LogDir, "quill.log") {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath(), filepath.Join(cfg.LogDir, "quill.log"))
	}
}

func TestLoadFS_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `
log_dir = "   "
log_level = ""
`)

	cfg, err := LoadFS(fsys, path)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("LoadFS = %+v, want %+v", cfg, want)
	}
}

func TestLoadFS_RejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "zero debounce", body: "debounce_ms = 0", want: "debounce_ms"},
		{name: "zero latency", body: "latency_ms = 0", want: "latency_ms"},
		{name: "negative ack", body: "ack_ms = -5", want: "ack_ms"},
		{name: "failure rate above one", body: "failure_rate = 1.5", want: "failure_rate"},
		{name: "failure rate below zero", body: "failure_rate = -0.1", want: "failure_rate"},
		{name: "unknown level", body: `log_level = "chatty"`, want: "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			path := writeConfig(t, fsys, tt.body)
			_, err := LoadFS(fsys, path)
			if err == nil {
				t.Fatalf("LoadFS returned nil error, want %s error", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("LoadFS error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadFS_InvalidTOMLFails(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeConfig(t, fsys, `debounce_ms = [`)
	_, err := LoadFS(fsys, path)
	if err == nil {
		t.Fatalf("LoadFS returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("LoadFS error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
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

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/quill.log")) {
		t.Fatalf("LogPath = %q, want it to end with /quill.log", got)
	}
}
