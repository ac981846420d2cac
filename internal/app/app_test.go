package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/quill/internal/backend"
	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/config"
)

func TestNewSaver_PicksBackend(t *testing.T) {
	cfg := config.Default()

	saver, err := newSaver(cfg, clock.Real())
	if err != nil {
		t.Fatalf("newSaver returned error: %v", err)
	}
	if _, ok := saver.(*backend.Simulator); !ok {
		t.Fatalf("newSaver without endpoint = %T, want *backend.Simulator", saver)
	}

	cfg.Endpoint = "http://127.0.0.1:9"
	saver, err = newSaver(cfg, clock.Real())
	if err != nil {
		t.Fatalf("newSaver returned error: %v", err)
	}
	if _, ok := saver.(*backend.Client); !ok {
		t.Fatalf("newSaver with endpoint = %T, want *backend.Client", saver)
	}
	if got := backendName(cfg); got != cfg.Endpoint {
		t.Fatalf("backendName = %q, want %q", got, cfg.Endpoint)
	}
}

func TestLoadConfig_SeedOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), 99)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("Seed = %d, want 99", cfg.Seed)
	}
}

func TestLoadConfig_WrapsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("failure_rate = 7"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := loadConfig(path, 0)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("loadConfig error = %v, want it to mention load config", err)
	}
}

func TestReplay_WritesTimeline(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte(`
failure_rate = 0.0
seed = 1
log_dir = "`+filepath.ToSlash(filepath.Join(dir, "logs"))+`"
`), 0o600); err != nil {
		t.Fatalf("WriteFile config: %v", err)
	}
	scriptPath := filepath.Join(dir, "script.yaml")
	if err := os.WriteFile(scriptPath, []byte("settle_ms: 6000\nsteps:\n  - at_ms: 0\n    text: hello\n"), 0o600); err != nil {
		t.Fatalf("WriteFile script: %v", err)
	}

	var out bytes.Buffer
	err := Replay(context.Background(), ReplayOptions{
		ConfigPath: configPath,
		ScriptPath: scriptPath,
		Fast:       true,
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}
	if !strings.Contains(out.String(), "submitted=1 succeeded=1 failed=0") {
		t.Fatalf("Replay output missing summary:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "logs", "quill.log")); err != nil {
		t.Fatalf("replay did not write its log: %v", err)
	}
}

func TestReplay_MissingScript(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	err := Replay(context.Background(), ReplayOptions{
		ScriptPath: filepath.Join(t.TempDir(), "nope.yaml"),
		Out:        &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "read script") {
		t.Fatalf("Replay error = %v, want read script error", err)
	}
}
