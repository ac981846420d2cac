package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/quill/internal/autosave"
	"github.com/five82/quill/internal/backend"
	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/config"
	"github.com/five82/quill/internal/form"
	"github.com/five82/quill/internal/logging"
	"github.com/five82/quill/internal/prefs"
	"github.com/five82/quill/internal/state"
	"github.com/five82/quill/internal/ui"
)

// Options configure the quill application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/quill/prefs.toml
	Seed       uint64 // overrides the config seed when non-zero
}

// Run boots the quill TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Seed)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	userPrefs := prefs.NewStore(nil, opts.PrefsPath)

	c := clock.Real()
	saver, err := newSaver(cfg, c)
	if err != nil {
		return err
	}

	f := form.New(form.Default())
	store := &state.Store{}

	pipeline, err := autosave.New(autosave.Options{
		Form:        f,
		Saver:       saver,
		Store:       store,
		Clock:       c,
		Logger:      logger,
		Quiet:       cfg.Debounce,
		AckDuration: cfg.AckDuration,
	})
	if err != nil {
		return fmt.Errorf("init autosave: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- pipeline.Run(runCtx) }()
	defer func() {
		pipeline.Shutdown()
		cancel()
		<-done
	}()

	logger.Info("quill started",
		zap.String("backend", backendName(cfg)),
		zap.Duration("debounce", cfg.Debounce),
		zap.Duration("ack", cfg.AckDuration))

	uiOpts := ui.Options{
		Context:   ctx,
		Form:      f,
		Store:     store,
		Prefs:     userPrefs,
		LogPath:   cfg.LogPath(),
		ThemeName: userPrefs.Load().Theme,
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func loadConfig(path string, seed uint64) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

// newSaver picks the HTTP backend when an endpoint is configured and the
// simulator otherwise. The simulator shares c with the pipeline.
func newSaver(cfg config.Config, c clock.Clock) (backend.Saver, error) {
	if cfg.Endpoint != "" {
		client, err := backend.NewClient(cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("init backend client: %w", err)
		}
		return client, nil
	}
	return backend.NewSimulator(backend.SimulatorOptions{
		Clock:       c,
		Latency:     cfg.Latency,
		FailureRate: cfg.FailureRate,
		Seed:        cfg.Seed,
	}), nil
}

func backendName(cfg config.Config) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	return "simulator"
}
