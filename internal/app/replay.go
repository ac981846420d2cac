package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/logging"
	"github.com/five82/quill/internal/replay"
)

// fastFactor is how much faster than real time `replay --fast` runs.
const fastFactor = 50

// ReplayOptions configure a headless replay.
type ReplayOptions struct {
	ConfigPath string
	ScriptPath string
	Seed       uint64
	Fast       bool
	Out        io.Writer
	FS         afero.Fs // nil uses the OS filesystem
}

// Replay plays a YAML editing script against the pipeline and writes the
// resulting timeline to opts.Out.
func Replay(ctx context.Context, opts ReplayOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Seed)
	if err != nil {
		return err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	script, err := replay.Load(fsys, opts.ScriptPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	c := clock.Real()
	if opts.Fast {
		c = clock.Scaled(fastFactor)
	}
	saver, err := newSaver(cfg, c)
	if err != nil {
		return err
	}

	logger.Info("replay",
		zap.String("script", opts.ScriptPath),
		zap.Bool("fast", opts.Fast),
		zap.String("backend", backendName(cfg)))

	timeline, err := replay.Run(ctx, script, replay.Options{
		Saver:       saver,
		Clock:       c,
		Logger:      logger,
		Quiet:       cfg.Debounce,
		AckDuration: cfg.AckDuration,
	})
	if err != nil {
		return fmt.Errorf("replay %s: %w", opts.ScriptPath, err)
	}
	return timeline.Write(opts.Out)
}
