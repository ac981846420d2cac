package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/quill/internal/app"
)

type rootFlags struct {
	configPath string
	prefsPath  string
	seed       uint64
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Terminal form that autosaves as you type",
		Long: `quill shows a small form and saves it in the background while you edit.

Edits are debounced, at most one save is in flight, and edits made during a
save are collapsed so only the latest values are sent next. Without an
endpoint in the config, saves go to a simulated backend with one second of
latency and a 30% failure rate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: flags.configPath,
				PrefsPath:  flags.prefsPath,
				Seed:       flags.seed,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "override config path (default ~/.config/quill/config.toml)")
	cmd.PersistentFlags().Uint64Var(&flags.seed, "seed", 0, "seed for the simulated backend (0 uses the config or the clock)")
	cmd.Flags().StringVar(&flags.prefsPath, "prefs", "", "override preferences path (default ~/.config/quill/prefs.toml)")

	cmd.AddCommand(newReplayCmd(&flags))
	return cmd
}

func newReplayCmd(root *rootFlags) *cobra.Command {
	var fast bool

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Play a scripted editing session and print the timeline",
		Long: `Replay runs a YAML script of timed edits against the autosave pipeline
without a terminal UI and prints every submission, outcome and
acknowledgment it produced.

Examples:
  # Play a script in real time
  quill replay typing.yaml

  # Same script, 50x faster, reproducible failures
  quill replay typing.yaml --fast --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Replay(cmd.Context(), app.ReplayOptions{
				ConfigPath: root.configPath,
				ScriptPath: args[0],
				Seed:       root.seed,
				Fast:       fast,
				Out:        cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&fast, "fast", false, "run the script 50x faster than real time")
	return cmd
}
