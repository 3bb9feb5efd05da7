// Package cli defines the reel command line.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/icons"
	"github.com/llehouerou/reel/internal/logging"
)

// env is the configuration shared by every command.
type env struct {
	cfg  *config.Config
	logs io.Closer
}

func (e *env) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg

	logs, err := logging.Setup(cfg.GetLogLevel())
	if err != nil {
		// Not fatal: the terminal is not available for logs anyway
		slog.SetDefault(logging.Discard())
	} else {
		e.logs = logs
	}

	icons.Init(cfg.Icons)
	return nil
}

func (e *env) teardown(_ *cobra.Command, _ []string) {
	if e.logs != nil {
		_ = e.logs.Close()
	}
}

// NewRootCmd builds the reel command tree.
func NewRootCmd(version string) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "reel [paths...]",
		Short: "Terminal media playlist with ffmpeg conversions",
		Long: "reel keeps a playlist of local video and audio files.\n" +
			"Paths replace the saved session; without paths the last session is restored.",
		Args:              cobra.ArbitraryArgs,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: e.setup,
		PersistentPostRun: e.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), e.cfg, args)
		},
	}

	root.AddCommand(
		newConvertCmd(e),
		newListCmd(),
		newVersionCmd(version),
	)
	return root
}
