package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juliankahlert/pulse/internal/config"
	"github.com/juliankahlert/pulse/internal/logger"
	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/state"
	"github.com/juliankahlert/pulse/internal/tui"
	"github.com/juliankahlert/pulse/internal/types"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the prompt at different terminal widths",
		Long: `Open an interactive preview of the prompt.

The preview provides:
- The prompt rendered at the live terminal width
- A simulated width adjusted with the arrow keys
- The width of every layout tier and which one was chosen
- Live reload of colors when a config file is saved`,
		Aliases: []string{"tui"},
		Args:    cobra.NoArgs,
		RunE:    runPreviewCmd,
	}

	return cmd
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	log := logger.FromEnv()
	defer log.Sync()

	paths := configPaths(log)

	var mode types.DisplayMode
	if inline {
		mode = types.ModeInline
	}

	err := tui.Run(tui.Options{
		Fields:      state.NewManager(state.Config{Logger: log}),
		LoadConfig:  func() (*config.Config, error) { return config.Load(paths) },
		ConfigFiles: paths.Files(),
		Mode:        mode,
		Profile:     palette.DetectProfile(),
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
