package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/juliankahlert/pulse/internal/config"
	"github.com/juliankahlert/pulse/internal/install"
	"github.com/juliankahlert/pulse/internal/logger"
	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/prompt"
	"github.com/juliankahlert/pulse/internal/state"
	"github.com/juliankahlert/pulse/internal/types"
	"github.com/juliankahlert/pulse/internal/utils"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

var (
	configPath      string
	inline          bool
	doInstall       bool
	completionShell string
)

// NewRootCmd creates the root command for the pulse CLI
func NewRootCmd() *cobra.Command {
	// Reset flag targets so repeated construction in tests starts clean
	configPath, inline, doInstall, completionShell = "", false, false, ""

	rootCmd := &cobra.Command{
		Use:   "pulse",
		Short: "Adaptive PS1 prompt engine",
		Long: `pulse prints a shell prompt that fits the terminal width.

Inside a git repository the prompt shows identity, repository, branch and the
path below the repository root, dropping detail as the terminal narrows.
Elsewhere it shows user@host and the working directory.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file layered over the system and user files")
	rootCmd.PersistentFlags().BoolVar(&inline, "inline", false, "Render the prompt on a single line")
	rootCmd.Flags().BoolVar(&doInstall, "install", false, "Install pulse into your shell startup file")
	rootCmd.Flags().StringVar(&completionShell, "generate-completions", "", "Print a completion script (bash, zsh, fish, powershell)")
	rootCmd.MarkFlagsMutuallyExclusive("install", "generate-completions")

	rootCmd.AddCommand(newPreviewCmd())

	return rootCmd
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	switch {
	case completionShell != "":
		return generateCompletions(cmd.Root(), completionShell, cmd.OutOrStdout())
	case doInstall:
		return runInstall(cmd.OutOrStdout())
	}

	log := logger.FromEnv()
	defer log.Sync()

	text, err := renderPrompt(log)
	if err != nil {
		return err
	}
	// No trailing newline: the shell prints the prompt verbatim
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// renderPrompt gathers every field before producing any output, so a failure
// never leaves a partial prompt on stdout.
func renderPrompt(log *logger.Logger) (string, error) {
	paths := configPaths(log)
	cfg, err := config.Load(paths)
	if err != nil {
		return "", err
	}
	log.Debug("config loaded", "sources", cfg.Sources())

	sm := state.NewManager(state.Config{Logger: log})
	fields, err := sm.DeriveFields()
	if err != nil {
		return "", err
	}

	width := sm.TerminalWidth()
	mode := displayMode(cfg)
	res := prompt.Compose(width, mode, fields, palette.New(cfg.Colors(), palette.DetectProfile()))

	if res.InRepo {
		log.Debug("prompt composed", "width", width, "mode", mode, "tier", res.Tier.String())
	} else {
		log.Debug("prompt composed", "width", width, "mode", mode, "repo", false)
	}
	return res.Text, nil
}

// configPaths returns the files layered into the configuration
func configPaths(log *logger.Logger) config.Paths {
	paths, err := config.DefaultPaths()
	if err != nil {
		log.Warn("skipping user config", "error", err)
		paths = config.Paths{Global: config.GlobalPath}
	}
	paths.Explicit = configPath
	return paths
}

// displayMode applies --inline over the configured mode
func displayMode(cfg *config.Config) types.DisplayMode {
	if inline {
		return types.ModeInline
	}
	return cfg.DisplayMode()
}

func runInstall(out io.Writer) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}

	res, err := install.Install(install.Options{
		Shell:   install.DetectShell(os.Getenv("SHELL")),
		Home:    home,
		Command: utils.GetPulseCommand(),
	})
	if err != nil {
		return err
	}

	if res.Replaced {
		fmt.Fprintf(out, "Replaced the existing pulse installation in %s\n", res.RCFile)
	} else {
		fmt.Fprintf(out, "Pulse has been installed to %s\n", res.RCFile)
	}
	fmt.Fprintf(out, "Please restart your shell or run 'source %s' to apply changes.\n", res.RCFile)
	return nil
}

// errUnknownShell is returned for unsupported completion targets
var errUnknownShell = errors.New("unsupported shell")

func generateCompletions(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("%w %q (expected bash, zsh, fish or powershell)", errUnknownShell, shell)
	}
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
