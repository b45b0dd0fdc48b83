// Package cli implements the autocore command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/autocore/internal/invoke"
	"github.com/AbdelazizMoustafa10m/autocore/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagDir     string
	flagNoColor bool
)

// rootCmd is the base command for autocore. Run without a subcommand it
// generates and/or builds a core configuration.
var rootCmd = &cobra.Command{
	Use:   "autocore",
	Short: "Generate and build hardware core configurations",
	Long: `autocore records a processor core build configuration (core, ISA string,
privilege levels, bus fabric, optional hardware blocks) under a name, then
translates the stored configuration into a build tool command line and runs it.

Exactly one of --new, --build or --fast selects what happens:

  --new NAME     validate the construction flags and write conf/NAME.conf
  --build NAME   translate conf/NAME.conf and run the build tool
  --fast NAME    --new followed by --build

The build command line is printed before it runs.`,
	Example: `  autocore --new foo --core Piccolo --arch rv32imac --priv mu --fabric 32
  autocore --build foo --dry-run
  autocore --fast bar --core Flute --arch rv64gc --priv msu --force-target verilog`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("AUTOCORE_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("AUTOCORE_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("AUTOCORE_NO_COLOR") != "") {
			flagNoColor = true
		}

		logging.Setup(logging.Options{
			Verbose: flagVerbose,
			Quiet:   flagQuiet,
			Format:  logging.FormatFromEnv(os.Getenv),
		})

		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		// --dir only names the configuration root; the process never chdirs.
		if flagDir != "" {
			info, err := os.Stat(flagDir)
			if err != nil {
				return fmt.Errorf("configuration root %s: %w", flagDir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("configuration root %s: not a directory", flagDir)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: AUTOCORE_VERBOSE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: AUTOCORE_QUIET)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to autocore.toml settings file")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Directory containing conf/ (env: AUTOCORE_ROOT)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: AUTOCORE_NO_COLOR, NO_COLOR)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	registerModeFlags(rootCmd)
}

// Execute runs the root command and returns the exit code. A failing build
// tool's own exit status is passed through; every other error exits 1.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintf(os.Stderr, "autocore: %v\n", err)

	var exitErr *invoke.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

// NewRootCmd returns a new root command carrying the same flags and
// subcommands as the global one, for the shell completion and man page
// generators.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		Example:           rootCmd.Example,
		Args:              rootCmd.Args,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              rootCmd.RunE,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}

	cmd.PersistentFlags().AddFlagSet(rootCmd.PersistentFlags())
	cmd.Flags().AddFlagSet(rootCmd.LocalNonPersistentFlags())

	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
