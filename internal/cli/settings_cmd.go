package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/autocore/internal/config"
)

// settingsCmd groups the commands that inspect and create autocore.toml.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Settings file commands",
	Long:  "Inspect, validate, and create the autocore.toml settings file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var settingsDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved settings with source annotations",
	Long: `Display the fully-resolved settings showing each value and the source
it came from (cli flag, environment variable, settings file, or default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, _, err := loadAndResolveSettings()
		if err != nil {
			return err
		}
		printResolvedSettings(cmd.OutOrStdout(), resolved)
		return nil
	},
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate settings and report issues",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, meta, err := loadAndResolveSettings()
		if err != nil {
			return err
		}
		result := config.Validate(resolved.Config, meta, exec.LookPath)
		printValidationResult(cmd.OutOrStdout(), result)
		if result.HasErrors() {
			return fmt.Errorf("settings have %d error(s)", len(result.Errors()))
		}
		return nil
	},
}

var (
	initForce       bool
	initTool        string
	initInstanceVar string
	initDryRunFlag  string
)

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter autocore.toml",
	Long: `Write autocore.toml into the configuration root (--dir, or the current
directory). An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vars := config.DefaultTemplateVars()
		if cmd.Flags().Changed("tool") {
			vars.Tool = initTool
		}
		if cmd.Flags().Changed("instance-var") {
			vars.InstanceVar = initInstanceVar
		}
		if cmd.Flags().Changed("dry-run-flag") {
			vars.DryRunFlag = initDryRunFlag
		}

		dir := flagDir
		if dir == "" {
			dir = "."
		}
		path, err := config.WriteSettings(dir, vars, initForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	settingsInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing autocore.toml")
	settingsInitCmd.Flags().StringVar(&initTool, "tool", config.DefaultTool, "Build tool to record")
	settingsInitCmd.Flags().StringVar(&initInstanceVar, "instance-var", config.DefaultInstanceVar, "Variable that receives the configuration name")
	settingsInitCmd.Flags().StringVar(&initDryRunFlag, "dry-run-flag", config.DefaultDryRunFlag, "Flag passed to the tool for --dry-run")

	settingsCmd.AddCommand(settingsDebugCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

// loadAndResolveSettings loads autocore.toml and resolves it against the
// defaults, the environment and --dir. The file named by --config is used
// when given; otherwise it is searched for upward from --dir (or the current
// directory). The returned metadata is nil when no file was found.
func loadAndResolveSettings() (*config.ResolvedConfig, *toml.MetaData, error) {
	start := flagDir
	if start == "" {
		start = "."
	}
	loaded, err := config.Load(flagConfig, start)
	if err != nil {
		return nil, nil, err
	}

	var overrides config.CLIOverrides
	if flagDir != "" {
		dir := flagDir
		overrides.Root = &dir
	}

	resolved := config.Resolve(config.NewDefaults(), loaded.Config, os.LookupEnv, &overrides)
	resolved.Path = loaded.Path
	return resolved, loaded.Meta, nil
}

func sourceStyle(src config.ConfigSource) lipgloss.Style {
	switch src {
	case config.SourceFile:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	case config.SourceEnv:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	case config.SourceCLI:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	}
}

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleSection  = lipgloss.NewStyle().Bold(true)
	styleErrorLbl = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarnLbl  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const fieldWidth = 14

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out, styleHeader.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", len(title)))
	fmt.Fprintln(out)
}

func printResolvedSettings(out io.Writer, rc *config.ResolvedConfig) {
	printHeader(out, "Settings Debug")

	if rc.Path != "" {
		fmt.Fprintf(out, "Settings file: %s\n", rc.Path)
	} else {
		fmt.Fprintln(out, "Settings file: none found")
	}
	fmt.Fprintln(out)

	b := rc.Config.Build
	fmt.Fprintln(out, styleSection.Render("[build]"))
	printField(out, "tool", b.Tool, rc.Sources["build.tool"])
	printField(out, "instance_var", b.InstanceVar, rc.Sources["build.instance_var"])
	printField(out, "dry_run_flag", b.DryRunFlag, rc.Sources["build.dry_run_flag"])
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[store]"))
	printField(out, "root", rc.Config.Store.Root, rc.Sources["store.root"])
}

func printField(out io.Writer, name, value string, src config.ConfigSource) {
	label := sourceStyle(src).Render(fmt.Sprintf("(source: %s)", src))
	fmt.Fprintf(out, "  %-*s = %-30q %s\n", fieldWidth, name, value, label)
}

func printValidationResult(out io.Writer, result *config.ValidationResult) {
	printHeader(out, "Settings Validation")

	errs := result.Errors()
	warns := result.Warnings()
	if len(errs) == 0 && len(warns) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("No issues found."))
		return
	}

	if len(errs) > 0 {
		fmt.Fprintln(out, styleErrorLbl.Render("Errors:"))
		for _, issue := range errs {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}
	if len(warns) > 0 {
		fmt.Fprintln(out, styleWarnLbl.Render("Warnings:"))
		for _, issue := range warns {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(errs), len(warns))
}
