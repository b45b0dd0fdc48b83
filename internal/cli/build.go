package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/autocore/internal/coreconf"
	"github.com/AbdelazizMoustafa10m/autocore/internal/invoke"
	"github.com/AbdelazizMoustafa10m/autocore/internal/logging"
	"github.com/AbdelazizMoustafa10m/autocore/internal/mode"
)

// Mode and construction flag values. Whether a flag was supplied is read
// from cmd.Flags().Changed, never from these values.
var (
	flagNew   string
	flagBuild string
	flagFast  string

	flagCore        string
	flagArch        string
	flagPriv        string
	flagFabric      string
	flagNearMem     string
	flagTV          bool
	flagDB          bool
	flagMemZero     bool
	flagMult        string
	flagShift       string
	flagTarget      string
	flagTopFile     string
	flagBSCPath     []string
	flagDryRun      bool
	flagForceTarget string
)

func registerModeFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringVarP(&flagNew, "new", "n", "", "Write a new configuration NAME")
	f.StringVarP(&flagBuild, "build", "b", "", "Build the stored configuration NAME")
	f.StringVarP(&flagFast, "fast", "f", "", "Write configuration NAME, then build it")

	f.StringVar(&flagCore, "core", "", "Processor core: "+joinNames(coreconf.Cores))
	f.StringVar(&flagArch, "arch", "", "ISA string, e.g. rv32imac or rv64gc")
	f.StringVar(&flagPriv, "priv", "", "Privilege levels drawn from m, s, u, e.g. msu")
	f.StringVar(&flagFabric, "fabric", "", "Bus fabric width: "+joinNames(coreconf.Fabrics)+" (default "+string(coreconf.DefaultFabric)+")")
	f.StringVar(&flagNearMem, "near-mem", "", "Near memory: "+joinNames(coreconf.NearMems)+" (default "+string(coreconf.DefaultNearMem)+")")
	f.BoolVar(&flagTV, "tv", false, "Include the tandem verification trace port")
	f.BoolVar(&flagDB, "db", false, "Include the debug module")
	f.BoolVar(&flagMemZero, "init-mem-zero", false, "Zero-initialize memory models")
	f.StringVar(&flagMult, "mult", "", "Multiplier: "+joinNames(coreconf.Multipliers)+" (default "+string(coreconf.DefaultMult)+", needs the m extension)")
	f.StringVar(&flagShift, "shift", "", "Shifter: "+joinNames(coreconf.Shifters)+" (default "+string(coreconf.DefaultShift)+", mult needs the m extension)")
	f.StringVar(&flagTarget, "target", "", "Default build target: "+joinNames(coreconf.Targets))
	f.StringVar(&flagTopFile, "top-file", "", "Top-level source file")
	f.StringArrayVar(&flagBSCPath, "bsc-path", nil, "Compiler search path, colon-separated (repeatable)")

	f.BoolVar(&flagDryRun, "dry-run", false, "Pass the build tool its dry-run flag")
	f.StringVar(&flagForceTarget, "force-target", "", "Build this target instead of the stored one: "+joinNames(coreconf.Targets))

	_ = cmd.RegisterFlagCompletionFunc("core", fixedCompletion(coreconf.Cores))
	_ = cmd.RegisterFlagCompletionFunc("fabric", fixedCompletion(coreconf.Fabrics))
	_ = cmd.RegisterFlagCompletionFunc("near-mem", fixedCompletion(coreconf.NearMems))
	_ = cmd.RegisterFlagCompletionFunc("mult", fixedCompletion(coreconf.Multipliers))
	_ = cmd.RegisterFlagCompletionFunc("shift", fixedCompletion(coreconf.Shifters))
	_ = cmd.RegisterFlagCompletionFunc("target", fixedCompletion(coreconf.Targets))
	_ = cmd.RegisterFlagCompletionFunc("force-target", fixedCompletion(coreconf.Targets))
	_ = cmd.RegisterFlagCompletionFunc("arch", fixedCompletion([]string{"rv32i", "rv32imac", "rv64imac", "rv64gc"}))
	_ = cmd.RegisterFlagCompletionFunc("build", storedNameCompletion)
	_ = cmd.RegisterFlagCompletionFunc("fast", storedNameCompletion)
	_ = cmd.RegisterFlagCompletionFunc("new", cobra.NoFileCompletions)
}

// runRoot selects the mode, collects construction input and hands both to
// the controller.
func runRoot(cmd *cobra.Command, args []string) error {
	m, name, err := mode.Select(
		stringFlag(cmd, "new", flagNew),
		stringFlag(cmd, "build", flagBuild),
		stringFlag(cmd, "fast", flagFast),
	)
	if err != nil {
		return fmt.Errorf("%w (see autocore --help)", err)
	}

	req := mode.Request{
		Mode:        m,
		Name:        name,
		Input:       constructionInput(cmd),
		DryRun:      flagDryRun,
		ForceTarget: stringFlag(cmd, "force-target", flagForceTarget),
	}

	resolved, _, err := loadAndResolveSettings()
	if err != nil {
		return err
	}
	settings := resolved.Config

	store := coreconf.NewStore(settings.Store.Root)
	driver := invoke.NewDriver(
		invoke.WithStdout(cmd.OutOrStdout()),
		invoke.WithStderr(cmd.ErrOrStderr()),
		invoke.WithDir(settings.Store.Root),
	)
	ctrl := mode.NewController(store, driver, mode.Settings{
		Tool:        settings.Build.Tool,
		InstanceVar: settings.Build.InstanceVar,
		DryRunFlag:  settings.Build.DryRunFlag,
	})

	logger := logging.New("cli")
	logger.Debug("running", "mode", m, "name", name, "root", store.Root(), "settings", resolved.Path)

	_, err = ctrl.Run(cmd.Context(), req)
	return err
}

// constructionInput maps supplied construction flags to coreconf.Input.
func constructionInput(cmd *cobra.Command) coreconf.Input {
	in := coreconf.Input{
		Core:         stringFlag(cmd, "core", flagCore),
		Arch:         stringFlag(cmd, "arch", flagArch),
		Priv:         stringFlag(cmd, "priv", flagPriv),
		Fabric:       stringFlag(cmd, "fabric", flagFabric),
		NearMem:      stringFlag(cmd, "near-mem", flagNearMem),
		TandemVerify: boolFlag(cmd, "tv", flagTV),
		DebugModule:  boolFlag(cmd, "db", flagDB),
		MemZeroInit:  boolFlag(cmd, "init-mem-zero", flagMemZero),
		Mult:         stringFlag(cmd, "mult", flagMult),
		Shift:        stringFlag(cmd, "shift", flagShift),
		Target:       stringFlag(cmd, "target", flagTarget),
		TopFile:      stringFlag(cmd, "top-file", flagTopFile),
	}
	if cmd.Flags().Changed("bsc-path") {
		in.BSCPath = []string{}
		for _, v := range flagBSCPath {
			in.BSCPath = append(in.BSCPath, strings.Split(v, ":")...)
		}
	}
	return in
}

func stringFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func boolFlag(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func joinNames[T ~string](values []T) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}

func fixedCompletion[T ~string](values []T) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = string(v)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// storedNameCompletion offers the names of configurations under the root.
func storedNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	root := flagDir
	if root == "" {
		root = os.Getenv("AUTOCORE_ROOT")
	}
	summaries, err := coreconf.NewStore(root).List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, s := range summaries {
		if strings.HasPrefix(s.Name, toComplete) {
			names = append(names, s.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
