package config

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from autocore.toml.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// Environment variables consulted by Resolve.
const (
	EnvBuildTool   = "AUTOCORE_BUILD_TOOL"
	EnvInstanceVar = "AUTOCORE_INSTANCE_VAR"
	EnvDryRunFlag  = "AUTOCORE_DRY_RUN_FLAG"
	EnvRoot        = "AUTOCORE_ROOT"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "build.tool"
	Path    string                  // settings file used, empty if none
}

// CLIOverrides captures flag values that can override configuration. A nil
// field means the flag was not given.
type CLIOverrides struct {
	Root *string
}

// EnvFunc looks up environment variables. os.LookupEnv in production.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration in priority order:
// CLI flags > environment variables > settings file > defaults.
// fileConfig may be nil when no file was found.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	b := &rc.Config.Build
	s := &rc.Config.Store

	// Layer 1: defaults.
	setString(&b.Tool, defaults.Build.Tool, "build.tool", SourceDefault, rc.Sources)
	setString(&b.InstanceVar, defaults.Build.InstanceVar, "build.instance_var", SourceDefault, rc.Sources)
	setString(&b.DryRunFlag, defaults.Build.DryRunFlag, "build.dry_run_flag", SourceDefault, rc.Sources)
	setString(&s.Root, defaults.Store.Root, "store.root", SourceDefault, rc.Sources)

	// Layer 2: file. Empty strings mean "not set in file".
	if fileConfig != nil {
		mergeString(&b.Tool, fileConfig.Build.Tool, "build.tool", SourceFile, rc.Sources)
		mergeString(&b.InstanceVar, fileConfig.Build.InstanceVar, "build.instance_var", SourceFile, rc.Sources)
		mergeString(&b.DryRunFlag, fileConfig.Build.DryRunFlag, "build.dry_run_flag", SourceFile, rc.Sources)
		mergeString(&s.Root, fileConfig.Store.Root, "store.root", SourceFile, rc.Sources)
	}

	// Layer 3: environment. A set variable wins even when empty.
	for _, m := range []struct {
		env    string
		target *string
		path   string
	}{
		{EnvBuildTool, &b.Tool, "build.tool"},
		{EnvInstanceVar, &b.InstanceVar, "build.instance_var"},
		{EnvDryRunFlag, &b.DryRunFlag, "build.dry_run_flag"},
		{EnvRoot, &s.Root, "store.root"},
	} {
		if val, ok := envFn(m.env); ok {
			setString(m.target, val, m.path, SourceEnv, rc.Sources)
		}
	}

	// Layer 4: CLI.
	if overrides.Root != nil {
		setString(&s.Root, *overrides.Root, "store.root", SourceCLI, rc.Sources)
	}

	return rc
}

// setString unconditionally sets the target and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty.
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}
