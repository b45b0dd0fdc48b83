// Package config loads and resolves autocore.toml, the settings that tell
// autocore which build tool to run and where configurations live.
package config

// Config is the top-level structure mapping to autocore.toml.
type Config struct {
	Build BuildConfig `toml:"build"`
	Store StoreConfig `toml:"store"`
}

// BuildConfig maps to the [build] section in autocore.toml. It shapes the
// command line handed to the external build tool.
type BuildConfig struct {
	// Tool is the build tool executable, looked up on PATH.
	Tool string `toml:"tool"`
	// InstanceVar is the variable bound to the configuration name.
	InstanceVar string `toml:"instance_var"`
	// DryRunFlag is appended when --dry-run is given.
	DryRunFlag string `toml:"dry_run_flag"`
}

// StoreConfig maps to the [store] section in autocore.toml.
type StoreConfig struct {
	// Root is the directory holding conf/. A relative root in the file is
	// taken relative to the file's directory.
	Root string `toml:"root"`
}
