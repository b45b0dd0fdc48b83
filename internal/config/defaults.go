package config

// Built-in defaults.
const (
	DefaultTool        = "make"
	DefaultInstanceVar = "INSTANCE"
	DefaultDryRunFlag  = "-n"
	DefaultRoot        = "."
)

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		Build: BuildConfig{
			Tool:        DefaultTool,
			InstanceVar: DefaultInstanceVar,
			DryRunFlag:  DefaultDryRunFlag,
		},
		Store: StoreConfig{
			Root: DefaultRoot,
		},
	}
}
