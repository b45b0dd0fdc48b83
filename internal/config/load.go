package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the name of the autocore settings file.
const ConfigFileName = "autocore.toml"

// FindConfigFile walks up from startDir looking for autocore.toml and returns
// its absolute path, or "" when none exists up to the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromFile parses the TOML file at path. The returned metadata reports
// unknown keys via MetaData.Undecoded(). A relative store.root is rewritten
// relative to the file's directory.
func LoadFromFile(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("loading settings %s: %w", path, err)
	}
	if cfg.Store.Root != "" && !filepath.IsAbs(cfg.Store.Root) {
		cfg.Store.Root = filepath.Join(filepath.Dir(path), cfg.Store.Root)
	}
	return &cfg, md, nil
}

// Loaded is the outcome of Load.
type Loaded struct {
	Config *Config        // nil when no file was found
	Meta   *toml.MetaData // nil when no file was found
	Path   string
}

// Load reads the settings file. An explicit path must exist; otherwise the
// file is searched for from startDir upward and its absence is not an error.
func Load(explicitPath, startDir string) (*Loaded, error) {
	path := explicitPath
	if path == "" {
		found, err := FindConfigFile(startDir)
		if err != nil {
			return nil, fmt.Errorf("finding %s: %w", ConfigFileName, err)
		}
		if found == "" {
			return &Loaded{}, nil
		}
		path = found
	} else if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("settings file %s: %w", path, err)
		}
		return nil, fmt.Errorf("checking settings file %s: %w", path, err)
	}

	cfg, md, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Meta: &md, Path: path}, nil
}
