package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/charmbracelet/log"
)

//go:embed templates/autocore.toml.tmpl
var templateFS embed.FS

const settingsTemplate = "templates/autocore.toml.tmpl"

// TemplateVars holds the values substituted into a new settings file.
type TemplateVars struct {
	Tool        string
	InstanceVar string
	DryRunFlag  string
	Root        string
}

// DefaultTemplateVars returns the built-in defaults as template values.
func DefaultTemplateVars() TemplateVars {
	d := NewDefaults()
	return TemplateVars{
		Tool:        d.Build.Tool,
		InstanceVar: d.Build.InstanceVar,
		DryRunFlag:  d.Build.DryRunFlag,
		Root:        d.Store.Root,
	}
}

// RenderSettings returns the settings file content for vars.
func RenderSettings(vars TemplateVars) ([]byte, error) {
	content, err := templateFS.ReadFile(settingsTemplate)
	if err != nil {
		return nil, fmt.Errorf("reading embedded template: %w", err)
	}
	tmpl, err := template.New(ConfigFileName).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSettings renders vars into destDir/autocore.toml and returns the
// path. An existing file yields an error wrapping os.ErrExist unless force
// is set.
func WriteSettings(destDir string, vars TemplateVars, force bool) (string, error) {
	dest := filepath.Join(destDir, ConfigFileName)
	if _, err := os.Stat(dest); err == nil {
		if !force {
			return dest, fmt.Errorf("%s: %w", dest, os.ErrExist)
		}
		log.Debug("overwriting existing file", "path", dest)
	}

	out, err := RenderSettings(vars)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", destDir, err)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", dest, err)
	}
	log.Debug("created settings file", "path", dest)
	return dest, nil
}
