package config

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the settings are unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates the settings work but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "build.tool"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors()) > 0
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings()) > 0
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	return vr.filter(SeverityError)
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	return vr.filter(SeverityWarning)
}

func (vr *ValidationResult) filter(sev ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// instanceVarRe matches names a make-style tool accepts as a variable.
var instanceVarRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LookPathFunc resolves an executable name. exec.LookPath in production.
type LookPathFunc func(file string) (string, error)

// Validate checks the settings for correctness. meta may be nil when no
// file was loaded; lookPath may be nil to use exec.LookPath.
func Validate(cfg *Config, meta *toml.MetaData, lookPath LookPathFunc) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	validateBuild(vr, &cfg.Build, lookPath)
	validateStore(vr, &cfg.Store)
	validateUnknownKeys(vr, meta)

	return vr
}

func validateBuild(vr *ValidationResult, b *BuildConfig, lookPath LookPathFunc) {
	switch {
	case strings.TrimSpace(b.Tool) == "":
		addError(vr, "build.tool", "must not be empty")
	case strings.ContainsAny(b.Tool, " \t"):
		addError(vr, "build.tool", fmt.Sprintf("%q must be a single executable name or path", b.Tool))
	default:
		if _, err := lookPath(b.Tool); err != nil {
			addWarning(vr, "build.tool", fmt.Sprintf("%q not found on PATH", b.Tool))
		}
	}

	if !instanceVarRe.MatchString(b.InstanceVar) {
		addError(vr, "build.instance_var",
			fmt.Sprintf("%q is not a valid variable name", b.InstanceVar))
	}

	if b.DryRunFlag == "" {
		addWarning(vr, "build.dry_run_flag", "empty; --dry-run will run a real build")
	}
}

func validateStore(vr *ValidationResult, s *StoreConfig) {
	if s.Root == "" {
		addError(vr, "store.root", "must not be empty")
		return
	}
	info, err := os.Stat(s.Root)
	switch {
	case err != nil:
		addWarning(vr, "store.root", fmt.Sprintf("directory %q does not exist", s.Root))
	case !info.IsDir():
		addError(vr, "store.root", fmt.Sprintf("%q is not a directory", s.Root))
	}
}

// validateUnknownKeys reports TOML keys that did not map to any field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}
	for _, key := range meta.Undecoded() {
		addWarning(vr, strings.Join(key, "."), "unknown configuration key")
	}
}

func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
