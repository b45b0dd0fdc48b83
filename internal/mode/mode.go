// Package mode selects and runs one of the three pipelines: New writes a
// configuration, Build translates a stored one and runs the build tool, and
// Fast does both in sequence.
package mode

import (
	"fmt"
	"strings"

	"github.com/AbdelazizMoustafa10m/autocore/internal/coreconf"
)

// Mode is the pipeline selected on the command line.
type Mode string

const (
	New   Mode = "new"
	Build Mode = "build"
	Fast  Mode = "fast"
)

// Writes reports whether m persists a configuration.
func (m Mode) Writes() bool { return m == New || m == Fast }

// Invokes reports whether m runs the build tool.
func (m Mode) Invokes() bool { return m == Build || m == Fast }

// Select returns the mode whose name argument is non-nil and that name.
// Exactly one must be set.
func Select(newName, buildName, fastName *string) (Mode, string, error) {
	var (
		picked []string
		m      Mode
		name   string
	)
	for _, c := range []struct {
		mode Mode
		name *string
	}{
		{New, newName},
		{Build, buildName},
		{Fast, fastName},
	} {
		if c.name == nil {
			continue
		}
		picked = append(picked, "--"+string(c.mode))
		m, name = c.mode, *c.name
	}

	switch len(picked) {
	case 0:
		return "", "", &coreconf.FieldError{Field: "mode (one of --new, --build, --fast)"}
	case 1:
		return m, name, nil
	default:
		return "", "", fmt.Errorf("%w: %s are mutually exclusive", coreconf.ErrConflictingMode, strings.Join(picked, ", "))
	}
}

// Request is one fully parsed command line.
type Request struct {
	Mode  Mode
	Name  string
	Input coreconf.Input
	// DryRun and ForceTarget apply to the build step only. A nil
	// ForceTarget means the flag was not supplied.
	DryRun      bool
	ForceTarget *string
}

// Validate checks flag combinations and returns the parsed forced target,
// which is empty when none was supplied.
func (r Request) Validate() (coreconf.Target, error) {
	if err := coreconf.ValidateName(r.Name); err != nil {
		return "", err
	}

	if r.Mode == Build {
		if flags := r.Input.ConstructionFlags(); len(flags) > 0 {
			return "", fmt.Errorf("%w: --build cannot be combined with %s", coreconf.ErrConflictingMode, strings.Join(flags, ", "))
		}
	}

	if r.Mode == New {
		var flags []string
		if r.DryRun {
			flags = append(flags, "--dry-run")
		}
		if r.ForceTarget != nil {
			flags = append(flags, "--force-target")
		}
		if len(flags) > 0 {
			return "", fmt.Errorf("%w: --new cannot be combined with %s", coreconf.ErrConflictingMode, strings.Join(flags, ", "))
		}
	}

	if r.ForceTarget == nil {
		return "", nil
	}
	t, ok := coreconf.TargetFromString(*r.ForceTarget)
	if !ok {
		allowed := make([]string, len(coreconf.Targets))
		for i, v := range coreconf.Targets {
			allowed[i] = string(v)
		}
		return "", &coreconf.ValueError{Key: "force-target", Value: *r.ForceTarget, Allowed: allowed}
	}
	return t, nil
}
