// Package arch parses RISC-V ISA strings such as "rv64gc" into a register
// width and a set of standard extensions.
package arch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArchitecture is returned when the ISA string does not start
	// with rv32 or rv64, or names an extension outside imafdc.
	ErrInvalidArchitecture = errors.New("invalid architecture")

	// ErrMissingMandatoryExtension is returned when the base integer
	// extension "i" is absent.
	ErrMissingMandatoryExtension = errors.New("missing mandatory extension")

	// ErrUnsatisfiedDependency is returned when an extension is present
	// without an extension it depends on ("d" requires "f").
	ErrUnsatisfiedDependency = errors.New("unsatisfied dependency")
)

// XLEN is the register width prefix of an ISA string.
type XLEN string

const (
	RV32 XLEN = "rv32"
	RV64 XLEN = "rv64"
)

// XLENFromString converts s to an XLEN. The bool is false for anything other
// than "rv32" or "rv64".
func XLENFromString(s string) (XLEN, bool) {
	switch s {
	case string(RV32):
		return RV32, true
	case string(RV64):
		return RV64, true
	default:
		return "", false
	}
}

// Arch is a decomposed ISA string.
type Arch struct {
	XLEN XLEN
	Ext  ExtensionSet
}

// String renders the canonical ISA string, e.g. "rv32imac".
func (a Arch) String() string {
	return string(a.XLEN) + a.Ext.String()
}

// generalExpansion is what the "g" shorthand stands for.
const generalExpansion = "imafd"

// Parse decomposes a lower-cased ISA string of the form rv<32|64><letters>.
// The "g" shorthand expands to "imafd" before the extension set is checked.
func Parse(s string) (Arch, error) {
	if len(s) < 4 {
		return Arch{}, fmt.Errorf("parsing %q: %w: must start with rv32 or rv64", s, ErrInvalidArchitecture)
	}
	xlen, ok := XLENFromString(s[:4])
	if !ok {
		return Arch{}, fmt.Errorf("parsing %q: %w: must start with rv32 or rv64", s, ErrInvalidArchitecture)
	}

	letters := strings.ReplaceAll(s[4:], "g", generalExpansion)
	ext, err := ParseExtensions(letters)
	if err != nil {
		return Arch{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return Arch{XLEN: xlen, Ext: ext}, nil
}
