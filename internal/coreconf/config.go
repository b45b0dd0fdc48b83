// Package coreconf models a hardware core build configuration: building it
// from command-line input, persisting it as key=>value lines, decoding those
// lines, and translating them into build-tool argument fragments.
package coreconf

import (
	"fmt"
	"strings"

	"github.com/AbdelazizMoustafa10m/autocore/internal/arch"
)

// Default values for optional fields.
const (
	DefaultFabric  = Fabric64
	DefaultNearMem = NearMemCaches
	DefaultMult    = MultSynth
	DefaultShift   = ShiftBarrel
)

// Input captures raw construction values from the command line. A nil
// pointer (or nil slice) means the flag was not supplied; a pointer to the
// zero value means it was supplied with that value.
type Input struct {
	Core    *string
	Arch    *string
	Priv    *string
	Fabric  *string
	NearMem *string
	Mult    *string
	Shift   *string
	Target  *string
	TopFile *string
	BSCPath []string

	TandemVerify *bool
	DebugModule  *bool
	MemZeroInit  *bool
}

// ConstructionFlags returns the flag names, in a stable order, of every
// field that was supplied.
func (in Input) ConstructionFlags() []string {
	var flags []string
	add := func(set bool, name string) {
		if set {
			flags = append(flags, "--"+name)
		}
	}
	add(in.Core != nil, "core")
	add(in.Arch != nil, "arch")
	add(in.Priv != nil, "priv")
	add(in.Fabric != nil, "fabric")
	add(in.NearMem != nil, "near-mem")
	add(in.TandemVerify != nil, "tv")
	add(in.DebugModule != nil, "db")
	add(in.MemZeroInit != nil, "init-mem-zero")
	add(in.Mult != nil, "mult")
	add(in.Shift != nil, "shift")
	add(in.Target != nil, "target")
	add(in.TopFile != nil, "top-file")
	add(in.BSCPath != nil, "bsc-path")
	return flags
}

// Configuration is a validated build description.
type Configuration struct {
	Core    Core
	Arch    arch.Arch
	Priv    arch.PrivSet
	Fabric  Fabric
	NearMem NearMem
	Mult    Multiplier
	Shift   Shifter

	TandemVerify bool
	DebugModule  bool
	MemZeroInit  bool

	// Optional fields; the zero value means absent.
	Target  Target
	TopFile string
	BSCPath []string

	explicit map[Key]bool
}

// NewDefaults returns a Configuration holding only default values. It is not
// valid on its own: core, arch and priv are unset.
func NewDefaults() *Configuration {
	return &Configuration{
		Fabric:   DefaultFabric,
		NearMem:  DefaultNearMem,
		Mult:     DefaultMult,
		Shift:    DefaultShift,
		explicit: make(map[Key]bool),
	}
}

// Build validates in and returns the resulting Configuration. core, arch and
// priv are required. An explicit multiplier, or the multiplier-based
// shifter, requires the M extension.
func Build(in Input) (*Configuration, error) {
	for _, req := range []struct {
		field string
		value *string
	}{
		{"core", in.Core},
		{"arch", in.Arch},
		{"priv", in.Priv},
	} {
		if req.value == nil {
			return nil, &FieldError{Field: req.field}
		}
	}

	c := NewDefaults()

	core, ok := CoreFromString(*in.Core)
	if !ok {
		return nil, &ValueError{Key: string(KeyCore), Value: *in.Core, Allowed: names(Cores)}
	}
	c.Core = core
	c.explicit[KeyCore] = true

	a, err := arch.Parse(strings.ToLower(*in.Arch))
	if err != nil {
		return nil, fmt.Errorf("arch: %w", err)
	}
	c.Arch = a
	c.explicit[KeyArch] = true
	c.explicit[KeyExt] = true

	p, bad, ok := arch.ParsePriv(strings.ToLower(*in.Priv))
	if !ok {
		reason := "must not be empty"
		if bad != "" {
			reason = "unknown privilege level " + bad + "; must be drawn from m, s, u"
		}
		return nil, &ValueError{Key: string(KeyPriv), Value: *in.Priv, Reason: reason}
	}
	c.Priv = p
	c.explicit[KeyPriv] = true

	if in.Fabric != nil {
		f, ok := FabricFromString(*in.Fabric)
		if !ok {
			return nil, &ValueError{Key: string(KeyFabric), Value: *in.Fabric, Allowed: names(Fabrics)}
		}
		c.Fabric = f
		c.explicit[KeyFabric] = true
	}

	if in.NearMem != nil {
		n, ok := NearMemFromString(*in.NearMem)
		if !ok {
			return nil, &ValueError{Key: string(KeyNearMem), Value: *in.NearMem, Allowed: names(NearMems)}
		}
		c.NearMem = n
		c.explicit[KeyNearMem] = true
	}

	if in.TandemVerify != nil {
		c.TandemVerify = *in.TandemVerify
		c.explicit[KeyTV] = true
	}
	if in.DebugModule != nil {
		c.DebugModule = *in.DebugModule
		c.explicit[KeyDB] = true
	}
	if in.MemZeroInit != nil {
		c.MemZeroInit = *in.MemZeroInit
		c.explicit[KeyMemZero] = true
	}

	if in.Mult != nil {
		m, ok := MultiplierFromString(*in.Mult)
		if !ok {
			return nil, &ValueError{Key: string(KeyMult), Value: *in.Mult, Allowed: names(Multipliers)}
		}
		if !c.Arch.Ext.Has('m') {
			return nil, fmt.Errorf("mult %q: %w: requires the \"m\" extension", m, ErrUnsatisfiedDependency)
		}
		c.Mult = m
		c.explicit[KeyMult] = true
	}

	if in.Shift != nil {
		s, ok := ShifterFromString(*in.Shift)
		if !ok {
			return nil, &ValueError{Key: string(KeyShift), Value: *in.Shift, Allowed: names(Shifters)}
		}
		if s == ShiftMult && !c.Arch.Ext.Has('m') {
			return nil, fmt.Errorf("shift %q: %w: requires the \"m\" extension", s, ErrUnsatisfiedDependency)
		}
		c.Shift = s
		c.explicit[KeyShift] = true
	}

	if in.Target != nil {
		t, ok := TargetFromString(*in.Target)
		if !ok {
			return nil, &ValueError{Key: string(KeyTarget), Value: *in.Target, Allowed: names(Targets)}
		}
		c.Target = t
		c.explicit[KeyTarget] = true
	}

	if in.TopFile != nil {
		if err := checkPath(string(KeyTopFile), *in.TopFile); err != nil {
			return nil, err
		}
		c.TopFile = *in.TopFile
		c.explicit[KeyTopFile] = true
	}

	if in.BSCPath != nil {
		if err := checkPathList(string(KeyBSCPath), in.BSCPath); err != nil {
			return nil, err
		}
		c.BSCPath = append([]string(nil), in.BSCPath...)
		c.explicit[KeyBSCPath] = true
	}

	return c, nil
}

// Explicit reports whether key was supplied on the command line, as opposed
// to holding its default.
func (c *Configuration) Explicit(key Key) bool {
	return c.explicit[key]
}

// Entries returns the entries to persist, in serialization order. Required
// fields are always present; optional fields appear when they were supplied
// explicitly or differ from their default.
func (c *Configuration) Entries() []Entry {
	entries := []Entry{
		CoreEntry{Core: c.Core},
		ArchEntry{XLEN: c.Arch.XLEN},
		ExtEntry{Ext: c.Arch.Ext},
		PrivEntry{Priv: c.Priv},
	}
	if c.Explicit(KeyFabric) || c.Fabric != DefaultFabric {
		entries = append(entries, FabricEntry{Fabric: c.Fabric})
	}
	if c.Explicit(KeyNearMem) || c.NearMem != DefaultNearMem {
		entries = append(entries, NearMemEntry{NearMem: c.NearMem})
	}
	if c.Explicit(KeyTV) || c.TandemVerify {
		entries = append(entries, FeatureEntry{Feature: FeatureTandemVerify, Enabled: c.TandemVerify})
	}
	if c.Explicit(KeyDB) || c.DebugModule {
		entries = append(entries, FeatureEntry{Feature: FeatureDebugModule, Enabled: c.DebugModule})
	}
	if c.Explicit(KeyMemZero) || c.MemZeroInit {
		entries = append(entries, FeatureEntry{Feature: FeatureMemZeroInit, Enabled: c.MemZeroInit})
	}
	if c.Explicit(KeyMult) || c.Mult != DefaultMult {
		entries = append(entries, MultEntry{Mult: c.Mult})
	}
	if c.Explicit(KeyShift) || c.Shift != DefaultShift {
		entries = append(entries, ShiftEntry{Shift: c.Shift})
	}
	if c.Target != "" {
		entries = append(entries, TargetEntry{Target: c.Target})
	}
	if c.TopFile != "" {
		entries = append(entries, TopFileEntry{Path: c.TopFile})
	}
	if len(c.BSCPath) > 0 {
		entries = append(entries, BSCPathEntry{Paths: c.BSCPath})
	}
	return entries
}
