package coreconf

import (
	"strconv"
	"strings"

	"github.com/AbdelazizMoustafa10m/autocore/internal/arch"
)

// Key names a persisted configuration field.
type Key string

const (
	KeyCore    Key = "core"
	KeyArch    Key = "arch"
	KeyExt     Key = "ext"
	KeyPriv    Key = "priv"
	KeyFabric  Key = "fabric"
	KeyNearMem Key = "near_mem"
	KeyTV      Key = Key(FeatureTandemVerify)
	KeyDB      Key = Key(FeatureDebugModule)
	KeyMemZero Key = Key(FeatureMemZeroInit)
	KeyMult    Key = "mult"
	KeyShift   Key = "shift"
	KeyTarget  Key = "target"
	KeyTopFile Key = "top_file"
	KeyBSCPath Key = "bsc_path"
)

// pathListSep separates bsc_path segments in the persisted value.
const pathListSep = ":"

// Keys lists every known key in the order the serializer writes them.
var Keys = []Key{
	KeyCore, KeyArch, KeyExt, KeyPriv, KeyFabric, KeyNearMem,
	KeyTV, KeyDB, KeyMemZero, KeyMult, KeyShift,
	KeyTarget, KeyTopFile, KeyBSCPath,
}

// Entry is one persisted key/value pair. The set of implementations is
// closed: every known key has exactly one variant below, and ParseEntry is
// the only way to obtain an Entry from text.
type Entry interface {
	Key() Key
	Value() string
	entry()
}

type CoreEntry struct{ Core Core }

func (e CoreEntry) Key() Key      { return KeyCore }
func (e CoreEntry) Value() string { return string(e.Core) }
func (CoreEntry) entry()          {}

type ArchEntry struct{ XLEN arch.XLEN }

func (e ArchEntry) Key() Key      { return KeyArch }
func (e ArchEntry) Value() string { return string(e.XLEN) }
func (ArchEntry) entry()          {}

type ExtEntry struct{ Ext arch.ExtensionSet }

func (e ExtEntry) Key() Key      { return KeyExt }
func (e ExtEntry) Value() string { return e.Ext.String() }
func (ExtEntry) entry()          {}

type PrivEntry struct{ Priv arch.PrivSet }

func (e PrivEntry) Key() Key      { return KeyPriv }
func (e PrivEntry) Value() string { return e.Priv.String() }
func (PrivEntry) entry()          {}

type FabricEntry struct{ Fabric Fabric }

func (e FabricEntry) Key() Key      { return KeyFabric }
func (e FabricEntry) Value() string { return string(e.Fabric) }
func (FabricEntry) entry()          {}

type NearMemEntry struct{ NearMem NearMem }

func (e NearMemEntry) Key() Key      { return KeyNearMem }
func (e NearMemEntry) Value() string { return string(e.NearMem) }
func (NearMemEntry) entry()          {}

// FeatureEntry covers the on/off keys tv, db and mem_zero.
type FeatureEntry struct {
	Feature Feature
	Enabled bool
}

func (e FeatureEntry) Key() Key      { return Key(e.Feature) }
func (e FeatureEntry) Value() string { return formatSwitch(e.Enabled) }
func (FeatureEntry) entry()          {}

type MultEntry struct{ Mult Multiplier }

func (e MultEntry) Key() Key      { return KeyMult }
func (e MultEntry) Value() string { return string(e.Mult) }
func (MultEntry) entry()          {}

type ShiftEntry struct{ Shift Shifter }

func (e ShiftEntry) Key() Key      { return KeyShift }
func (e ShiftEntry) Value() string { return string(e.Shift) }
func (ShiftEntry) entry()          {}

type TargetEntry struct{ Target Target }

func (e TargetEntry) Key() Key      { return KeyTarget }
func (e TargetEntry) Value() string { return string(e.Target) }
func (TargetEntry) entry()          {}

type TopFileEntry struct{ Path string }

func (e TopFileEntry) Key() Key      { return KeyTopFile }
func (e TopFileEntry) Value() string { return e.Path }
func (TopFileEntry) entry()          {}

// BSCPathEntry holds the compiler search path, persisted colon-separated.
type BSCPathEntry struct{ Paths []string }

func (e BSCPathEntry) Key() Key      { return KeyBSCPath }
func (e BSCPathEntry) Value() string { return strings.Join(e.Paths, pathListSep) }
func (BSCPathEntry) entry()          {}

// ParseEntry validates value against the domain of key and returns the
// matching Entry variant. Unknown keys yield a *KeyError, out-of-domain
// values a *ValueError. An ext value made of known letters that still lacks
// i, or has d without f, keeps the arch package's error kind.
func ParseEntry(key, value string) (Entry, error) {
	switch Key(key) {
	case KeyCore:
		c, ok := CoreFromString(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: names(Cores)}
		}
		return CoreEntry{Core: c}, nil

	case KeyArch:
		x, ok := arch.XLENFromString(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: []string{string(arch.RV32), string(arch.RV64)}}
		}
		return ArchEntry{XLEN: x}, nil

	case KeyExt:
		if value == "" {
			return nil, &ValueError{Key: key, Value: value, Reason: "must not be empty"}
		}
		for _, r := range value {
			if !strings.ContainsRune(arch.ExtensionLetters, r) {
				reason := "unknown extension " + strconv.Quote(string(r)) + "; must be drawn from " + arch.ExtensionLetters
				return nil, &ValueError{Key: key, Value: value, Reason: reason}
			}
		}
		ext, err := arch.ParseExtensions(value)
		if err != nil {
			return nil, err
		}
		return ExtEntry{Ext: ext}, nil

	case KeyPriv:
		p, bad, ok := arch.ParsePriv(value)
		if !ok {
			reason := "must not be empty"
			if bad != "" {
				reason = "unknown privilege level " + bad + "; must be drawn from m, s, u"
			}
			return nil, &ValueError{Key: key, Value: value, Reason: reason}
		}
		return PrivEntry{Priv: p}, nil

	case KeyFabric:
		f, ok := FabricFromString(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: names(Fabrics)}
		}
		return FabricEntry{Fabric: f}, nil

	case KeyNearMem:
		n, ok := NearMemFromString(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: names(NearMems)}
		}
		return NearMemEntry{NearMem: n}, nil

	case KeyTV, KeyDB, KeyMemZero:
		b, ok := parseSwitch(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: []string{SwitchOn, SwitchOff}}
		}
		return FeatureEntry{Feature: Feature(key), Enabled: b}, nil

	case KeyMult:
		m, ok := MultiplierFromString(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: names(Multipliers)}
		}
		return MultEntry{Mult: m}, nil

	case KeyShift:
		s, ok := ShifterFromString(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: names(Shifters)}
		}
		return ShiftEntry{Shift: s}, nil

	case KeyTarget:
		t, ok := TargetFromString(value)
		if !ok {
			return nil, &ValueError{Key: key, Value: value, Allowed: names(Targets)}
		}
		return TargetEntry{Target: t}, nil

	case KeyTopFile:
		if err := checkPath(key, value); err != nil {
			return nil, err
		}
		return TopFileEntry{Path: value}, nil

	case KeyBSCPath:
		paths := strings.Split(value, pathListSep)
		if err := checkPathList(key, paths); err != nil {
			return nil, err
		}
		return BSCPathEntry{Paths: paths}, nil

	default:
		return nil, &KeyError{Key: key}
	}
}

// checkPath rejects values that would not survive a write and read back
// unchanged.
func checkPath(key, value string) error {
	switch {
	case value == "":
		return &ValueError{Key: key, Value: value, Reason: "must not be empty"}
	case strings.Contains(value, Delimiter):
		return &ValueError{Key: key, Value: value, Reason: "must not contain " + Delimiter}
	case strings.ContainsAny(value, "\r\n"):
		return &ValueError{Key: key, Value: value, Reason: "must not contain line breaks"}
	case strings.TrimSpace(value) != value:
		return &ValueError{Key: key, Value: value, Reason: "must not start or end with whitespace"}
	}
	return nil
}

func checkPathList(key string, paths []string) error {
	if len(paths) == 0 {
		return &ValueError{Key: key, Value: "", Reason: "must not be empty"}
	}
	for _, p := range paths {
		if strings.Contains(p, pathListSep) {
			return &ValueError{Key: key, Value: p, Reason: "path segments must not contain " + pathListSep}
		}
		if err := checkPath(key, p); err != nil {
			return err
		}
	}
	return nil
}
