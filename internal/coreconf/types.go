package coreconf

// Core selects which processor core the generator builds.
type Core string

const (
	CorePiccolo Core = "Piccolo"
	CoreFlute   Core = "Flute"
)

// Cores lists every supported core.
var Cores = []Core{CorePiccolo, CoreFlute}

// CoreFromString converts value to a Core. The bool is false when the value
// is not a supported core.
func CoreFromString(value string) (Core, bool) { return lookup(value, Cores) }

// Fabric is the width of the system bus fabric in bits.
type Fabric string

const (
	Fabric32 Fabric = "32"
	Fabric64 Fabric = "64"
)

// Fabrics lists every supported fabric width.
var Fabrics = []Fabric{Fabric32, Fabric64}

// FabricFromString converts value to a Fabric.
func FabricFromString(value string) (Fabric, bool) { return lookup(value, Fabrics) }

// NearMem selects the memory closest to the pipeline.
type NearMem string

const (
	NearMemCaches NearMem = "Caches"
	NearMemTCM    NearMem = "TCM"
)

// NearMems lists every supported near-memory option.
var NearMems = []NearMem{NearMemCaches, NearMemTCM}

// NearMemFromString converts value to a NearMem.
func NearMemFromString(value string) (NearMem, bool) { return lookup(value, NearMems) }

// Multiplier selects the integer multiplier implementation.
type Multiplier string

const (
	MultSerial Multiplier = "serial"
	MultSynth  Multiplier = "synth"
)

// Multipliers lists every supported multiplier.
var Multipliers = []Multiplier{MultSerial, MultSynth}

// MultiplierFromString converts value to a Multiplier.
func MultiplierFromString(value string) (Multiplier, bool) { return lookup(value, Multipliers) }

// Shifter selects the shifter implementation. ShiftMult reuses the
// multiplier and therefore needs the M extension.
type Shifter string

const (
	ShiftSerial Shifter = "serial"
	ShiftBarrel Shifter = "barrel"
	ShiftMult   Shifter = "mult"
)

// Shifters lists every supported shifter.
var Shifters = []Shifter{ShiftSerial, ShiftBarrel, ShiftMult}

// ShifterFromString converts value to a Shifter.
func ShifterFromString(value string) (Shifter, bool) { return lookup(value, Shifters) }

// Target is a build-tool goal. The empty Target means "none selected".
type Target string

const (
	TargetAll       Target = "all"
	TargetVerilog   Target = "verilog"
	TargetBsim      Target = "bsim"
	TargetVerilator Target = "verilator"
	TargetIverilog  Target = "iverilog"
)

// Targets lists every known build target.
var Targets = []Target{TargetAll, TargetVerilog, TargetBsim, TargetVerilator, TargetIverilog}

// TargetFromString converts value to a Target.
func TargetFromString(value string) (Target, bool) { return lookup(value, Targets) }

// Feature is an optional hardware block toggled on or off. Its string value
// is the persisted key.
type Feature string

const (
	FeatureTandemVerify Feature = "tv"
	FeatureDebugModule  Feature = "db"
	FeatureMemZeroInit  Feature = "mem_zero"
)

// Macro returns the suffix of the INCLUDE_/EXCLUDE_ define for f.
func (f Feature) Macro() string {
	switch f {
	case FeatureTandemVerify:
		return "TANDEM_VERIF"
	case FeatureDebugModule:
		return "GDB_CONTROL"
	case FeatureMemZeroInit:
		return "MEM_ZERO_INIT"
	default:
		return ""
	}
}

// Boolean literals used in persisted files.
const (
	SwitchOn  = "on"
	SwitchOff = "off"
)

func formatSwitch(b bool) string {
	if b {
		return SwitchOn
	}
	return SwitchOff
}

func parseSwitch(value string) (bool, bool) {
	switch value {
	case SwitchOn:
		return true, true
	case SwitchOff:
		return false, true
	default:
		return false, false
	}
}

func lookup[T ~string](value string, domain []T) (T, bool) {
	for _, v := range domain {
		if string(v) == value {
			return v, true
		}
	}
	return "", false
}

func names[T ~string](domain []T) []string {
	out := make([]string, len(domain))
	for i, v := range domain {
		out[i] = string(v)
	}
	return out
}
