package coreconf

import (
	"fmt"
	"strings"
)

// Fragment is the build-tool argument text produced by one entry. Var is
// set for make-style assignments (VAR=words); otherwise Words stand alone.
type Fragment struct {
	Var   string
	Words []string
}

// String renders the fragment as it appears in the invocation, without
// shell quoting, e.g. "ARCH=-D RV32" or "-D ISA_I".
func (f Fragment) String() string {
	s := strings.Join(f.Words, " ")
	if f.Var != "" {
		return f.Var + "=" + s
	}
	return s
}

func assign(v string, words ...string) Fragment {
	return Fragment{Var: v, Words: words}
}

func define(macro string) Fragment {
	return Fragment{Words: []string{"-D", macro}}
}

// TranslateOptions adjusts translation for a single build.
type TranslateOptions struct {
	// ForceTarget, when set, replaces any persisted target entry.
	ForceTarget Target
}

// Translate converts entries into build-tool fragments, preserving entry
// order. A persisted target is dropped when opts.ForceTarget is set so that
// the invocation never carries two target tokens.
func Translate(entries []Entry, opts TranslateOptions) ([]Fragment, error) {
	var out []Fragment
	for _, e := range entries {
		switch e := e.(type) {
		case CoreEntry:
			out = append(out, assign("CORE", string(e.Core)))
		case ArchEntry:
			out = append(out, assign("ARCH", "-D", strings.ToUpper(string(e.XLEN))))
		case ExtEntry:
			for _, l := range e.Ext.Letters() {
				out = append(out, define("ISA_"+strings.ToUpper(string(l))))
			}
		case PrivEntry:
			for _, l := range e.Priv.Letters() {
				out = append(out, define("ISA_PRIV_"+strings.ToUpper(string(l))))
			}
		case FabricEntry:
			out = append(out, assign("FABRIC", "-D", "FABRIC"+string(e.Fabric)))
		case NearMemEntry:
			out = append(out, assign("NEAR_MEM", "-D", "Near_Mem_"+string(e.NearMem)))
		case FeatureEntry:
			prefix := "EXCLUDE_"
			if e.Enabled {
				prefix = "INCLUDE_"
			}
			out = append(out, define(prefix+e.Feature.Macro()))
		case MultEntry:
			out = append(out, assign("MUL", "-D", strings.ToUpper(string(e.Mult))))
		case ShiftEntry:
			out = append(out, assign("SHIFT", "-D", strings.ToUpper(string(e.Shift))))
		case TargetEntry:
			if opts.ForceTarget == "" {
				out = append(out, Fragment{Words: []string{string(e.Target)}})
			}
		case TopFileEntry:
			out = append(out, assign("BSV_TOP", e.Path))
		case BSCPathEntry:
			out = append(out, assign("BSC_PATH", "-p", strings.Join(e.Paths, pathListSep)))
		default:
			return nil, fmt.Errorf("translating %q: %w", e.Key(), ErrUnrecognizedKey)
		}
	}
	return out, nil
}
