// Package invoke assembles the build-tool command line for a configuration,
// prints it, and runs it through an embedded POSIX shell interpreter.
package invoke

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/AbdelazizMoustafa10m/autocore/internal/coreconf"
)

// Invocation is one build-tool command.
type Invocation struct {
	// Tool is the build tool executable, e.g. "make".
	Tool string
	// InstanceVar names the variable that carries the configuration name.
	InstanceVar string
	// Instance is the configuration name.
	Instance string
	// Fragments are the translated configuration entries in file order.
	Fragments []coreconf.Fragment
	// ForceTarget, when set, is appended after the fragments.
	ForceTarget coreconf.Target
	// DryRun appends DryRunFlag last.
	DryRun     bool
	DryRunFlag string
}

// Args returns the argument vector after the tool name. Assignment fragments
// stay one word; standalone fragments contribute each of their words.
func (inv Invocation) Args() []string {
	args := []string{inv.InstanceVar + "=" + inv.Instance}
	for _, f := range inv.Fragments {
		if f.Var != "" {
			args = append(args, f.String())
			continue
		}
		args = append(args, f.Words...)
	}
	if inv.ForceTarget != "" {
		args = append(args, string(inv.ForceTarget))
	}
	if inv.DryRun && inv.DryRunFlag != "" {
		args = append(args, inv.DryRunFlag)
	}
	return args
}

// String renders the invocation as space-separated words without quoting,
// e.g. "make INSTANCE=foo CORE=Piccolo ARCH=-D RV32 -n".
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Tool}, inv.Args()...), " ")
}

// Shell renders the invocation with every word quoted as needed so that a
// POSIX shell splits it back into Args.
func (inv Invocation) Shell() (string, error) {
	words := append([]string{inv.Tool}, inv.Args()...)
	quoted := make([]string, len(words))
	for i, w := range words {
		q, err := syntax.Quote(w, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("quoting %q: %w", w, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}
