package arch

import (
	"fmt"
	"strings"
)

// extensionOrder is the canonical rendering order of standard extensions.
const extensionOrder = "imafdc"

// ExtensionLetters is every letter an ExtensionSet may hold, in canonical
// order.
const ExtensionLetters = extensionOrder

// privOrder is the canonical rendering order of privilege levels.
const privOrder = "msu"

// ExtensionSet is a set of single-letter ISA extensions drawn from imafdc.
// The zero value is the empty set.
type ExtensionSet uint8

// Has reports whether letter is a member of the set.
func (s ExtensionSet) Has(letter byte) bool {
	i := strings.IndexByte(extensionOrder, letter)
	return i >= 0 && s&(1<<i) != 0
}

// Letters returns the members in canonical order.
func (s ExtensionSet) Letters() []byte {
	return members(uint8(s), extensionOrder)
}

// String renders the members in canonical order, e.g. "imac".
func (s ExtensionSet) String() string {
	return string(s.Letters())
}

// ParseExtensions parses a bare string of extension letters (no rv prefix,
// no "g" shorthand). Duplicates collapse. The result always contains "i"
// and never contains "d" without "f".
func ParseExtensions(letters string) (ExtensionSet, error) {
	bits, bad, ok := collect(letters, extensionOrder)
	if !ok {
		return 0, fmt.Errorf("%w: unknown extension %q", ErrInvalidArchitecture, bad)
	}
	set := ExtensionSet(bits)
	if !set.Has('i') {
		return 0, fmt.Errorf("%w: base extension \"i\" is required", ErrMissingMandatoryExtension)
	}
	if set.Has('d') && !set.Has('f') {
		return 0, fmt.Errorf("%w: extension \"d\" requires \"f\"", ErrUnsatisfiedDependency)
	}
	return set, nil
}

// PrivSet is a set of privilege levels drawn from m, s and u.
type PrivSet uint8

// Has reports whether level is a member of the set.
func (p PrivSet) Has(level byte) bool {
	i := strings.IndexByte(privOrder, level)
	return i >= 0 && p&(1<<i) != 0
}

// Letters returns the members in canonical order.
func (p PrivSet) Letters() []byte {
	return members(uint8(p), privOrder)
}

// String renders the members in canonical order, e.g. "mu".
func (p PrivSet) String() string {
	return string(p.Letters())
}

// ParsePriv parses a string of privilege letters. It returns false when the
// string is empty or contains a letter outside msu; the second return value
// is the first offending letter in that case.
func ParsePriv(letters string) (PrivSet, string, bool) {
	if letters == "" {
		return 0, "", false
	}
	bits, bad, ok := collect(letters, privOrder)
	return PrivSet(bits), bad, ok
}

func collect(letters, order string) (uint8, string, bool) {
	var bits uint8
	for _, r := range letters {
		i := strings.IndexRune(order, r)
		if i < 0 {
			return 0, string(r), false
		}
		bits |= 1 << i
	}
	return bits, "", true
}

func members(bits uint8, order string) []byte {
	out := make([]byte, 0, len(order))
	for i := 0; i < len(order); i++ {
		if bits&(1<<i) != 0 {
			out = append(out, order[i])
		}
	}
	return out
}
