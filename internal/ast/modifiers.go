package ast

// Modifiers is a bitset over the declaration modifier keywords (spec §3.5).
// `HasFlag` is a plain bitwise AND; invariants like "at most one
// accessibility modifier" are enforced by the semantic analyzer, not here.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModVirtual
	ModOverride
	ModAbstract
	ModExtern
	ModEnforced
	ModInherit
	ModAsync
	ModRef
)

// Has reports whether every bit set in flag is also set in m.
func (m Modifiers) Has(flag Modifiers) bool { return m&flag == flag }

// HasAny reports whether m shares any bit with flag.
func (m Modifiers) HasAny(flag Modifiers) bool { return m&flag != 0 }

// AccessibilityCount returns how many of {public, private, protected} are
// set, used to enforce "at most one accessibility modifier" during
// semantic analysis.
func (m Modifiers) AccessibilityCount() int {
	n := 0
	for _, f := range [...]Modifiers{ModPublic, ModPrivate, ModProtected} {
		if m.Has(f) {
			n++
		}
	}
	return n
}

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModPrivate, "private"},
	{ModProtected, "protected"},
	{ModStatic, "static"},
	{ModVirtual, "virtual"},
	{ModOverride, "override"},
	{ModAbstract, "abstract"},
	{ModExtern, "extern"},
	{ModEnforced, "enforced"},
	{ModInherit, "inherit"},
	{ModAsync, "async"},
	{ModRef, "ref"},
}

// String renders m in the canonical modifier order used by the code
// printer (spec §4.10's modifier ordering).
func (m Modifiers) String() string {
	s := ""
	for _, e := range modifierNames {
		if m.Has(e.flag) {
			if s != "" {
				s += " "
			}
			s += e.name
		}
	}
	return s
}
