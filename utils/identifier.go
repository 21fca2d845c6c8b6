// Package utils provides small text utilities shared by the VHDL emitter:
// identifier sanitization and measuring rendered text width, grounded on
// the teacher's mask package -- a small, single-purpose, heavily-commented
// bit-twiddling utility package that this package mirrors in spirit for
// text instead of bits.
package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// vhdlReserved holds the VHDL-93 keywords that SanitizeIdentifier must never
// emit unescaped, since the emitter renders plain identifiers, not escaped
// ones.
var vhdlReserved = map[string]bool{
	"entity": true, "architecture": true, "component": true, "generic": true,
	"port": true, "signal": true, "process": true, "begin": true, "end": true,
	"is": true, "in": true, "out": true, "inout": true, "buffer": true,
	"type": true, "record": true, "of": true, "std_logic": true, "natural": true,
	"integer": true, "boolean": true, "string": true, "others": true, "when": true,
}

// SanitizeIdentifier rewrites name into a legal VHDL identifier: leading
// digits get an underscore prefix, illegal characters become underscores,
// and reserved words get an "_i" suffix (for "identifier"), mirroring how
// Fletchgen's original identifier.h disambiguates generated names without
// losing readability.
func SanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if vhdlReserved[strings.ToLower(out)] {
		out += "_i"
	}
	return out
}

// DisplayWidth measures the rendered cell width of s the way lipgloss does
// internally for column alignment, via golang.org/x/text/width, so the VHDL
// Block layout's column accounting agrees with the explorer TUI's panes
// byte-for-byte (SPEC_FULL.md §6.1).
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// Pad right-pads s with spaces to at least n display-width columns.
func Pad(s string, n int) string {
	w := DisplayWidth(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}
