package vhdl

import (
	"strconv"

	core "cerata/cerata"
)

// A TypeRegistry maps Records to their declared VHDL type name. A Record
// with no registered name renders inline as an anonymous std_logic_vector
// sized to its flattened width, per the "primitive vs. named type"
// distinction kept from vhdl_types.cc (SPEC_FULL.md §4.8); a Record with a
// registered name renders as a reference to that name, presumed declared
// in a package the caller writes out separately.
type TypeRegistry struct {
	names map[*core.Type]string
}

// NewTypeRegistry constructs an empty TypeRegistry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{names: map[*core.Type]string{}}
}

// Register associates t with a declared VHDL record type name.
func (r *TypeRegistry) Register(t *core.Type, name string) {
	r.names[t] = name
}

// NameFor returns t's registered VHDL type name, if any.
func (r *TypeRegistry) NameFor(t *core.Type) (string, bool) {
	if r == nil {
		return "", false
	}
	n, ok := r.names[t]
	return n, ok
}

// DeclType renders t's VHDL type literal, per spec.md §4.7.1:
//
//	Bit -> std_logic
//	Vector(w) -> std_logic_vector(w-1 downto 0), w-1 minimized
//	Integer -> integer; Natural -> natural; Boolean -> boolean; String -> string
//	Record -> its registered VHDL name, or an anonymous vector fallback
//	Stream -> recurse into element-type
func DeclType(t *core.Type, reg *TypeRegistry) (string, error) {
	switch t.Kind() {
	case core.BitKind, core.ClockKind, core.ResetKind:
		return "std_logic", nil
	case core.VectorKind:
		w, err := core.Width(t)
		if err != nil {
			return "", err
		}
		hi := core.Minimize(core.Sub(w, core.NewLiteralInt(1)))
		return "std_logic_vector(" + core.ToString(hi) + " downto 0)", nil
	case core.IntegerKind:
		return "integer", nil
	case core.NaturalKind:
		return "natural", nil
	case core.BooleanKind:
		return "boolean", nil
	case core.StringKind:
		return "string", nil
	case core.RecordKind:
		if name, ok := reg.NameFor(t); ok {
			return name, nil
		}
		width, err := flatWidth(t)
		if err != nil {
			return "", err
		}
		return "std_logic_vector(" + strconv.Itoa(width-1) + " downto 0)", nil
	case core.StreamKind:
		return DeclType(t.Element(), reg)
	default:
		return "", newVHDLError(t.Name(), "DeclType: unhandled type kind %s", t.Kind())
	}
}

// flatWidth sums the concrete widths of t's VHDL-filtered flattened leaves,
// used as the anonymous-vector fallback width for an unnamed Record.
func flatWidth(t *core.Type) (int, error) {
	flats := core.FilterForVHDL(core.Flatten(t))
	total := 0
	for _, f := range flats {
		w, err := core.Width(f.Type)
		if err != nil {
			return 0, err
		}
		lit, ok := literalInt(core.Minimize(w))
		if !ok {
			return 0, newVHDLError(t.Name(), "flatWidth: leaf %s has a non-constant width", f.Name(""))
		}
		total += lit
	}
	return total, nil
}

func literalInt(n core.Node) (int, bool) {
	l, ok := n.(*core.Literal)
	if !ok {
		return 0, false
	}
	return int(l.IntValue), true
}
