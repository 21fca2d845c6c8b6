package cerata

import "fmt"

// A TypeKind tags the variant a Type holds. Bit, Vector, Clock and Reset are
// concrete (they map directly onto wires); the rest are abstract and only
// usable as generics or as Literal carriers until a transform (stream
// expansion) or a TypeMapper resolves them onto something concrete.
type TypeKind int

const (
	BitKind TypeKind = iota
	VectorKind
	ClockKind
	ResetKind
	IntegerKind
	NaturalKind
	StringKind
	BooleanKind
	RecordKind
	StreamKind
)

func (k TypeKind) String() string {
	switch k {
	case BitKind:
		return "Bit"
	case VectorKind:
		return "Vector"
	case ClockKind:
		return "Clock"
	case ResetKind:
		return "Reset"
	case IntegerKind:
		return "Integer"
	case NaturalKind:
		return "Natural"
	case StringKind:
		return "String"
	case BooleanKind:
		return "Boolean"
	case RecordKind:
		return "Record"
	case StreamKind:
		return "Stream"
	default:
		return "UnknownType"
	}
}

// Concrete reports whether the type variant maps directly onto wires, i.e.
// it has a well-defined width and can appear as a flattened leaf.
func (k TypeKind) Concrete() bool {
	switch k {
	case BitKind, VectorKind, ClockKind, ResetKind:
		return true
	default:
		return false
	}
}

// A Field is one named member of a Record. Invert marks that, relative to
// the direction of the enclosing port, this field's direction (and that of
// all its descendants) is reversed.
type Field struct {
	Name   string
	Type   *Type
	Invert bool
}

// A Type is a tagged description of what a Node carries, per spec.md §3.
// Types are constructed bottom-up and shared through a TypePool so that
// wire-level-identical types can be compared and rendered once.
type Type struct {
	kind TypeKind
	name string

	width Node // Vector only: a Literal or Parameter-derived expression
	domain string // Clock/Reset only: named clock domain

	fields []Field // Record only, ordered

	elementName string // Stream only
	element     *Type  // Stream only

	mappers   []*TypeMapper
	meta      map[string]string
	expanded  bool // true once stream expansion has rewritten this type
}

// Static singletons for the abstract primitives. Equality for these is by
// identity, per spec.md §3.
var (
	abstractInteger = &Type{kind: IntegerKind, name: "integer"}
	abstractNatural = &Type{kind: NaturalKind, name: "natural"}
	abstractString  = &Type{kind: StringKind, name: "string"}
	abstractBoolean = &Type{kind: BooleanKind, name: "boolean"}
)

// Integer returns the singleton abstract integer type.
func Integer() *Type { return abstractInteger }

// Natural returns the singleton abstract natural type.
func Natural() *Type { return abstractNatural }

// StringType returns the singleton abstract string type. Named StringType,
// not String, so it doesn't collide with Type.String().
func StringType() *Type { return abstractString }

// Boolean returns the singleton abstract boolean type.
func Boolean() *Type { return abstractBoolean }

// Bit returns a fresh concrete 1-wire type. Bit carries no parametric state
// so every call is safe to use independently; callers wanting sharing
// semantics should register it in a TypePool.
func Bit(name string) *Type {
	return &Type{kind: BitKind, name: name}
}

// Vector returns a concrete N-wire type whose width is a Node expression
// (never a raw integer, per spec.md §3's invariant).
func Vector(name string, width Node) *Type {
	return &Type{kind: VectorKind, name: name, width: width}
}

// Clock returns a concrete 1-wire clock type tagged with a clock domain.
func Clock(name, domain string) *Type {
	return &Type{kind: ClockKind, name: name, domain: domain}
}

// Reset returns a concrete 1-wire reset type tagged with a clock domain.
func Reset(name, domain string) *Type {
	return &Type{kind: ResetKind, name: name, domain: domain}
}

// Record returns an abstract ordered-field container type.
func Record(name string, fields ...Field) *Type {
	return &Type{kind: RecordKind, name: name, fields: fields}
}

// Stream returns an abstract type denoting a lazy handshaken sequence of
// elementType.
func Stream(name, elementName string, elementType *Type) *Type {
	return &Type{kind: StreamKind, name: name, elementName: elementName, element: elementType}
}

func (t *Type) Kind() TypeKind  { return t.kind }
func (t *Type) Name() string    { return t.name }
func (t *Type) Width() Node     { return t.width }
func (t *Type) Domain() string  { return t.domain }
func (t *Type) Fields() []Field { return t.fields }
func (t *Type) Element() *Type  { return t.element }
func (t *Type) IsExpanded() bool { return t.expanded }

// Meta returns the metadata value for key, and whether it was set. Metadata
// is the sole extension point by which collaborators (e.g. Fletchgen's
// stream profiler, or the stream-expansion marker) communicate with the
// core without widening the Type variant set, per spec.md §9.
func (t *Type) Meta(key string) (string, bool) {
	v, ok := t.meta[key]
	return v, ok
}

// SetMeta attaches a metadata value to the type.
func (t *Type) SetMeta(key, value string) {
	if t.meta == nil {
		t.meta = map[string]string{}
	}
	t.meta[key] = value
}

// MetaExpandedKey marks a Type as already stream-expanded (idempotence
// marker for the stream-expansion transform).
const MetaExpandedKey = "cerata.stream_expanded"

// MetaForceVector is the metadata key marking a Stream to be rendered as a
// vector even when it has a single producer/consumer. No code in this
// module reads the key: setting it does not change emitted VHDL.
const MetaForceVector = "cerata.force_vector"

// AddMapper registers a TypeMapper from this type onto other. Idempotent:
// registering the same (other) pairing twice keeps only the latest.
func (t *Type) AddMapper(m *TypeMapper) {
	for i, existing := range t.mappers {
		if existing.B == m.B {
			t.mappers[i] = m
			return
		}
	}
	t.mappers = append(t.mappers, m)
}

// MapperTo returns the registered TypeMapper from this type to other, if
// any. If none is registered but the types are identical by identity, an
// identity mapper is synthesized (never cached, since identity mapping
// needs no state).
func (t *Type) MapperTo(other *Type) (*TypeMapper, bool) {
	for _, m := range t.mappers {
		if m.B == other {
			return m, true
		}
	}
	if t == other {
		return NewTypeMapper(t, other), true
	}
	return nil, false
}

// A FlatType is one leaf (or grouping head) produced by recursively walking
// a Type, per spec.md §4.1.
type FlatType struct {
	NameParts []string
	Type      *Type
	Invert    bool
}

// Name joins NameParts with underscores, the convention used throughout
// VHDL declaration and instantiation.
func (f FlatType) Name(prefix string) string {
	if prefix == "" && len(f.NameParts) == 0 {
		return f.Type.name
	}
	parts := append([]string{}, f.NameParts...)
	if prefix != "" {
		parts = append([]string{prefix}, parts...)
	}
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += "_"
		}
		s += p
	}
	return s
}

// Flatten recursively walks t and returns its deterministic, order-preserving
// flat-type sequence, per spec.md §4.1. Flatten(T) is always non-empty and
// Flatten(T)[0].Type == T (spec.md §8).
func Flatten(t *Type) []FlatType {
	return flatten(t, nil, false)
}

func flatten(t *Type, prefix []string, invert bool) []FlatType {
	head := FlatType{NameParts: append([]string{}, prefix...), Type: t, Invert: invert}

	switch t.kind {
	case RecordKind:
		out := []FlatType{head}
		for _, f := range t.fields {
			childPrefix := append(append([]string{}, prefix...), f.Name)
			out = append(out, flatten(f.Type, childPrefix, invert != f.Invert)...)
		}
		return out
	case StreamKind:
		out := []FlatType{head}
		childPrefix := append(append([]string{}, prefix...), t.elementName)
		out = append(out, flatten(t.element, childPrefix, invert)...)
		return out
	default:
		return []FlatType{head}
	}
}

// WeaklyEqual reports whether a and b have the same-length flat-type
// sequences with the same variant tag at every index, per spec.md §4.1.
func WeaklyEqual(a, b *Type) bool {
	fa, fb := Flatten(a), Flatten(b)
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i].Type.kind != fb[i].Type.kind {
			return false
		}
	}
	return true
}

// FilterForVHDL removes abstract flat entries (Record and Stream grouping
// heads, and the Integer/Natural/String/Boolean primitives, which carry no
// wire) from a flattened sequence. Per the Open Question in spec.md §9, an
// unresolved abstract Stream entry is first resolved in place to two
// primitive bits (valid, and ready marked inverted) so that calling
// FilterForVHDL directly on a type that stream expansion has not yet
// rewritten still produces a sane port list; Record heads are always
// grouping-only and never produce output.
func FilterForVHDL(flats []FlatType) []FlatType {
	resolved := make([]FlatType, 0, len(flats)+2)
	for _, f := range flats {
		if f.Type.kind == StreamKind && !f.Type.expanded {
			resolved = append(resolved, f)
			validName := append(append([]string{}, f.NameParts...), "valid")
			readyName := append(append([]string{}, f.NameParts...), "ready")
			resolved = append(resolved,
				FlatType{NameParts: validName, Type: Bit("valid"), Invert: f.Invert},
				FlatType{NameParts: readyName, Type: Bit("ready"), Invert: !f.Invert},
			)
			continue
		}
		resolved = append(resolved, f)
	}

	out := make([]FlatType, 0, len(resolved))
	for _, f := range resolved {
		switch f.Type.kind {
		case RecordKind, StreamKind, IntegerKind, NaturalKind, StringKind, BooleanKind:
			continue
		default:
			out = append(out, f)
		}
	}
	return out
}

// Width returns the Node expression for t's wire width. Bit/Clock/Reset are
// width 1; Vector's width is its stored Node. Abstract kinds have no width;
// callers asking for one get a TypeError.
func Width(t *Type) (Node, error) {
	switch t.kind {
	case BitKind, ClockKind, ResetKind:
		return NewLiteralInt(1), nil
	case VectorKind:
		return t.width, nil
	default:
		return nil, newErr(TypeError, t.name, "type kind %s has no defined width", t.kind)
	}
}

func (t *Type) String() string {
	return fmt.Sprintf("Type(%s, %s)", t.name, t.kind)
}
