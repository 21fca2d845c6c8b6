package vhdl

import (
	"strings"

	core "cerata/cerata"
	"cerata/utils"
)

// DeclPort renders one line per VHDL-filtered flat leaf of p's type:
// "<prefix>_<name-parts> : <in|out, inverted if flagged> <type-decl>",
// per spec.md §4.7.1.
func DeclPort(p *core.Port, reg *TypeRegistry) (*Block, error) {
	flats := core.FilterForVHDL(core.Flatten(p.Type()))
	b := NewBlock(1)
	for _, f := range flats {
		dir := p.Dir
		if f.Invert {
			dir = dir.Reversed()
		}
		td, err := DeclType(f.Type, reg)
		if err != nil {
			return nil, err
		}
		b.Add(utils.SanitizeIdentifier(f.Name(p.Name())), ":", dir.String(), td)
	}
	return b, nil
}

// arrayTypeDecl renders the VHDL type declaration for one flat leaf of an
// ArrayPort/ArraySignal's element type, vectorized by size: a Bit leaf
// becomes std_logic_vector(size-1 downto 0), a Vector(w) leaf becomes
// std_logic_vector(w*size-1 downto 0), per spec.md §4.7.1.
func arrayTypeDecl(t *core.Type, size core.Node) (string, error) {
	switch t.Kind() {
	case core.BitKind, core.ClockKind, core.ResetKind:
		hi := core.Minimize(core.Sub(size, core.NewLiteralInt(1)))
		return "std_logic_vector(" + core.ToString(hi) + " downto 0)", nil
	case core.VectorKind:
		w, err := core.Width(t)
		if err != nil {
			return "", err
		}
		total := core.Minimize(core.Mul(w, size))
		hi := core.Minimize(core.Sub(total, core.NewLiteralInt(1)))
		return "std_logic_vector(" + core.ToString(hi) + " downto 0)", nil
	default:
		return "", newVHDLError(t.Name(), "arrayTypeDecl: array ports of kind %s are not representable", t.Kind())
	}
}

// DeclArrayPort renders a NodeArray of Ports exactly like DeclPort, except
// each flat leaf's width is multiplied by size, per spec.md §4.7.1.
func DeclArrayPort(a *core.NodeArray, reg *TypeRegistry) (*Block, error) {
	base, ok := a.BaseNode().(*core.Port)
	if !ok {
		return nil, newVHDLError(a.Name(), "DeclArrayPort: NodeArray base is not a Port")
	}
	flats := core.FilterForVHDL(core.Flatten(base.Type()))
	b := NewBlock(1)
	for _, f := range flats {
		dir := base.Dir
		if f.Invert {
			dir = dir.Reversed()
		}
		td, err := arrayTypeDecl(f.Type, a.Size())
		if err != nil {
			return nil, err
		}
		b.Add(utils.SanitizeIdentifier(f.Name(base.Name())), ":", dir.String(), td)
	}
	return b, nil
}

// DeclSignal renders "signal <flat-name> : <type-decl>;" for every
// VHDL-filtered flat leaf of s's type.
func DeclSignal(s *core.Signal, reg *TypeRegistry) (*Block, error) {
	flats := core.FilterForVHDL(core.Flatten(s.Type()))
	b := NewBlock(1)
	for _, f := range flats {
		td, err := DeclType(f.Type, reg)
		if err != nil {
			return nil, err
		}
		b.Add("signal", utils.SanitizeIdentifier(f.Name(s.Name())), ":", td+";")
	}
	return b, nil
}

func genericsBlock(params []*core.Parameter) (*Block, error) {
	b := NewBlock(2)
	for i, p := range params {
		td, err := DeclType(p.Type(), nil)
		if err != nil {
			return nil, err
		}
		tokens := []string{utils.SanitizeIdentifier(p.Name()), ":", td}
		if p.Default != nil {
			tokens = append(tokens, ":=", core.ToString(p.Default))
		}
		if i < len(params)-1 {
			tokens[len(tokens)-1] += ";"
		}
		b.Add(tokens...)
	}
	return b, nil
}

func portsBlock(ports []*core.Port, arrays []*core.NodeArray, reg *TypeRegistry) (*Block, error) {
	b := NewBlock(2)
	for _, p := range ports {
		sub, err := DeclPort(p, reg)
		if err != nil {
			return nil, err
		}
		b.Lines = append(b.Lines, sub.Lines...)
	}
	for _, a := range arrays {
		sub, err := DeclArrayPort(a, reg)
		if err != nil {
			return nil, err
		}
		b.Lines = append(b.Lines, sub.Lines...)
	}
	for i := 0; i < len(b.Lines)-1; i++ {
		line := b.Lines[i]
		line[len(line)-1] += ";"
	}
	return b, nil
}

// DeclComponent renders c's entity or component declaration, per
// spec.md §4.7.1:
//
//	entity|component NAME is
//	  [generic (<Parameters>);]
//	  [port (<Ports; ArrayPorts>);]
//	end entity|component;
//
// with the last item in each parenthesized list lacking a trailing ';'.
func DeclComponent(c *core.Component, asEntity bool, reg *TypeRegistry) (string, error) {
	kw := "component"
	if asEntity {
		kw = "entity"
	}

	var sb strings.Builder
	name := utils.SanitizeIdentifier(c.Name())
	sb.WriteString(kw + " " + name + " is\n")

	if len(c.Parameters()) > 0 {
		gb, err := genericsBlock(c.Parameters())
		if err != nil {
			return "", err
		}
		sb.WriteString("  generic (\n")
		sb.WriteString(gb.Render())
		sb.WriteString("\n  );\n")
	}

	if len(c.Ports()) > 0 || len(c.Arrays()) > 0 {
		pb, err := portsBlock(c.Ports(), c.Arrays(), reg)
		if err != nil {
			return "", err
		}
		sb.WriteString("  port (\n")
		sb.WriteString(pb.Render())
		sb.WriteString("\n  );\n")
	}

	sb.WriteString("end " + kw + ";\n")
	return sb.String(), nil
}
