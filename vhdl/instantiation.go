package vhdl

import (
	"sort"
	"strings"

	core "cerata/cerata"
	"cerata/utils"
)

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}
func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// concreteLeaves returns the subset of idx (flat-type indices, already
// ascending) whose flat type is a concrete leaf (not a Record/Stream
// grouping head), in ascending order, per spec.md §4.7.2's "Record-typed
// flat entries at pair-head ... produce no line themselves".
func concreteLeaves(flats []core.FlatType, idx []int) []core.FlatType {
	sorted := append([]int{}, idx...)
	sort.Ints(sorted)
	out := make([]core.FlatType, 0, len(sorted))
	for _, i := range sorted {
		k := flats[i].Type.Kind()
		if k == core.RecordKind || k == core.StreamKind {
			continue
		}
		out = append(out, flats[i])
	}
	return out
}

// renderSlice renders the VHDL index/slice for one flat leaf of width w at
// offset off, per spec.md §4.7.2: a bare name if sliced is false, "(off)"
// for a Bit leaf, "(off + w - 1 downto off)" for a Vector leaf.
func renderSlice(name string, t *core.Type, off, w core.Node, sliced bool) string {
	if !sliced {
		return name
	}
	if t.Kind() == core.VectorKind {
		hi := core.Minimize(core.Sub(core.Add(off, w), core.NewLiteralInt(1)))
		return name + "(" + core.ToString(hi) + " downto " + core.ToString(core.Minimize(off)) + ")"
	}
	return name + "(" + core.ToString(core.Minimize(off)) + ")"
}

// mapPairLines emits the port-map lines for one MappingPair on behalf of
// selfIsA (true if the port being mapped sits on the mapper's A side),
// advancing each side's offset by the other side's width so that
// concatenation across a group's multiple leaves lands at distinct slices
// (spec.md §4.7.2).
func mapPairLines(mapper *core.TypeMapper, pair core.MappingPair, selfPrefix, otherPrefix string, selfIsA, selfArray, otherArray bool) []Line {
	flatsA := core.Flatten(mapper.A)
	flatsB := core.Flatten(mapper.B)
	aLeaves := concreteLeaves(flatsA, pair.AIdx)
	bLeaves := concreteLeaves(flatsB, pair.BIdx)
	if len(aLeaves) == 0 || len(bLeaves) == 0 {
		return nil
	}

	aPrefix, bPrefix := selfPrefix, otherPrefix
	if !selfIsA {
		aPrefix, bPrefix = otherPrefix, selfPrefix
	}

	var lines []Line
	offA, offB := core.Node(core.NewLiteralInt(0)), core.Node(core.NewLiteralInt(0))
	n := maxI(len(aLeaves), len(bLeaves))
	for i := 0; i < n; i++ {
		aLeaf := aLeaves[minI(i, len(aLeaves)-1)]
		bLeaf := bLeaves[minI(i, len(bLeaves)-1)]
		wa, err := core.Width(aLeaf.Type)
		if err != nil {
			continue
		}
		wb, err := core.Width(bLeaf.Type)
		if err != nil {
			continue
		}

		aSliced := len(bLeaves) > 1 || (selfIsA && selfArray) || (!selfIsA && otherArray)
		bSliced := len(aLeaves) > 1 || (!selfIsA && selfArray) || (selfIsA && otherArray)

		aName := utils.SanitizeIdentifier(aLeaf.Name(aPrefix))
		bName := utils.SanitizeIdentifier(bLeaf.Name(bPrefix))
		sa := renderSlice(aName, aLeaf.Type, offA, wa, aSliced)
		sb := renderSlice(bName, bLeaf.Type, offB, wb, bSliced)

		if selfIsA {
			lines = append(lines, Line{sa, "=>", sb})
		} else {
			lines = append(lines, Line{sb, "=>", sa})
		}

		offA = core.Minimize(core.Add(offA, wb))
		offB = core.Minimize(core.Add(offB, wa))
	}
	return lines
}

// mapperFor returns the TypeMapper governing edge e, synthesizing an
// identity mapper when e.Mapper is nil (the two endpoints share a type by
// identity, per spec.md §4.4), plus whether the mapped port sits on the
// mapper's A (src) side.
func mapperFor(instPort *core.Port, e *core.Edge) (*core.TypeMapper, bool) {
	if e.Mapper != nil {
		return e.Mapper, e.Src == core.Node(instPort)
	}
	otherType := e.Dst.Type()
	selfIsA := true
	if e.Dst == core.Node(instPort) {
		otherType = e.Src.Type()
		selfIsA = false
	}
	return core.NewTypeMapper(instPort.Type(), otherType), selfIsA
}

// MapPort renders the port-map lines for every edge connected to instPort,
// per spec.md §4.7.2.
func MapPort(instPort *core.Port) (*Block, error) {
	_, selfIsArray := instPort.Array()
	b := NewBlock(2)

	edges := append(append([]*core.Edge{}, instPort.Ins()...), instPort.Outs()...)
	for _, e := range edges {
		mapper, selfIsA := mapperFor(instPort, e)

		var other core.Node = e.Dst
		if e.Src != core.Node(instPort) {
			other = e.Src
		}
		_, otherIsArray := other.Array()

		for _, pair := range mapper.UniqueMappingPairs() {
			lines := mapPairLines(mapper, pair, instPort.Name(), other.Name(), selfIsA, selfIsArray, otherIsArray)
			b.Lines = append(b.Lines, lines...)
		}
	}
	return b, nil
}

// InstComponent renders an Instance's `name : component` header plus
// generic map and port map, per spec.md §4.7.2:
//
//	i.name : i.component.name
//	  [generic map (<bindings>)]
//	  [port map   (<bindings>)];
//
// Generic bindings resolve bound -> default -> free (spec.md §4.2); Literal
// Boolean and String values render with VHDL quoting via core.ToString.
func InstComponent(inst *core.Instance) (string, error) {
	var sb strings.Builder
	sb.WriteString(utils.SanitizeIdentifier(inst.Name()) + " : " + utils.SanitizeIdentifier(inst.Component().Name()) + "\n")

	if params := inst.Parameters(); len(params) > 0 {
		gb := NewBlock(2)
		for i, p := range params {
			tokens := []string{utils.SanitizeIdentifier(p.Name()), "=>", core.ToString(p.Resolve())}
			if i < len(params)-1 {
				tokens[len(tokens)-1] += ","
			}
			gb.Add(tokens...)
		}
		sb.WriteString("  generic map (\n")
		sb.WriteString(gb.Render())
		sb.WriteString("\n  )\n")
	}

	pb := NewBlock(2)
	ports := inst.Ports()
	for _, p := range ports {
		lines, err := MapPort(p)
		if err != nil {
			return "", err
		}
		pb.Lines = append(pb.Lines, lines.Lines...)
	}
	for i := range pb.Lines {
		if i < len(pb.Lines)-1 {
			pb.Lines[i][len(pb.Lines[i])-1] += ","
		}
	}
	if !pb.Empty() {
		sb.WriteString("  port map (\n")
		sb.WriteString(pb.Render())
		sb.WriteString("\n  );\n")
	} else {
		out := strings.TrimRight(sb.String(), "\n")
		sb.Reset()
		sb.WriteString(out + ";\n")
	}

	return sb.String(), nil
}
