// Package dot renders a structural-graph DOT dump of a cerata Component
// tree, for debugging. Per spec.md §1 this is an out-of-core-scope
// collaborator, kept minimal: no example repo in the retrieval pack uses a
// graph-visualization library (DESIGN.md), so this stays on fmt plus
// strings rather than reaching for an external DOT/graphviz binding.
package dot

import (
	"fmt"
	"strings"

	core "cerata/cerata"
)

// Dump renders top's instance hierarchy (direct children only, one level,
// matching how a single generated component's architecture looks) as a
// Graphviz DOT digraph: one node per instance, and one edge per connection
// leaving an instance port, drawn between the graphs that own its two
// endpoints (connections whose endpoints have no owning graph are skipped).
func Dump(top *core.Component) string {
	var sb strings.Builder
	name := sanitize(top.Name())
	sb.WriteString(fmt.Sprintf("digraph %s {\n", name))
	sb.WriteString("  rankdir=LR;\n")

	for _, inst := range top.Instances() {
		sb.WriteString(fmt.Sprintf("  %s [label=%q shape=box];\n", sanitize(inst.Name()), inst.Name()+"\\n"+inst.Component().Name()))
	}

	seen := map[*core.Edge]bool{}
	for _, inst := range top.Instances() {
		for _, p := range inst.Ports() {
			for _, e := range p.Outs() {
				if seen[e] {
					continue
				}
				seen[e] = true
				writeEdge(&sb, e)
			}
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func writeEdge(sb *strings.Builder, e *core.Edge) {
	srcOwner := ownerLabel(e.Src)
	dstOwner := ownerLabel(e.Dst)
	if srcOwner == "" || dstOwner == "" {
		return
	}
	fmt.Fprintf(sb, "  %s -> %s [label=%q];\n", srcOwner, dstOwner, e.Src.Name()+" -> "+e.Dst.Name())
}

func ownerLabel(n core.Node) string {
	parent, ok := n.Parent()
	if !ok {
		return ""
	}
	return sanitize(parent.Name())
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
