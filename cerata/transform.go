package cerata

// removeEdge splices e out of node's in/out edge list, whichever side it is
// attached on.
func removeEdge(node Node, e *Edge) {
	base := nodeBaseOf(node)
	if base == nil {
		return
	}
	for i, o := range base.outs {
		if o == e {
			base.outs = append(base.outs[:i], base.outs[i+1:]...)
			return
		}
	}
	for i, in := range base.ins {
		if in == e {
			base.ins = append(base.ins[:i], base.ins[i+1:]...)
			return
		}
	}
}

// nodeBaseOf extracts the embedded nodeBase from any concrete Node variant,
// the small typed-accessor idiom spec.md §9 substitutes for dynamic cast.
func nodeBaseOf(n Node) *nodeBase {
	switch v := n.(type) {
	case *Literal:
		return &v.nodeBase
	case *Parameter:
		return &v.nodeBase
	case *Port:
		return &v.nodeBase
	case *Signal:
		return &v.nodeBase
	case *Expression:
		return &v.nodeBase
	default:
		return nil
	}
}

// ResolvePortToPort inserts a mediating Signal on every illegal
// inst_A.port -> inst_B.port edge among c's direct child instances, per
// spec.md §4.6. VHDL forbids wiring two instances' ports directly at the
// architecture level; this rewrites such an edge into two: src -> sig,
// sig -> dst, and registers sig on c.
//
// Resolution is idempotent (spec.md §8): once an edge has been replaced,
// the instance-to-instance edge it used to be no longer exists, so a
// second call finds nothing left to resolve.
func ResolvePortToPort(c *Component) error {
	seen := map[*Edge]bool{}
	var candidates []*Edge
	for _, inst := range c.instances {
		for _, p := range inst.ports {
			for _, e := range p.outs {
				if !seen[e] {
					seen[e] = true
					candidates = append(candidates, e)
				}
			}
			for _, e := range p.ins {
				if !seen[e] {
					seen[e] = true
					candidates = append(candidates, e)
				}
			}
		}
	}

	resolved := map[*Edge]bool{}
	for _, e := range candidates {
		if resolved[e] {
			continue
		}
		srcPort, srcIsPort := e.Src.(*Port)
		dstPort, dstIsPort := e.Dst.(*Port)
		if !srcIsPort || !dstIsPort {
			continue // signal already mediates, or a literal/parameter edge
		}

		srcParent, srcOK := srcPort.Parent()
		dstParent, dstOK := dstPort.Parent()
		if !srcOK || !dstOK {
			return newErr(TransformError, e.Src.Name(), "port-to-port resolution: edge endpoint has no parent graph")
		}

		srcInst, srcIsInst := srcParent.(*Instance)
		dstInst, dstIsInst := dstParent.(*Instance)
		if !srcIsInst || !dstIsInst {
			continue // one endpoint belongs to c itself: already legal
		}
		if srcInst == dstInst {
			continue
		}

		sig := NewSignal(c.name+"_"+dstPort.Name(), dstPort.typ)
		c.AddSignal(sig)

		removeEdge(srcPort, e)
		removeEdge(dstPort, e)

		e1, err := Connect(sig, srcPort)
		if err != nil {
			return err
		}
		e2, err := Connect(dstPort, sig)
		if err != nil {
			return err
		}
		resolved[e1] = true
		resolved[e2] = true
	}
	return nil
}

// ResolveAllPortToPort walks the whole component hierarchy reachable from
// top (including every distinct child Component, visited once) and runs
// ResolvePortToPort on each.
func ResolveAllPortToPort(top *Component) error {
	visited := map[*Component]bool{}
	var walk func(c *Component) error
	walk = func(c *Component) error {
		if visited[c] {
			return nil
		}
		visited[c] = true
		if err := ResolvePortToPort(c); err != nil {
			return err
		}
		for _, inst := range c.instances {
			if err := walk(inst.component); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(top)
}

// reachableTypes collects the distinct Types appearing on any Port, Signal
// or Parameter anywhere in the component hierarchy rooted at top.
func reachableTypes(top *Component) []*Type {
	seen := map[*Type]bool{}
	var order []*Type
	add := func(t *Type) {
		if t != nil && !seen[t] {
			seen[t] = true
			order = append(order, t)
		}
	}
	visited := map[*Component]bool{}
	var walk func(c *Component)
	walk = func(c *Component) {
		if visited[c] {
			return
		}
		visited[c] = true
		for _, p := range c.parameters {
			add(p.typ)
		}
		for _, p := range c.ports {
			add(p.typ)
		}
		for _, s := range c.signals {
			add(s.typ)
		}
		for _, inst := range c.instances {
			for _, p := range inst.ports {
				add(p.typ)
			}
			walk(inst.component)
		}
	}
	walk(top)
	return order
}

// ExpandStreams rewrites every Stream reachable from top's component
// hierarchy into a concrete Record{valid, ready, element}, and reissues
// every TypeMapper registered on an affected Type against the post-
// expansion flat views, per spec.md §4.6 and §4.5.
//
// Expansion is idempotent: a Type already marked expanded (the
// MetaExpandedKey metadata flag) is left untouched, so re-running this
// over the same hierarchy is a no-op (spec.md §8).
func ExpandStreams(top *Component) error {
	types := reachableTypes(top)

	// Snapshot every mapper's pre-expansion A/B flat views before any
	// mutation, since reissue needs the "before" shape to align indices.
	type mapperSnapshot struct {
		mapper  *TypeMapper
		oldA    []FlatType
		oldB    []FlatType
	}
	var snapshots []*mapperSnapshot
	seenMappers := map[*TypeMapper]bool{}
	for _, t := range types {
		for _, m := range t.mappers {
			if seenMappers[m] {
				continue
			}
			seenMappers[m] = true
			snapshots = append(snapshots, &mapperSnapshot{
				mapper: m,
				oldA:   Flatten(m.A),
				oldB:   Flatten(m.B),
			})
		}
	}

	for _, t := range types {
		expandType(t, map[*Type]bool{})
	}

	for _, snap := range snapshots {
		if err := reissueMapper(snap.mapper, snap.oldA, snap.oldB); err != nil {
			return err
		}
	}
	return nil
}

// expandType recursively rewrites every unexpanded Stream reachable from t.
func expandType(t *Type, visiting map[*Type]bool) {
	if t == nil || visiting[t] {
		return
	}
	visiting[t] = true

	switch t.kind {
	case RecordKind:
		for _, f := range t.fields {
			expandType(f.Type, visiting)
		}
	case StreamKind:
		if !t.expanded {
			original := t.element
			t.element = Record(t.name+"_rec",
				Field{Name: "valid", Type: Bit("valid")},
				Field{Name: "ready", Type: Bit("ready"), Invert: true},
				Field{Name: t.elementName, Type: original},
			)
			t.expanded = true
			t.SetMeta(MetaExpandedKey, "true")
		}
		expandType(t.element, visiting)
	}
}

// alignFlat returns, for each index into old (a flat-type sequence
// captured before expansion), the corresponding index into new (the same
// type's flat-type sequence after expansion). A Stream head keeps its
// position; three new entries (record head, valid, ready) are inserted
// after it in new, so subsequent old indices shift by 3 relative to new.
// A stream that was already expanded before old was captured has its record
// head in both sequences and gets no shift.
func alignFlat(old, new []FlatType) []int {
	mapping := make([]int, len(old))
	i, j := 0, 0
	for i < len(old) && j < len(new) {
		mapping[i] = j
		if old[i].Type.kind == StreamKind && i+1 < len(old) && j+3 < len(new) && new[j].Type.kind == StreamKind && old[i+1].Type != new[j+1].Type {
			i++
			j += 4 // stream head consumed; skip record head + valid + ready
			continue
		}
		i++
		j++
	}
	return mapping
}

// reissueMapper rebuilds m's matrix against the post-expansion flat views
// of m.A and m.B, preserving original ordinals and adding fresh ordinals
// connecting the valid/ready pairs introduced at every stream-head mapping
// (spec.md §4.5).
func reissueMapper(m *TypeMapper, oldA, oldB []FlatType) error {
	newA := Flatten(m.A)
	newB := Flatten(m.B)
	if len(newA) == len(oldA) && len(newB) == len(oldB) {
		return nil // nothing expanded under this mapper's types
	}

	aMap := alignFlat(oldA, newA)
	bMap := alignFlat(oldB, newB)

	newM := make([][]int, len(newA))
	for i := range newM {
		newM[i] = make([]int, len(newB))
	}

	type handshake struct{ ai, bj int }
	var handshakes []handshake

	for i, row := range m.M {
		for j, k := range row {
			if k == 0 {
				continue
			}
			ni, nj := aMap[i], bMap[j]
			newM[ni][nj] = k
			if oldA[i].Type.kind == StreamKind && oldB[j].Type.kind == StreamKind {
				handshakes = append(handshakes, handshake{ai: ni, bj: nj})
			}
		}
	}

	m.M = newM

	for _, h := range handshakes {
		if h.ai+3 < m.Height() && h.bj+3 < m.Width() {
			if err := m.Add(h.ai+2, h.bj+2); err != nil { // valid
				return err
			}
			if err := m.Add(h.ai+3, h.bj+3); err != nil { // ready
				return err
			}
		}
	}
	return nil
}
