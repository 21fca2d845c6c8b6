package cerata

// An Edge is a directed (src -> dst) pair of Nodes, shared by both endpoints
// (spec.md §3). Stream-typed endpoints with differing structure carry a
// TypeMapper resolved through the endpoints' registered mappers.
type Edge struct {
	Src, Dst Node
	Mapper   *TypeMapper // non-nil only when Src.Type() != Dst.Type()
}

// Connect creates an Edge from src to dst and appends it to src's outbound
// and dst's inbound edge lists, per spec.md §4.4.
//
// Connect fails if either side is nil. A Literal src may connect to any
// dst; no width check is made. Otherwise, if src and dst carry different
// Types (by identity), Connect looks up a TypeMapper registered on either
// Type (transposing one registered on dst's Type) and stores it on the
// Edge; if neither Type has one, Connect fails with a ConnectivityError.
func Connect(dst, src Node) (*Edge, error) {
	if dst == nil {
		return nil, newErr(ConnectivityError, "", "Connect: dst is nil")
	}
	if src == nil {
		return nil, newErr(ConnectivityError, dst.Name(), "Connect: src is nil")
	}

	var mapper *TypeMapper
	if _, isLit := src.(*Literal); isLit {
		// Literal sources are permitted to connect to any dst of matching
		// width; no TypeMapper is required since there is no structural
		// mismatch to resolve, only a width check deferred to emission.
	} else if src.Type() != dst.Type() {
		if m, ok := src.Type().MapperTo(dst.Type()); ok {
			mapper = m
		} else if m, ok := dst.Type().MapperTo(src.Type()); ok {
			mapper = m.Transpose()
		} else {
			return nil, newErr(ConnectivityError, dst.Name(),
				"cannot connect %s (type %s) to %s (type %s): no TypeMapper registered",
				src.Name(), src.Type().Name(), dst.Name(), dst.Type().Name())
		}
	}

	e := &Edge{Src: src, Dst: dst, Mapper: mapper}
	src.addOut(e)
	dst.addIn(e)
	return e, nil
}

// siblings returns the edge list on the side of node that contains edge:
// node.Outs() if edge.Src == node, node.Ins() if edge.Dst == node.
func siblings(node Node, edge *Edge) []*Edge {
	if edge.Src == node {
		return node.Outs()
	}
	return node.Ins()
}

// vectorOffset computes the sum of widths of all sibling edges that precede
// edge in insertion order on node's side, per spec.md §4.4. This is used to
// compute `(high downto low)` slices when fanning N edges into a single
// vector-typed port.
func vectorOffset(node Node, edge *Edge) (Node, error) {
	sibs := siblings(node, edge)
	var offset Node = NewLiteralInt(0)
	for _, s := range sibs {
		if s == edge {
			break
		}
		other := s.Src
		if s.Src == node {
			other = s.Dst
		}
		w, err := Width(other.Type())
		if err != nil {
			return nil, err
		}
		offset = Add(offset, w)
	}
	return Minimize(offset), nil
}
