package cerata

import "strconv"

// A GraphKind tags whether a Graph is a Component or an Instance.
type GraphKind int

const (
	ComponentKind GraphKind = iota
	InstanceKind
)

// A Graph is either a Component (owns Parameters, Ports, Signals,
// NodeArrays, and child Instances) or an Instance (owns a reference to a
// Component plus independent copies of that Component's Parameters and
// Ports), per spec.md §3.
type Graph interface {
	Kind() GraphKind
	Name() string
	Parameters() []*Parameter
	Ports() []*Port
	Arrays() []*NodeArray
}

// A Component is a named reusable hardware block with an interface.
type Component struct {
	name       string
	parameters []*Parameter
	ports      []*Port
	signals    []*Signal
	arrays     []*NodeArray
	instances  []*Instance
}

// NewComponent constructs an empty Component and sets each supplied node's
// parent, per the lifecycle description in spec.md §3 ("Nodes are created,
// then attached to Graphs, setting their parent").
func NewComponent(name string, params []*Parameter, ports []*Port, signals []*Signal) *Component {
	c := &Component{name: name}
	for _, p := range params {
		p.setParent(c)
		c.parameters = append(c.parameters, p)
	}
	for _, p := range ports {
		p.setParent(c)
		c.ports = append(c.ports, p)
	}
	for _, s := range signals {
		s.setParent(c)
		c.signals = append(c.signals, s)
	}
	return c
}

func (c *Component) Kind() GraphKind        { return ComponentKind }
func (c *Component) Name() string           { return c.name }
func (c *Component) Parameters() []*Parameter { return c.parameters }
func (c *Component) Ports() []*Port         { return c.ports }
func (c *Component) Signals() []*Signal     { return c.signals }
func (c *Component) Arrays() []*NodeArray   { return c.arrays }
func (c *Component) Instances() []*Instance { return c.instances }

// AddSignal registers a Signal as belonging to this Component (used both by
// users building a design and by the port-to-port resolution transform,
// spec.md §4.6, which inserts mediating signals).
func (c *Component) AddSignal(s *Signal) {
	s.setParent(c)
	c.signals = append(c.signals, s)
}

// AddArray registers a NodeArray (an ArrayPort or ArraySignal) on this
// Component.
func (c *Component) AddArray(a *NodeArray) {
	a.base.setParent(c)
	a.base.setArray(a)
	c.arrays = append(c.arrays, a)
}

// AddChild adds g as a child of c. Per spec.md §3, a Component may only add
// Instance children; attempting to add anything else (in particular, a raw
// Component) fails with a ConnectivityError. If inst is already a child of
// another Component, it is simply appended again rather than rejected: per
// spec.md §7, this is a logged, non-fatal situation ("parent list grows"),
// modeled here by Instance.parents being a slice rather than a single
// back-pointer.
func (c *Component) AddChild(g Graph) error {
	inst, ok := g.(*Instance)
	if !ok {
		return newErr(ConnectivityError, g.Name(), "Component %s may only add Instance children", c.name)
	}
	inst.parents = append(inst.parents, c)
	c.instances = append(c.instances, inst)
	return nil
}

// An Instance is a placement of a Component inside another, with its own
// copy of the interface.
type Instance struct {
	name       string
	component  *Component
	parameters []*Parameter
	ports      []*Port
	arrays     []*NodeArray
	parents    []*Component
}

// NewInstance copies every Port, Parameter, and NodeArray of Component c,
// setting each copy's parent to the new Instance, per spec.md §4.3. No
// Signals are copied: Instances never own Signals.
func NewInstance(name string, c *Component) *Instance {
	inst := &Instance{name: name, component: c}
	for _, p := range c.parameters {
		cp := p.Copy().(*Parameter)
		cp.setParent(inst)
		inst.parameters = append(inst.parameters, cp)
	}
	for _, p := range c.ports {
		cp := p.Copy().(*Port)
		cp.setParent(inst)
		inst.ports = append(inst.ports, cp)
	}
	for _, a := range c.arrays {
		cp := a.Copy()
		cp.base.setParent(inst)
		cp.base.setArray(cp)
		inst.arrays = append(inst.arrays, cp)
	}
	return inst
}

func (i *Instance) Kind() GraphKind          { return InstanceKind }
func (i *Instance) Name() string             { return i.name }
func (i *Instance) Parameters() []*Parameter { return i.parameters }
func (i *Instance) Ports() []*Port           { return i.ports }
func (i *Instance) Arrays() []*NodeArray     { return i.arrays }
func (i *Instance) Component() *Component    { return i.component }

// Port looks up one of the instance's ports by name.
func (i *Instance) Port(name string) (*Port, error) {
	for _, p := range i.ports {
		if p.name == name {
			return p, nil
		}
	}
	return nil, newErr(ConnectivityError, name, "Instance %s has no port named %s", i.name, name)
}

// Parameter looks up one of the instance's parameters by name.
func (i *Instance) Parameter(name string) (*Parameter, error) {
	for _, p := range i.parameters {
		if p.name == name {
			return p, nil
		}
	}
	return nil, newErr(ConnectivityError, name, "Instance %s has no parameter named %s", i.name, name)
}

// A NodeArray groups N replicated Nodes (all Ports, or all Signals) sharing
// a base type and a size Node, modeling spec.md §3's ArrayPort/ArraySignal:
// an array is a graph-layer construct around ordinary element Nodes rather
// than a distinct Node variant, since everything about its behavior --
// growth via Append, size-Node bookkeeping -- belongs to the graph layer
// (spec.md §4.3), while each element connects exactly like any other
// Port/Signal.
type NodeArray struct {
	base     Node // template: a *Port or *Signal, never itself connected
	size     Node
	elements []Node
}

// NewNodeArray constructs an empty NodeArray from a template node and an
// initial size Node (typically a Literal(0) or an unbound Parameter).
func NewNodeArray(base Node, size Node) *NodeArray {
	return &NodeArray{base: base, size: size}
}

func (a *NodeArray) Name() string    { return a.base.Name() }
func (a *NodeArray) Size() Node      { return a.size }
func (a *NodeArray) Elements() []Node { return a.elements }
func (a *NodeArray) Len() int        { return len(a.elements) }
func (a *NodeArray) BaseNode() Node  { return a.base }

// Copy copies a NodeArray: a fresh base and fresh elements, each element
// back-referencing the copy. The size Node itself is shared with a, not
// copied. A Literal or Expression size is replaced on the next Append, so
// the two arrays' sizes then grow independently; a Parameter size is
// rebound in place by Append, so growth of either array changes the size
// seen by both.
func (a *NodeArray) Copy() *NodeArray {
	cp := &NodeArray{base: a.base.Copy(), size: a.size, elements: make([]Node, len(a.elements))}
	for i, e := range a.elements {
		cp.elements[i] = e.Copy()
		cp.elements[i].setArray(cp)
	}
	return cp
}

// Get returns the i-th element. The source this is ported from used `<<`
// instead of `<` in its bounds check (spec.md §9's Open Question); this
// implementation uses ordinary less-than, the intended semantics.
func (a *NodeArray) Get(i int) (Node, error) {
	if i < 0 || i >= len(a.elements) {
		return nil, newErr(IndexError, a.Name(), "NodeArray index %d out of bounds (len %d)", i, len(a.elements))
	}
	return a.elements[i], nil
}

// Append grows the array by one element, per spec.md §4.3:
//  1. Copy the base node, name it <base>N where N is the current element count.
//  2. Add it to the array's element list.
//  3. Increment the size Node, preserving its parametric nature.
//
// Append returns the new element, usable as either endpoint of a Connect.
func (a *NodeArray) Append() (Node, error) {
	n := len(a.elements)
	elem := a.base.Copy()
	elem.Rename(elemName(a.base.Name(), n))
	elem.setArray(a)
	a.elements = append(a.elements, elem)

	newSize, err := incrementSize(a.size)
	if err != nil {
		return nil, err
	}
	a.size = newSize

	return elem, nil
}

// SetSize directly overrides the array's size Node, supplementing Append
// for callers that already know their final fan-out (grounded on
// arrays.cc's NodeArray::IncrementSize/SetSize pair; see SPEC_FULL.md §4.8).
// It does not add or remove elements.
func (a *NodeArray) SetSize(n Node) {
	a.size = n
}

func elemName(base string, n int) string {
	return base + strconv.Itoa(n)
}

// incrementSize implements the size-Node growth rule of spec.md §4.3: a
// literal or expression size is rewritten to size+1; a Parameter recurses
// into its bound value, rebinding it to bound+1 (or literal 1 if
// previously unbound), preserving the Parameter's identity so existing
// connections to it remain valid.
func incrementSize(size Node) (Node, error) {
	switch s := size.(type) {
	case *Parameter:
		if bound, ok := s.Bound(); ok {
			next, err := incrementSize(bound)
			if err != nil {
				return nil, err
			}
			if err := rebind(s, next); err != nil {
				return nil, err
			}
		} else {
			if err := rebind(s, NewLiteralInt(1)); err != nil {
				return nil, err
			}
		}
		return s, nil
	case nil:
		return nil, newErr(TypeError, "", "NodeArray size Node is nil")
	default:
		return Minimize(Add(size, NewLiteralInt(1))), nil
	}
}

// rebind clears a Parameter's existing inbound binding edge, if any, and
// connects it to n.
func rebind(p *Parameter, n Node) error {
	p.ins = nil
	_, err := Connect(p, n)
	return err
}
