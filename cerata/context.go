package cerata

// A TypePool is the process-wide (but here, explicitly passed-around, per
// spec.md §9's redesign note) map from canonical type name to Type
// instance. Insertion is idempotent: requesting a type whose name is
// already present returns the cached instance when the two are weakly
// equal; registering a same-named, structurally different Type is a fatal
// PoolError.
type TypePool struct {
	byName   map[string]*Type
	refcount map[string]int
}

// NewTypePool constructs an empty TypePool.
func NewTypePool() *TypePool {
	return &TypePool{byName: map[string]*Type{}, refcount: map[string]int{}}
}

// GetOrRegister returns the pool's cached Type for t.Name(), registering t
// if no such name exists yet. A repeat registration of a weakly-equal type
// bumps a reference count and is not an error (spec.md §7: "duplicate
// queueing of an already-cached type (treated as a reference-count
// bump)"); a repeat registration of a structurally different type under
// the same name is a PoolError.
func (p *TypePool) GetOrRegister(t *Type) (*Type, error) {
	existing, ok := p.byName[t.name]
	if !ok {
		p.byName[t.name] = t
		p.refcount[t.name] = 1
		return t, nil
	}
	if existing == t || WeaklyEqual(existing, t) {
		p.refcount[t.name]++
		return existing, nil
	}
	return nil, newErr(PoolError, t.name, "type %q already registered with a different structure", t.name)
}

// Get looks up a previously registered Type by name.
func (p *TypePool) Get(name string) (*Type, bool) {
	t, ok := p.byName[name]
	return t, ok
}

// RefCount reports how many times name has been (re-)registered.
func (p *TypePool) RefCount(name string) int {
	return p.refcount[name]
}

// A ComponentPool is the same idea as TypePool but for Components: it
// avoids double-generation of shared primitive library components such as
// bus arbiters and stream profilers (spec.md §5), keyed by component name.
type ComponentPool struct {
	byName map[string]*Component
}

// NewComponentPool constructs an empty ComponentPool.
func NewComponentPool() *ComponentPool {
	return &ComponentPool{byName: map[string]*Component{}}
}

// GetOrRegister returns the pool's cached Component for c.Name(), or
// registers c if no such name is present yet. The bool result reports
// whether an existing (cached) component was returned instead of c.
func (p *ComponentPool) GetOrRegister(c *Component) (*Component, bool) {
	existing, ok := p.byName[c.name]
	if ok {
		return existing, true
	}
	p.byName[c.name] = c
	return c, false
}

// Get looks up a previously registered Component by name.
func (p *ComponentPool) Get(name string) (*Component, bool) {
	c, ok := p.byName[name]
	return c, ok
}

// All returns every registered component, for an emitter pass that must
// visit each unique child component once.
func (p *ComponentPool) All() []*Component {
	out := make([]*Component, 0, len(p.byName))
	for _, c := range p.byName {
		out = append(out, c)
	}
	return out
}

// A Context bundles the TypePool and ComponentPool for one generation run,
// replacing the hidden module-scope singletons of the source (spec.md §9).
// A Context has no lifecycle beyond the run it was created for and is not
// safe to share across concurrent generations (spec.md §5).
type Context struct {
	Types      *TypePool
	Components *ComponentPool
}

// NewContext constructs a fresh Context with empty pools.
func NewContext() *Context {
	return &Context{Types: NewTypePool(), Components: NewComponentPool()}
}
