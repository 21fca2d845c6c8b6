package vhdl

import (
	"strings"

	core "cerata/cerata"
	"cerata/utils"
)

// A Config holds the emitter-facing options enumerated in spec.md §6.
type Config struct {
	// BackupExisting reports whether the caller should preserve existing
	// files next to new ones before writing output (a file-system concern
	// left to the caller; Design itself never touches the filesystem).
	BackupExisting bool
	// EntityMode renders the top Component as `entity` when true, or
	// `component` when false.
	EntityMode bool
	// Indent is a base indentation in Block indent units. Design does not
	// read it: the architecture body is always indented by one level.
	Indent int
}

// DefaultConfig returns the emitter's default configuration.
func DefaultConfig() Config {
	return Config{BackupExisting: true, EntityMode: true, Indent: 1}
}

// Design performs, in order, the resolution sequence of spec.md §4.7.3:
//  1. port-to-port resolution over the whole hierarchy reachable from top;
//  2. stream expansion over all reachable types;
//  3. declaration text for each unique child component;
//  4. top's entity/component declaration plus architecture body.
//
// It returns one VHDL source blob per unique component name (suitable for
// writing to "<component>.gen.vhd", per spec.md §6), keyed by component
// name, including top itself.
func Design(ctx *core.Context, top *core.Component, cfg Config, reg *TypeRegistry) (map[string]string, error) {
	if err := core.ResolveAllPortToPort(top); err != nil {
		return nil, err
	}
	if err := core.ExpandStreams(top); err != nil {
		return nil, err
	}

	registerComponents(ctx, top)

	out := map[string]string{}
	for _, c := range ctx.Components.All() {
		asEntity := cfg.EntityMode && c == top
		decl, err := DeclComponent(c, asEntity, reg)
		if err != nil {
			return nil, err
		}
		if c == top {
			body, err := Architecture(c, reg)
			if err != nil {
				return nil, err
			}
			out[c.Name()] = decl + "\n" + body
		} else {
			out[c.Name()] = decl
		}
	}
	return out, nil
}

// registerComponents walks top's instance hierarchy, registering every
// distinct reachable Component (including top) in ctx.Components, so the
// emitter generates declaration text for each unique component exactly
// once even when instantiated many times (spec.md §5).
func registerComponents(ctx *core.Context, top *core.Component) {
	visited := map[*core.Component]bool{}
	var walk func(c *core.Component)
	walk = func(c *core.Component) {
		if visited[c] {
			return
		}
		visited[c] = true
		ctx.Components.GetOrRegister(c)
		for _, inst := range c.Instances() {
			walk(inst.Component())
		}
	}
	walk(top)
}

// Architecture renders c's architecture body: local signal declarations
// followed by instance statements, per spec.md §4.7.3.
func Architecture(c *core.Component, reg *TypeRegistry) (string, error) {
	var sb strings.Builder
	arch := "Implementation"
	sb.WriteString("architecture " + arch + " of " + utils.SanitizeIdentifier(c.Name()) + " is\n")

	sigBlock := NewBlock(1)
	for _, s := range c.Signals() {
		sub, err := DeclSignal(s, reg)
		if err != nil {
			return "", err
		}
		sigBlock.Lines = append(sigBlock.Lines, sub.Lines...)
	}
	if !sigBlock.Empty() {
		sb.WriteString(sigBlock.Render())
		sb.WriteString("\n")
	}

	sb.WriteString("begin\n\n")
	for i, inst := range c.Instances() {
		text, err := InstComponent(inst)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
			sb.WriteString("  " + line + "\n")
		}
		if i < len(c.Instances())-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nend architecture " + arch + ";\n")
	return sb.String(), nil
}
