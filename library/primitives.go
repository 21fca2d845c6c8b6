// Package library provides a small set of hand-built primitive Components
// -- stream-handshake plumbing that a generator instantiates repeatedly
// across a design -- registered by name through a cerata.ComponentPool so
// that each is only built once per run, mirroring how Fletchgen's
// profiler.cc/bus.cc keep a handful of such primitives out of the
// per-design code generation path (SPEC_FULL.md §4.8).
package library

import (
	core "cerata/cerata"
)

// A Builder constructs a fresh instance of a named primitive Component.
type Builder func() *core.Component

// Primitives is the package-level lookup table of builders, keyed by
// component name -- the same "name -> constructor" table shape as the
// teacher's cpu.Opcodes map[byte]Opcode.
var Primitives = map[string]Builder{
	"StreamSlice":  buildStreamSlice,
	"StreamBuffer": buildStreamBuffer,
}

// Get returns the named primitive Component, building and registering it
// in ctx.Components on first request and returning the cached instance on
// every subsequent request (spec.md §5).
func Get(ctx *core.Context, name string) (*core.Component, error) {
	if c, ok := ctx.Components.Get(name); ok {
		return c, nil
	}
	build, ok := Primitives[name]
	if !ok {
		return nil, &core.CerataError{Kind: core.PoolError, Entity: name, Msg: "no such library primitive"}
	}
	c := build()
	registered, _ := ctx.Components.GetOrRegister(c)
	return registered, nil
}

func streamHandshake(name, elementName string, element *core.Type) *core.Type {
	return core.Stream(name, elementName, element)
}

// buildStreamSlice builds a one-stage pipeline register on a single data
// stream: registers valid/data when downstream is ready, clearing valid
// when the consumer accepts. This is the structural shape profiler.cc's
// "Stream slice" primitive has: a clock, a reset, one input stream port,
// one output stream port, a DataWidth generic.
func buildStreamSlice() *core.Component {
	width := core.NewParameter("DataWidth", core.Integer(), core.NewLiteralInt(8))

	elem := core.Vector("data", width)
	inStream := streamHandshake("in_stream", "data", elem)
	outStream := streamHandshake("out_stream", "data", elem)

	clk := core.NewPort("clk", core.Clock("clk", "kcd"), core.In)
	reset := core.NewPort("reset", core.Reset("reset", "kcd"), core.In)
	in := core.NewPort("in", inStream, core.In)
	out := core.NewPort("out", outStream, core.Out)

	return core.NewComponent("StreamSlice", []*core.Parameter{width}, []*core.Port{clk, reset, in, out}, nil)
}

// buildStreamBuffer builds a small FIFO buffer between two streams, with an
// additional Depth generic controlling the number of buffered elements.
func buildStreamBuffer() *core.Component {
	width := core.NewParameter("DataWidth", core.Integer(), core.NewLiteralInt(8))
	depth := core.NewParameter("Depth", core.Natural(), core.NewLiteralInt(16))

	elem := core.Vector("data", width)
	inStream := streamHandshake("in_stream", "data", elem)
	outStream := streamHandshake("out_stream", "data", elem)

	clk := core.NewPort("clk", core.Clock("clk", "kcd"), core.In)
	reset := core.NewPort("reset", core.Reset("reset", "kcd"), core.In)
	in := core.NewPort("in", inStream, core.In)
	out := core.NewPort("out", outStream, core.Out)

	return core.NewComponent("StreamBuffer", []*core.Parameter{width, depth}, []*core.Port{clk, reset, in, out}, nil)
}
