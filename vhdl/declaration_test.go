package vhdl

import (
	"strings"
	"testing"

	core "cerata/cerata"
	"github.com/stretchr/testify/assert"
)

func TestDeclPortRendersOneLinePerFlatLeaf(t *testing.T) {
	p := core.NewPort("clk", core.Clock("clk", "kcd"), core.In)
	b, err := DeclPort(p, NewTypeRegistry())
	assert.NoError(t, err)
	assert.Len(t, b.Lines, 1)
	assert.Equal(t, "clk", b.Lines[0][0])
	assert.Equal(t, "in", b.Lines[0][2])
}

func TestDeclPortRecordExpandsToMultipleLinesWithInvertedDirection(t *testing.T) {
	rec := core.Record("handshake",
		core.Field{Name: "valid", Type: core.Bit("valid")},
		core.Field{Name: "ready", Type: core.Bit("ready"), Invert: true},
	)
	p := core.NewPort("hs", rec, core.Out)
	b, err := DeclPort(p, NewTypeRegistry())
	assert.NoError(t, err)
	assert.Len(t, b.Lines, 2)
	assert.Equal(t, "hs_valid", b.Lines[0][0])
	assert.Equal(t, "out", b.Lines[0][2])
	assert.Equal(t, "hs_ready", b.Lines[1][0])
	assert.Equal(t, "in", b.Lines[1][2], "inverted field flips direction")
}

func TestDeclArrayPortVectorizesByElementKind(t *testing.T) {
	base := core.NewPort("lane", core.Vector("lane", core.NewLiteralInt(4)), core.Out)
	arr := core.NewNodeArray(base, core.NewLiteralInt(0))
	arr.SetSize(core.NewLiteralInt(3))

	b, err := DeclArrayPort(arr, NewTypeRegistry())
	assert.NoError(t, err)
	assert.Len(t, b.Lines, 1)
	assert.Equal(t, "std_logic_vector(11 downto 0)", b.Lines[0][3], "4 bits * 3 lanes")
}

func TestDeclComponentEntityAndComponentKeywords(t *testing.T) {
	width := core.NewParameter("W", core.Integer(), core.NewLiteralInt(8))
	c := core.NewComponent("Adder",
		[]*core.Parameter{width},
		[]*core.Port{core.NewPort("a", core.Vector("a", width), core.In)},
		nil)

	asEntity, err := DeclComponent(c, true, NewTypeRegistry())
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(asEntity, "entity Adder is"))
	assert.Contains(t, asEntity, "end entity;")

	asComponent, err := DeclComponent(c, false, NewTypeRegistry())
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(asComponent, "component Adder is"))
	assert.Contains(t, asComponent, "end component;")
	assert.Contains(t, asComponent, "generic (")
	assert.Contains(t, asComponent, "port (")
}

func TestDeclSignal(t *testing.T) {
	s := core.NewSignal("tmp", core.Bit("tmp"))
	b, err := DeclSignal(s, NewTypeRegistry())
	assert.NoError(t, err)
	assert.Equal(t, Line{"signal", "tmp", ":", "std_logic;"}, b.Lines[0])
}
