package vhdl

import (
	"strings"
	"testing"

	core "cerata/cerata"
	"github.com/stretchr/testify/assert"
)

func buildSimpleInstance(t *testing.T) *core.Instance {
	t.Helper()
	width := core.NewParameter("W", core.Integer(), core.NewLiteralInt(8))
	child := core.NewComponent("Adder",
		[]*core.Parameter{width},
		[]*core.Port{core.NewPort("a", core.Vector("a", width), core.In)},
		nil)
	return core.NewInstance("add0", child)
}

func TestInstComponentNoPortsEndsWithSemicolonNoOrphanLine(t *testing.T) {
	child := core.NewComponent("Empty", nil, nil, nil)
	inst := core.NewInstance("e0", child)

	text, err := InstComponent(inst)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimRight(text, "\n"), ";"))
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.NotEqual(t, ";", strings.TrimSpace(lines[len(lines)-1]), "no dangling semicolon-only line")
}

func TestInstComponentGenericMapResolvesBoundThenDefaultThenFree(t *testing.T) {
	inst := buildSimpleInstance(t)
	p, err := inst.Parameter("W")
	assert.NoError(t, err)
	_, err = core.Connect(p, core.NewLiteralInt(16))
	assert.NoError(t, err)

	text, err := InstComponent(inst)
	assert.NoError(t, err)
	assert.Contains(t, text, "generic map (")
	assert.Contains(t, text, "W => 16")

	// Unbound: the default (8) is used.
	text, err = InstComponent(buildSimpleInstance(t))
	assert.NoError(t, err)
	assert.Contains(t, text, "W => 8")

	// Neither bound nor defaulted: the free generic name is used.
	free := core.NewParameter("N", core.Integer(), nil)
	freeInst := core.NewInstance("g0", core.NewComponent("Gen", []*core.Parameter{free}, nil, nil))
	text, err = InstComponent(freeInst)
	assert.NoError(t, err)
	assert.Contains(t, text, "N => N")
}

func TestMapPortIdentityPassThrough(t *testing.T) {
	child := core.NewComponent("Buf", nil, []*core.Port{core.NewPort("x", core.Bit("x"), core.In)}, nil)
	inst := core.NewInstance("b0", child)
	instX, err := inst.Port("x")
	assert.NoError(t, err)

	_, err = core.Connect(instX, core.NewLiteralTyped(0, instX.Type()))
	assert.NoError(t, err)

	b, err := MapPort(instX)
	assert.NoError(t, err)
	assert.Len(t, b.Lines, 1)
}
