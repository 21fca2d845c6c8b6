package dot

import (
	"strings"
	"testing"

	core "cerata/cerata"
	"github.com/stretchr/testify/assert"
)

func TestDumpRendersOneNodePerInstanceAndOneEdgePerConnection(t *testing.T) {
	xType := core.Bit("x")
	upstream := core.NewComponent("Upstream", nil, []*core.Port{core.NewPort("out", xType, core.Out)}, nil)
	downstream := core.NewComponent("Downstream", nil, []*core.Port{core.NewPort("in", xType, core.In)}, nil)

	top := core.NewComponent("Top", nil, nil, nil)
	up := core.NewInstance("up0", upstream)
	down := core.NewInstance("down0", downstream)
	assert.NoError(t, top.AddChild(up))
	assert.NoError(t, top.AddChild(down))

	upOut, _ := up.Port("out")
	downIn, _ := down.Port("in")
	_, err := core.Connect(downIn, upOut)
	assert.NoError(t, err)

	out := Dump(top)
	assert.True(t, strings.HasPrefix(out, "digraph Top {"))
	assert.Contains(t, out, "up0")
	assert.Contains(t, out, "down0")
	assert.Contains(t, out, "up0 -> down0")
}

func TestSanitizeReplacesIllegalCharacters(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitize("a.b-c"))
}
