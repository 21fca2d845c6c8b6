package cerata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildInstToInstDesign wires two instances' ports directly, the illegal
// shape ResolvePortToPort must rewrite with a mediating Signal.
func buildInstToInstDesign(t *testing.T) (*Component, *Instance, *Instance) {
	t.Helper()
	bit := Bit("bit")
	upstream := NewComponent("Upstream", nil, []*Port{NewPort("out", bit, Out)}, nil)
	downstream := NewComponent("Downstream", nil, []*Port{NewPort("in", bit, In)}, nil)

	top := NewComponent("Top", nil, nil, nil)
	up := NewInstance("up0", upstream)
	down := NewInstance("down0", downstream)
	assert.NoError(t, top.AddChild(up))
	assert.NoError(t, top.AddChild(down))

	upOut, err := up.Port("out")
	assert.NoError(t, err)
	downIn, err := down.Port("in")
	assert.NoError(t, err)
	_, err = Connect(downIn, upOut)
	assert.NoError(t, err)

	return top, up, down
}

func TestResolvePortToPortInsertsMediatingSignal(t *testing.T) {
	top, up, down := buildInstToInstDesign(t)
	assert.Empty(t, top.Signals())

	assert.NoError(t, ResolvePortToPort(top))
	assert.Len(t, top.Signals(), 1)

	upOut, _ := up.Port("out")
	downIn, _ := down.Port("in")
	assert.Len(t, upOut.Outs(), 1)
	assert.Len(t, downIn.Ins(), 1)

	sig := top.Signals()[0]
	assert.Same(t, Node(sig), upOut.Outs()[0].Dst)
	assert.Same(t, Node(sig), downIn.Ins()[0].Src)
}

func TestResolvePortToPortIsIdempotent(t *testing.T) {
	top, _, _ := buildInstToInstDesign(t)
	assert.NoError(t, ResolvePortToPort(top))
	firstSignalCount := len(top.Signals())

	assert.NoError(t, ResolvePortToPort(top))
	assert.Equal(t, firstSignalCount, len(top.Signals()), "second pass finds nothing left to resolve")
}

func TestExpandStreamsRewritesElementIntoRecordAndIsIdempotent(t *testing.T) {
	s := Stream("s", "data", Vector("data", NewLiteralInt(8)))
	p := NewPort("p", s, Out)
	top := NewComponent("Top", nil, []*Port{p}, nil)

	assert.False(t, s.IsExpanded())
	assert.NoError(t, ExpandStreams(top))
	assert.True(t, s.IsExpanded())
	assert.Equal(t, RecordKind, s.Element().Kind())

	fields := s.Element().Fields()
	assert.Len(t, fields, 3)
	assert.Equal(t, "valid", fields[0].Name)
	assert.Equal(t, "ready", fields[1].Name)
	assert.True(t, fields[1].Invert)
	assert.Equal(t, "data", fields[2].Name)
	assert.Equal(t, VectorKind, fields[2].Type.Kind())

	before := Flatten(s)
	assert.NoError(t, ExpandStreams(top))
	after := Flatten(s)
	assert.Equal(t, len(before), len(after), "re-expansion is a no-op")
}

func TestExpandStreamsReissuesMapperWithHandshakeOrdinals(t *testing.T) {
	elemA := Vector("data", NewLiteralInt(8))
	elemB := Vector("data", NewLiteralInt(8))
	streamA := Stream("sa", "data", elemA)
	streamB := Stream("sb", "data", elemB)

	m := NewTypeMapper(streamA, streamB)
	assert.NoError(t, m.Add(0, 0)) // stream head <-> stream head

	streamA.AddMapper(m)

	portA := NewPort("a", streamA, Out)
	portB := NewPort("b", streamB, In)
	top := NewComponent("Top", nil, []*Port{portA, portB}, nil)

	assert.NoError(t, ExpandStreams(top))

	assert.True(t, streamA.IsExpanded())
	assert.True(t, streamB.IsExpanded())

	newA := Flatten(streamA)
	newB := Flatten(streamB)
	assert.Equal(t, len(newA), m.Height())
	assert.Equal(t, len(newB), m.Width())

	// The stream-head ordinal must still connect the two record heads.
	assert.Equal(t, 1, m.M[0][0])
	// Fresh handshake ordinals for valid/ready must have been added, at the
	// indices shifted past the newly-inserted record head.
	assert.NotZero(t, m.M[2][2], "valid mapped")
	assert.NotZero(t, m.M[3][3], "ready mapped")

	// The reissued head/valid/ready ordinals sit on disjoint rows and
	// columns, so they must enumerate as three separate groups, not one --
	// the bug this reproduces would merge them whenever ordinal reuse across
	// unrelated cells collides (here head and valid/ready all reissue
	// ordinal 1).
	pairs := m.UniqueMappingPairs()
	assert.Len(t, pairs, 3, "head, valid, and ready must stay disjoint groups")
	for _, p := range pairs {
		assert.Len(t, p.AIdx, 1)
		assert.Len(t, p.BIdx, 1)
	}
}
