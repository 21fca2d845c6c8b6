package cerata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTypeMapperIdentityDiagonal(t *testing.T) {
	r := Record("r", Field{Name: "a", Type: Bit("a")}, Field{Name: "b", Type: Bit("b")})
	m := NewTypeMapper(r, r)
	assert.Equal(t, len(Flatten(r)), m.Height())
	assert.Equal(t, len(Flatten(r)), m.Width())
	for i := 0; i < m.Height(); i++ {
		assert.Equal(t, 1, m.M[i][i])
	}
}

func TestAddOrdinalAssignment(t *testing.T) {
	a := Record("a", Field{Name: "x", Type: Bit("x")}, Field{Name: "y", Type: Bit("y")})
	b := Record("b", Field{Name: "z", Type: Bit("z")})
	m := NewTypeMapper(a, b)

	assert.NoError(t, m.Add(1, 1))
	assert.Equal(t, 1, m.M[1][1])

	assert.NoError(t, m.Add(2, 1))
	assert.Equal(t, 2, m.M[2][1], "second A-entry onto the same B-entry gets the next free ordinal")
}

func TestAddOutOfBounds(t *testing.T) {
	a := Bit("a")
	b := Bit("b")
	m := NewTypeMapper(a, b)
	assert.Error(t, m.Add(5, 0))
}

func TestTransposeIsInvolution(t *testing.T) {
	a := Record("a", Field{Name: "x", Type: Bit("x")})
	b := Record("b", Field{Name: "y", Type: Vector("y", NewLiteralInt(4))})
	m := NewTypeMapper(a, b)
	assert.NoError(t, m.Add(1, 1))

	t1 := m.Transpose()
	assert.Same(t, b, t1.A)
	assert.Same(t, a, t1.B)

	t2 := t1.Transpose()
	assert.Same(t, m.A, t2.A)
	assert.Same(t, m.B, t2.B)
	assert.Equal(t, m.M, t2.M)
}

func TestUniqueMappingPairsGroupsByConnectedComponent(t *testing.T) {
	a := Record("a", Field{Name: "lo", Type: Bit("lo")}, Field{Name: "hi", Type: Bit("hi")})
	b := Record("b", Field{Name: "w", Type: Vector("w", NewLiteralInt(2))})
	m := NewTypeMapper(a, b)
	assert.NoError(t, m.Add(1, 1))
	assert.NoError(t, m.Add(2, 1))

	pairs := m.UniqueMappingPairs()
	assert.Len(t, pairs, 1)
	assert.ElementsMatch(t, []int{1, 2}, pairs[0].AIdx)
	assert.Equal(t, []int{1}, pairs[0].BIdx)
	assert.Equal(t, 2, pairs[0].NumA())
	assert.Equal(t, 1, pairs[0].NumB())
}

// TestUniqueMappingPairsDoesNotMergeUnrelatedOrdinalCollisions reproduces
// spec.md §8 scenario 3: A = {q,r,s,t}, B = {u,v,w,x}, mapped q->u, r->v,
// r->w, s->v, t->x (in that call order). Add's ordinal-assignment rule
// reissues ordinal 1 for every "fresh row, fresh column" cell, so q->u,
// r->v, and t->x all land on M[.][.]=1 -- grouping by raw ordinal value
// would wrongly merge all three into one pair. The correct groups are the
// three connected components the scenario narrates.
func TestUniqueMappingPairsDoesNotMergeUnrelatedOrdinalCollisions(t *testing.T) {
	a := Record("a",
		Field{Name: "q", Type: Vector("q", NewLiteralInt(4))},
		Field{Name: "r", Type: Vector("r", NewLiteralInt(2))},
		Field{Name: "s", Type: Vector("s", NewLiteralInt(2))},
		Field{Name: "t", Type: Vector("t", NewLiteralInt(4))},
	)
	b := Record("b",
		Field{Name: "u", Type: Vector("u", NewLiteralInt(4))},
		Field{Name: "v", Type: Vector("v", NewLiteralInt(2))},
		Field{Name: "w", Type: Vector("w", NewLiteralInt(2))},
		Field{Name: "x", Type: Vector("x", NewLiteralInt(4))},
	)
	m := NewTypeMapper(a, b)
	// Record flat indices: 0 is the head, fields start at 1.
	const q, r, s, t = 1, 2, 3, 4
	const u, v, w, x = 1, 2, 3, 4
	assert.NoError(t, m.Add(q, u))
	assert.NoError(t, m.Add(r, v))
	assert.NoError(t, m.Add(r, w))
	assert.NoError(t, m.Add(s, v))
	assert.NoError(t, m.Add(t, x))
	assert.Equal(t, 1, m.M[q][u])
	assert.Equal(t, 1, m.M[r][v])
	assert.Equal(t, 2, m.M[r][w])
	assert.Equal(t, 2, m.M[s][v])
	assert.Equal(t, 1, m.M[t][x])

	pairs := m.UniqueMappingPairs()
	assert.Len(t, pairs, 3, "q->u, {r,s}->{v,w}, and t->x must stay three disjoint groups")

	seen := map[int][]int{}
	for _, p := range pairs {
		seen[minInt(p.AIdx)] = p.BIdx
	}
	assert.ElementsMatch(t, []int{u}, seen[q])
	assert.ElementsMatch(t, []int{v, w}, seen[r])
	assert.ElementsMatch(t, []int{x}, seen[t])
}
