package cerata

import "sort"

// A TypeMapper is a sparse bit-mapping matrix between the flattened views of
// two Types, per spec.md §3 and §4.5. M[i][j] = k (k > 0) means flat field
// A[i] maps to flat field B[j] with ordinal k -- the k-th concatenation slot
// when multiple A-fields map onto the same B-field or vice versa.
type TypeMapper struct {
	A, B *Type
	M    [][]int // len(M) == len(Flatten(A)), len(M[i]) == len(Flatten(B))
}

// NewTypeMapper constructs a TypeMapper between A and B. If A and B are
// identical by identity, the mapper is seeded with the identity mapping on
// the diagonal (ordinal 1 throughout), per spec.md §4.5; otherwise it starts
// as an all-zero matrix shaped by the two types' flattened lengths.
func NewTypeMapper(A, B *Type) *TypeMapper {
	h := len(Flatten(A))
	w := len(Flatten(B))
	m := make([][]int, h)
	for i := range m {
		m[i] = make([]int, w)
	}
	tm := &TypeMapper{A: A, B: B, M: m}
	if A == B {
		for i := 0; i < h && i < w; i++ {
			tm.M[i][i] = 1
		}
	}
	return tm
}

// Height returns |Flatten(A)|.
func (m *TypeMapper) Height() int { return len(m.M) }

// Width returns |Flatten(B)|.
func (m *TypeMapper) Width() int {
	if len(m.M) == 0 {
		return 0
	}
	return len(m.M[0])
}

func (m *TypeMapper) rowMax(i int) int {
	max := 0
	for _, v := range m.M[i] {
		if v > max {
			max = v
		}
	}
	return max
}

func (m *TypeMapper) colMax(j int) int {
	max := 0
	for i := range m.M {
		if m.M[i][j] > max {
			max = m.M[i][j]
		}
	}
	return max
}

// Add sets M[i][j] to the next free ordinal in the group: 1 plus the larger
// of row i's current max and column j's current max, per spec.md §4.5.
func (m *TypeMapper) Add(i, j int) error {
	if i < 0 || i >= m.Height() || j < 0 || j >= m.Width() {
		return newErr(IndexError, m.A.Name(), "TypeMapper.Add(%d,%d) out of bounds (%dx%d)", i, j, m.Height(), m.Width())
	}
	rm, cm := m.rowMax(i), m.colMax(j)
	next := rm
	if cm > next {
		next = cm
	}
	m.M[i][j] = next + 1
	return nil
}

// Transpose returns a new TypeMapper with A and B swapped and M transposed,
// i.e. Transpose is an involution: m.Transpose().Transpose() equals m as
// matrices (spec.md §8).
func (m *TypeMapper) Transpose() *TypeMapper {
	h, w := m.Height(), m.Width()
	t := make([][]int, w)
	for j := 0; j < w; j++ {
		t[j] = make([]int, h)
		for i := 0; i < h; i++ {
			t[j][i] = m.M[i][j]
		}
	}
	return &TypeMapper{A: m.B, B: m.A, M: t}
}

// A MappingPair groups the A-side and B-side flat indices connected through
// the matrix's nonzero cells, for emission (spec.md §4.5). NumA/NumB are how
// many A-entries concatenate onto a single B-entry and vice versa -- the
// values the emitter needs for slice arithmetic. Ordinal is the smallest
// cell value within the group, kept for diagnostics only; grouping itself
// does not depend on it (see UniqueMappingPairs).
type MappingPair struct {
	Ordinal int
	AIdx    []int
	BIdx    []int
}

func (p MappingPair) NumA() int { return len(p.AIdx) }
func (p MappingPair) NumB() int { return len(p.BIdx) }

// UniqueMappingPairs enumerates the mapper's groups, sorted by the smallest
// A-side flat index (the emission order mandated by spec.md §5).
//
// A group is a connected component of the matrix's nonzero-cell bipartite
// graph (A-row i and B-col j are joined whenever M[i][j] != 0), not a set of
// cells sharing one ordinal value: Add's "next free ordinal = 1 +
// max(rowMax, colMax)" rule reissues the same small ordinal for any number
// of structurally unrelated 1:1 mappings elsewhere in the matrix, so
// grouping by raw value wrongly merges them. Grouping by row/column
// reachability instead matches how the mapper is actually consumed
// downstream (every nonzero cell in a row or column belongs to the same
// concatenation), mirroring the row/column nonzero scan that the matrix's
// origin performs.
func (m *TypeMapper) UniqueMappingPairs() []MappingPair {
	h, w := m.Height(), m.Width()
	uf := newUnionFind(h + w)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if m.M[i][j] != 0 {
				uf.union(i, h+j)
			}
		}
	}

	groups := map[int]*MappingPair{}
	order := []int{}
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			k := m.M[i][j]
			if k == 0 {
				continue
			}
			root := uf.find(i)
			g, ok := groups[root]
			if !ok {
				g = &MappingPair{Ordinal: k}
				groups[root] = g
				order = append(order, root)
			} else if k < g.Ordinal {
				g.Ordinal = k
			}
			g.AIdx = appendUnique(g.AIdx, i)
			g.BIdx = appendUnique(g.BIdx, j)
		}
	}
	pairs := make([]MappingPair, 0, len(groups))
	for _, root := range order {
		pairs = append(pairs, *groups[root])
	}
	sort.Slice(pairs, func(i, j int) bool {
		return minInt(pairs[i].AIdx) < minInt(pairs[j].AIdx)
	})
	return pairs
}

// unionFind is a standard disjoint-set structure over 0..n-1, used by
// UniqueMappingPairs to compute connected components of the mapper's
// nonzero-cell bipartite graph (A-rows 0..h-1, B-cols h..h+w-1).
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func minInt(s []int) int {
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
