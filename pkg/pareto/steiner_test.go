package pareto

import (
	"math"
	"container/heap"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rootfront/pkg/tree"
)

func TestSatellite(t *testing.T) {
	g := yGraph(t)
	s := Satellite(g)

	assert.Equal(t, []int{0, 2, 3}, s.NodeIDs())
	assert.Equal(t, 2, s.EdgeCount())
	assert.Equal(t, 2, s.Degree(tree.BaseID))

	c := Costs(s, CriticalNodes(g))
	want := 20 + math.Sqrt(200)
	assert.InDelta(t, want, c.Length, tol)
	assert.InDelta(t, want, c.Distance, tol)
}

func TestSteinerSpansCriticalNodes(t *testing.T) {
	g := yGraph(t)
	for _, alpha := range []float64{0, 0.3, 0.7, 1} {
		h := Steiner(g, alpha)
		require.NoError(t, tree.Validate(h), "alpha=%v", alpha)
		for _, id := range CriticalNodes(g) {
			assert.True(t, h.HasNode(id), "alpha=%v missing %d", alpha, id)
		}
		// Two new edges, each split by the default number of midpoints.
		assert.Equal(t, 3+2*DefaultMidpoints, h.NodeCount())
	}
}

func TestSteinerMidpoints(t *testing.T) {
	g := yGraph(t)
	h := Steiner(g, 0.5, WithMidpoints(3))
	assert.Equal(t, 3+2*3, h.NodeCount())

	var steiner int
	for _, n := range h.Nodes() {
		if n.IsSteiner() {
			steiner++
			assert.Greater(t, n.ID, 3)
		}
	}
	assert.Equal(t, 6, steiner)

	bare := Steiner(g, 0.5, WithMidpoints(0))
	assert.Equal(t, []int{0, 2, 3}, bare.NodeIDs())
}

func TestSteinerMinimizesLength(t *testing.T) {
	g := yGraph(t)
	crit := CriticalNodes(g)

	h := Steiner(g, 1)
	got := Costs(h, crit)
	sat := Costs(Satellite(g), crit)

	// Base to (10,10), then (10,10) to (20,0).
	assert.InDelta(t, 2*math.Sqrt(200), got.Length, 1e-6)
	assert.Less(t, got.Length, sat.Length)
}

func TestSteinerLine(t *testing.T) {
	g := lineGraph(t)
	h := Steiner(g, 0.5)
	c := Costs(h, CriticalNodes(g))
	assert.InDelta(t, 20.0, c.Length, 1e-9)
	assert.InDelta(t, 20.0, c.Distance, 1e-9)
}

func TestSteinerBaseOnly(t *testing.T) {
	g := build(t, []pos{{0, 3, 4}}, nil)
	h := Steiner(g, 0.5)
	assert.Equal(t, 1, h.NodeCount())
	assert.Equal(t, 0, h.EdgeCount())
}

func TestSteinerDeterministic(t *testing.T) {
	g := yGraph(t)
	a := Steiner(g, 0.42)
	b := Steiner(g, 0.42)
	assert.Equal(t, a.Nodes(), b.Nodes())
	assert.Equal(t, a.Edges(), b.Edges())
}

func TestSteinerInvalidWeights(t *testing.T) {
	g := yGraph(t)
	assert.Panics(t, func() { Steiner(g, 1.01) })
	assert.Panics(t, func() { Steiner(g, -0.5) })
	assert.Panics(t, func() { Steiner3D(g, Weights{Alpha: 0.7, Beta: 0.7}) })
}

func TestSteiner3D(t *testing.T) {
	g := yGraph(t)
	for _, w := range []Weights{{1, 0}, {0, 1}, {0, 0}, {0.3, 0.3}} {
		h := Steiner3D(g, w)
		require.NoError(t, tree.Validate(h), "weights=%+v", w)
		c := Costs3D(h, CriticalNodes(g))
		assert.False(t, c.IsInf())
		assert.GreaterOrEqual(t, c.Tortuosity, 2.0-1e-9)
	}
}

// randomTestTree scatters n nodes over a 100x100 square and links each node to a
// random earlier one.
func randomTestTree(t *testing.T, rng *rand.Rand, n int) *tree.Graph {
	t.Helper()
	g := tree.New()
	for id := range n {
		require.NoError(t, g.AddNode(tree.Node{ID: id, Pos: tree.Pt2(rng.Float64()*100, rng.Float64()*100)}))
		if id > 0 {
			require.NoError(t, g.AddEuclideanEdge(rng.IntN(id), id))
		}
	}
	return g
}

// exhaustiveSteiner grows the same greedy tree as Steiner by scanning every
// (in-tree, outside) pair on each step.
func exhaustiveSteiner(g *tree.Graph, alpha float64, midpoints int) *tree.Graph {
	type placed struct {
		id   int
		pos  tree.Point
		dist float64
	}
	crit := CriticalNodes(g)
	in := []placed{{id: crit[0], pos: g.Pos(crit[0])}}
	rest := crit[1:]
	nextID := crit[len(crit)-1] + 1

	h := tree.New()
	_ = h.AddNode(tree.Node{ID: crit[0], Pos: g.Pos(crit[0])})
	for len(rest) > 0 {
		best, bu, bv := math.Inf(1), -1, -1
		for i, u := range in {
			for j, v := range rest {
				l := tree.Dist(u.pos, g.Pos(v))
				c := WeightedCost(l, l+u.dist, alpha)
				if bu < 0 || c < best || (c == best && (u.id < in[bu].id || (u.id == in[bu].id && v < rest[bv]))) {
					best, bu, bv = c, i, j
				}
			}
		}
		u, v := in[bu], rest[bv]
		rest = append(rest[:bv:bv], rest[bv+1:]...)

		vp := g.Pos(v)
		_ = h.AddNode(tree.Node{ID: v, Pos: vp})
		prev := u
		var mids []placed
		for _, p := range tree.SteinerPoints(u.pos, vp, midpoints) {
			m := placed{id: nextID, pos: p, dist: u.dist + tree.Dist(u.pos, p)}
			nextID++
			_ = h.AddNode(tree.Node{ID: m.id, Pos: p, Kind: tree.NodeKindSteiner})
			_ = h.AddEdge(prev.id, m.id, tree.Dist(prev.pos, p))
			mids = append(mids, m)
			prev = m
		}
		_ = h.AddEdge(prev.id, v, tree.Dist(prev.pos, vp))
		in = append(in, placed{id: v, pos: vp, dist: u.dist + tree.Dist(u.pos, vp)})
		in = append(in, mids...)
	}
	return h
}

func TestSteinerMatchesExhaustiveGreedy(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 200 {
		g := randomTestTree(t, rng, 3+rng.IntN(25))
		crit := CriticalNodes(g)
		for _, alpha := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
			for _, mids := range []int{0, 1} {
				got := Steiner(g, alpha, WithMidpoints(mids))
				want := exhaustiveSteiner(g, alpha, mids)
				require.Equal(t, want.NodeIDs(), got.NodeIDs(), "graph %d alpha=%v midpoints=%d", i, alpha, mids)
				require.Equal(t, want.Edges(), got.Edges(), "graph %d alpha=%v midpoints=%d", i, alpha, mids)

				wc, gc := Costs(want, crit), Costs(got, crit)
				assert.InDelta(t, wc.Length, gc.Length, tol)
				assert.InDelta(t, wc.Distance, gc.Distance, tol)
			}
		}
	}
}

func TestBuilderPopReprices(t *testing.T) {
	g := build(t, []pos{{0, 0, 0}, {1, 1, 0}, {2, 2, 0}}, [][2]int{{0, 1}, {0, 2}})
	now := map[int]float64{1: 1, 2: 2}
	b := newBuilder(g, CriticalNodes(g), func(_ *builder, _, v int, _ float64) float64 { return now[v] })

	near := &candidate{cost: 1, u: 0, v: 1, uid: 0, vid: 1}
	far := &candidate{cost: 2, u: 0, v: 2, uid: 0, vid: 2}
	heap.Push(&b.queue, near)
	heap.Push(&b.queue, far)

	// The node queued cheapest has become the dearer one since.
	now[1] = 5
	assert.Same(t, far, b.pop())
	assert.Equal(t, 5.0, near.cost)
	assert.Same(t, near, b.pop())
}

func TestSteiner3DRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 50 {
		g := randomTestTree(t, rng, 4+rng.IntN(12))
		h := Steiner3D(g, Weights{Alpha: 0.2, Beta: 0.2}, WithMidpoints(1))
		require.NoError(t, tree.Validate(h))
		for _, id := range CriticalNodes(g) {
			assert.True(t, h.HasNode(id))
		}
	}
}
