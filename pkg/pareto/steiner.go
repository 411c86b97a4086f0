package pareto

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"

	"github.com/matzehuels/rootfront/pkg/tree"
)

// Steiner greedily grows a tree over the critical nodes of g that
// approximately minimizes alpha*length + (1-alpha)*distance. Each new edge is
// subdivided into Steiner points (see [WithMidpoints]) that later edges may
// branch from. It panics unless 0 <= alpha <= 1.
func Steiner(g *tree.Graph, alpha float64, opts ...Option) *tree.Graph {
	checkAlpha(alpha)
	return steiner(g, CriticalNodes(g), newSettings(opts), func(b *builder, u, v int, length float64) float64 {
		return WeightedCost(length, length+b.dist[u], alpha)
	})
}

// Steiner3D is the three-objective variant of [Steiner]. The coverage term
// of a candidate edge is the tortuosity sum of the nodes placed so far plus
// the tortuosity the candidate would have, evaluated when the candidate is
// taken from the queue. It panics when w is off the
// weight simplex.
func Steiner3D(g *tree.Graph, w Weights, opts ...Option) *tree.Graph {
	if !w.Valid() {
		panic(fmt.Sprintf("pareto: invalid weights alpha=%v beta=%v", w.Alpha, w.Beta))
	}
	return steiner(g, CriticalNodes(g), newSettings(opts), func(b *builder, u, v int, length float64) float64 {
		path := length + b.dist[u]
		return WeightedCost3D(length, path, b.coverage+tortuosity(path, b.straight[v]), w)
	})
}

// edgeCost prices the hypothetical edge u-v, where u is in the tree and v is not.
type edgeCost func(b *builder, u, v int, length float64) float64

// builder holds the working tree as an arena. Indexes below ncrit are the
// critical nodes in ascending ID order, so index 0 is the base; Steiner
// points are appended after them.
type builder struct {
	ncrit    int
	ids      []int
	pos      []tree.Point
	dist     []float64 // path length to the base along the tree
	straight []float64 // straight-line distance to the base
	inTree   []bool
	coverage float64

	// cands[i] lists critical nodes by distance from i; cursor[i] skips the
	// prefix already known to be in the tree.
	cands  [][]int
	cursor []int

	queue   candidateQueue
	pending map[int][]*candidate // target -> live candidates

	out   *tree.Graph
	price edgeCost
}

func steiner(g *tree.Graph, critical []int, s settings, price edgeCost) *tree.Graph {
	if len(critical) == 0 || critical[0] != tree.BaseID {
		panic(fmt.Errorf("pareto: %w", tree.ErrMissingBase))
	}
	b := newBuilder(g, critical, price)

	placed := 1
	unpaired := []int{0}
	for placed < b.ncrit {
		for _, u := range unpaired {
			b.pair(u)
		}
		unpaired = unpaired[:0]

		c := b.pop()
		for _, other := range b.pending[c.v] {
			if other != c && !other.removed {
				other.removed = true
				unpaired = append(unpaired, other.u)
			}
		}
		delete(b.pending, c.v)

		mids := b.attach(c.u, c.v, s.midpoints)
		placed++
		unpaired = append(unpaired, c.u, c.v)
		unpaired = append(unpaired, mids...)
	}
	return b.out
}

func newBuilder(g *tree.Graph, critical []int, price edgeCost) *builder {
	n := len(critical)
	b := &builder{
		ncrit:    n,
		ids:      slices.Clone(critical),
		pos:      make([]tree.Point, n),
		dist:     make([]float64, n),
		straight: make([]float64, n),
		inTree:   make([]bool, n),
		cands:    make([][]int, n),
		cursor:   make([]int, n),
		pending:  make(map[int][]*candidate),
		out:      tree.New(),
		price:    price,
	}
	for i, id := range critical {
		b.pos[i] = g.Pos(id)
	}
	for i := range critical {
		b.straight[i] = tree.Dist(b.pos[i], b.pos[0])
		others := make([]int, 0, n-1)
		for j := range n {
			if j != i {
				others = append(others, j)
			}
		}
		b.cands[i] = b.byDistance(i, others)
	}

	b.inTree[0] = true
	_ = b.out.AddNode(tree.Node{ID: tree.BaseID, Pos: b.pos[0]})
	return b
}

// byDistance sorts targets by distance from i, breaking ties by index.
func (b *builder) byDistance(i int, targets []int) []int {
	d := make(map[int]float64, len(targets))
	for _, j := range targets {
		d[j] = tree.Dist(b.pos[i], b.pos[j])
	}
	slices.SortFunc(targets, func(x, y int) int {
		if c := cmp.Compare(d[x], d[y]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	return targets
}

// pair queues u's cheapest edge to its nearest critical node outside the tree.
func (b *builder) pair(u int) {
	list := b.cands[u]
	for b.cursor[u] < len(list) && b.inTree[list[b.cursor[u]]] {
		b.cursor[u]++
	}
	if b.cursor[u] == len(list) {
		return
	}
	v := list[b.cursor[u]]
	length := tree.Dist(b.pos[u], b.pos[v])
	c := &candidate{cost: b.price(b, u, v, length), u: u, v: v, uid: b.ids[u], vid: b.ids[v]}
	heap.Push(&b.queue, c)
	b.pending[v] = append(b.pending[v], c)
}

// pop returns the cheapest live candidate at current prices. A candidate is
// priced when queued; prices never fall as the tree grows, so one that costs
// more now is requeued at its new price and the head is tried again.
func (b *builder) pop() *candidate {
	for {
		c := heap.Pop(&b.queue).(*candidate)
		if c.removed {
			continue
		}
		if cost := b.price(b, c.u, c.v, tree.Dist(b.pos[c.u], b.pos[c.v])); cost > c.cost {
			c.cost = cost
			heap.Push(&b.queue, c)
			continue
		}
		return c
	}
}

// attach adds critical node v to the tree through u, subdividing the new
// segment into n Steiner points. It returns the arena indexes of the points.
func (b *builder) attach(u, v, n int) []int {
	b.inTree[v] = true
	b.dist[v] = b.dist[u] + tree.Dist(b.pos[u], b.pos[v])
	b.coverage += tortuosity(b.dist[v], b.straight[v])
	_ = b.out.AddNode(tree.Node{ID: b.ids[v], Pos: b.pos[v]})

	var remaining []int
	for j := range b.ncrit {
		if !b.inTree[j] {
			remaining = append(remaining, j)
		}
	}

	mids := make([]int, 0, n)
	prev := u
	for _, p := range tree.SteinerPoints(b.pos[u], b.pos[v], n) {
		m := b.addSteiner(u, p, remaining)
		_ = b.out.AddEdge(b.ids[prev], b.ids[m], tree.Dist(b.pos[prev], p))
		mids = append(mids, m)
		prev = m
	}
	_ = b.out.AddEdge(b.ids[prev], b.ids[v], tree.Dist(b.pos[prev], b.pos[v]))
	return mids
}

func (b *builder) addSteiner(from int, p tree.Point, remaining []int) int {
	m := len(b.ids)
	id := b.ids[m-1] + 1
	b.ids = append(b.ids, id)
	b.pos = append(b.pos, p)
	b.dist = append(b.dist, b.dist[from]+tree.Dist(b.pos[from], p))
	b.straight = append(b.straight, tree.Dist(p, b.pos[0]))
	b.inTree = append(b.inTree, true)
	b.cands = append(b.cands, b.byDistance(m, slices.Clone(remaining)))
	b.cursor = append(b.cursor, 0)
	_ = b.out.AddNode(tree.Node{ID: id, Pos: p, Kind: tree.NodeKindSteiner})
	return m
}

// candidate is a pending edge from u (in the tree) to v (outside it).
type candidate struct {
	cost     float64
	u, v     int
	uid, vid int
	removed  bool
}

// candidateQueue is a min-heap of candidates ordered by cost, then by the IDs
// of their endpoints.
type candidateQueue []*candidate

func (q candidateQueue) Len() int { return len(q) }

func (q candidateQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.uid != b.uid {
		return a.uid < b.uid
	}
	return a.vid < b.vid
}

func (q candidateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *candidateQueue) Push(x any) { *q = append(*q, x.(*candidate)) }

func (q *candidateQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}
