package pareto

import (
	"context"
	"math/rand/v2"

	"github.com/matzehuels/rootfront/pkg/tree"
)

// RandomTrees draws [WithSamples] random spanning trees over the critical
// nodes of g and returns their costs. Each tree is grown by repeatedly taking
// an unplaced critical node uniformly at random and attaching it with a
// straight edge to a uniformly random placed node.
//
// Without [WithSeed] or [WithRand] every call starts from a fresh seed, so
// two calls on the same graph give different baselines. Each sample draws
// from its own stream derived from that seed, which keeps the result
// independent of how samples are scheduled across workers.
func RandomTrees(ctx context.Context, g *tree.Graph, opts ...Option) ([]Cost2D, error) {
	s := newSettings(opts)
	critical := CriticalNodes(g)
	seed := baseSeed(s)

	out := make([]Cost2D, s.samples)
	err := sweep(ctx, s.samples, s.workers, func(i int) {
		out[i] = Costs(randomTree(g, critical, streamRand(seed, uint64(i))), nil)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RandomTrees3D is [RandomTrees] scored with [Costs3D].
func RandomTrees3D(ctx context.Context, g *tree.Graph, opts ...Option) ([]Cost3D, error) {
	s := newSettings(opts)
	critical := CriticalNodes(g)
	seed := baseSeed(s)

	out := make([]Cost3D, s.samples)
	err := sweep(ctx, s.samples, s.workers, func(i int) {
		out[i] = Costs3D(randomTree(g, critical, streamRand(seed, uint64(i))), nil)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Centroid returns the component-wise mean of costs, or the zero vector for
// an empty slice.
func Centroid(costs []Cost2D) Cost2D {
	if len(costs) == 0 {
		return Cost2D{}
	}
	var c Cost2D
	for _, x := range costs {
		c.Length += x.Length
		c.Distance += x.Distance
	}
	n := float64(len(costs))
	return Cost2D{Length: c.Length / n, Distance: c.Distance / n}
}

// Centroid3D is the three-objective variant of [Centroid].
func Centroid3D(costs []Cost3D) Cost3D {
	if len(costs) == 0 {
		return Cost3D{}
	}
	var c Cost3D
	for _, x := range costs {
		c.Length += x.Length
		c.Distance += x.Distance
		c.Tortuosity += x.Tortuosity
	}
	n := float64(len(costs))
	return Cost3D{Length: c.Length / n, Distance: c.Distance / n, Tortuosity: c.Tortuosity / n}
}

func randomTree(g *tree.Graph, critical []int, r *rand.Rand) *tree.Graph {
	t := tree.New()
	pool := append([]int(nil), critical...)
	placed := make([]int, 0, len(pool))
	for len(pool) > 0 {
		k := r.IntN(len(pool))
		id := pool[k]
		pool = append(pool[:k], pool[k+1:]...)

		_ = t.AddNode(tree.Node{ID: id, Pos: g.Pos(id)})
		if len(placed) > 0 {
			_ = t.AddEuclideanEdge(id, placed[r.IntN(len(placed))])
		}
		placed = append(placed, id)
	}
	return t
}

func baseSeed(s settings) uint64 {
	switch {
	case s.seeded:
		return s.seed
	case s.rng != nil:
		return s.rng.Uint64()
	default:
		return rand.Uint64()
	}
}

// streamRand returns the generator for stream i of seed, mixing the two with
// the SplitMix64 finalizer so neighbouring streams are uncorrelated.
func streamRand(seed, i uint64) *rand.Rand {
	x := seed ^ (i + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return rand.New(rand.NewPCG(x, x^0xdeadbeef))
}
