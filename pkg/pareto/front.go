package pareto

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rootfront/pkg/tree"
)

// keyTolerance is how close a weight must be to a front key for Lookup to match.
const keyTolerance = 1e-9

// FrontPoint2D is one sample of a two-objective front.
type FrontPoint2D struct {
	Alpha float64 `json:"alpha"`
	Cost  Cost2D  `json:"cost"`
}

// Front2D maps trade-off weights to the costs of the tree built for them,
// sorted by ascending alpha.
type Front2D []FrontPoint2D

// Lookup returns the cost recorded for alpha.
func (f Front2D) Lookup(alpha float64) (Cost2D, bool) {
	for _, p := range f {
		if math.Abs(p.Alpha-alpha) <= keyTolerance {
			return p.Cost, true
		}
	}
	return Cost2D{}, false
}

// FrontPoint3D is one sample of a three-objective front.
type FrontPoint3D struct {
	Weights
	Cost Cost3D `json:"cost"`
}

// Front3D is the three-objective front sorted by (alpha, beta).
type Front3D []FrontPoint3D

// Lookup returns the cost recorded for w.
func (f Front3D) Lookup(w Weights) (Cost3D, bool) {
	for _, p := range f {
		if math.Abs(p.Alpha-w.Alpha) <= keyTolerance && math.Abs(p.Beta-w.Beta) <= keyTolerance {
			return p.Cost, true
		}
	}
	return Cost3D{}, false
}

// SweepFront sweeps alpha over a grid of [WithSteps]+1 evenly spaced values in
// [0, 1]. At alpha=0 it uses the satellite tree, elsewhere the greedy Steiner
// builder; each tree is scored with delay counted at the critical nodes of g.
//
// Samples run on up to [WithWorkers] goroutines. The result does not depend
// on the worker count. ctx is checked before each sample.
func SweepFront(ctx context.Context, g *tree.Graph, opts ...Option) (Front2D, error) {
	s := newSettings(opts)
	critical := CriticalNodes(g)

	front := make(Front2D, s.steps+1)
	err := sweep(ctx, len(front), s.workers, func(i int) {
		alpha := float64(i) / float64(s.steps)
		var h *tree.Graph
		if i == 0 {
			h = satellite(g, critical)
		} else {
			h = Steiner(g, alpha, WithMidpoints(s.midpoints))
		}
		front[i] = FrontPoint2D{Alpha: alpha, Cost: Costs(h, critical)}
	})
	if err != nil {
		return nil, err
	}
	return front, nil
}

// SweepFront3D sweeps (alpha, beta) over the grid of multiples of 1/steps with
// alpha+beta <= 1. The pure-delay corner (0, 1) uses the satellite tree.
// This is roughly steps/2 times the work of [SweepFront].
func SweepFront3D(ctx context.Context, g *tree.Graph, opts ...Option) (Front3D, error) {
	s := newSettings(opts)
	critical := CriticalNodes(g)

	// Built in (alpha, beta) order, which is the order of the result.
	var grid []Weights
	for i := 0; i <= s.steps; i++ {
		for j := 0; i+j <= s.steps; j++ {
			grid = append(grid, Weights{
				Alpha: float64(i) / float64(s.steps),
				Beta:  float64(j) / float64(s.steps),
			})
		}
	}

	front := make(Front3D, len(grid))
	err := sweep(ctx, len(grid), s.workers, func(k int) {
		w := grid[k]
		var h *tree.Graph
		if w.Alpha == 0 && w.Beta == 1 {
			h = satellite(g, critical)
		} else {
			h = Steiner3D(g, w, WithMidpoints(s.midpoints))
		}
		front[k] = FrontPoint3D{Weights: w, Cost: Costs3D(h, critical)}
	})
	if err != nil {
		return nil, err
	}
	return front, nil
}

// sweep runs sample(i) for i in [0, n) on a bounded pool of goroutines.
func sweep(ctx context.Context, n, workers int, sample func(i int)) error {
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, workers))
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sample(i)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
