package pareto

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/rootfront/pkg/tree"
)

// weightTolerance absorbs round-off in grid weights such as 0.07+0.93.
const weightTolerance = 1e-9

// Cost2D is the (wiring length, conduction delay) cost vector of a tree.
type Cost2D struct {
	Length   float64 `json:"length"`
	Distance float64 `json:"distance"`
}

// IsInf reports whether c is the infinite sentinel returned for cyclic graphs.
func (c Cost2D) IsInf() bool {
	return math.IsInf(c.Length, 1) && math.IsInf(c.Distance, 1)
}

// Finite reports whether both components are finite numbers.
func (c Cost2D) Finite() bool { return finite(c.Length, c.Distance) }

// Cost3D extends [Cost2D] with the path tortuosity sum.
type Cost3D struct {
	Length     float64 `json:"length"`
	Distance   float64 `json:"distance"`
	Tortuosity float64 `json:"tortuosity"`
}

// IsInf reports whether c is the infinite sentinel returned for cyclic graphs.
func (c Cost3D) IsInf() bool {
	return math.IsInf(c.Length, 1) && math.IsInf(c.Distance, 1) && math.IsInf(c.Tortuosity, 1)
}

// Finite reports whether every component is a finite number.
func (c Cost3D) Finite() bool { return finite(c.Length, c.Distance, c.Tortuosity) }

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Cost2D drops the tortuosity component.
func (c Cost3D) Cost2D() Cost2D { return Cost2D{Length: c.Length, Distance: c.Distance} }

var (
	inf2D = Cost2D{Length: math.Inf(1), Distance: math.Inf(1)}
	inf3D = Cost3D{Length: math.Inf(1), Distance: math.Inf(1), Tortuosity: math.Inf(1)}
)

// Costs returns the wiring length and conduction delay of g, measured by a
// breadth-first walk from the base.
//
// When critical is non-nil only those nodes contribute to the delay;
// otherwise every non-base node does. A cyclic graph yields the infinite
// sentinel. A graph with nodes unreachable from the base is a caller bug
// and panics.
func Costs(g *tree.Graph, critical []int) Cost2D {
	w, ok := walk(g, critical, false)
	if !ok {
		return inf2D
	}
	return Cost2D{Length: w.length, Distance: w.distance}
}

// Costs3D is [Costs] plus the tortuosity sum: for each contributing node the
// ratio of its path length to its straight-line distance from the base. A
// node coincident with the base contributes exactly 1.
func Costs3D(g *tree.Graph, critical []int) Cost3D {
	w, ok := walk(g, critical, true)
	if !ok {
		return inf3D
	}
	return Cost3D{Length: w.length, Distance: w.distance, Tortuosity: w.tortuosity}
}

// Actual returns the costs of the traced graph itself, counting delay at the
// critical nodes only.
func Actual(g *tree.Graph) Cost2D {
	return Costs(g, CriticalNodes(g))
}

// Actual3D is the three-objective variant of [Actual].
func Actual3D(g *tree.Graph) Cost3D {
	return Costs3D(g, CriticalNodes(g))
}

type walkResult struct {
	length, distance, tortuosity float64
}

func walk(g *tree.Graph, critical []int, withTortuosity bool) (walkResult, bool) {
	var counts func(int) bool
	if critical == nil {
		counts = func(id int) bool { return id != tree.BaseID }
	} else {
		set := make(map[int]bool, len(critical))
		for _, id := range critical {
			set[id] = true
		}
		counts = func(id int) bool { return id != tree.BaseID && set[id] }
	}

	base := g.Pos(tree.BaseID)
	dist := map[int]float64{tree.BaseID: 0}
	parent := map[int]int{tree.BaseID: -1}
	queue := []int{tree.BaseID}

	var lengths, dists, ratios []float64
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Neighbors(u) {
			if v == parent[u] {
				continue
			}
			if _, seen := dist[v]; seen {
				return walkResult{}, false
			}
			w, _ := g.Weight(u, v)
			dist[v] = dist[u] + w
			parent[v] = u
			queue = append(queue, v)
			lengths = append(lengths, w)

			if !counts(v) {
				continue
			}
			dists = append(dists, dist[v])
			if withTortuosity {
				ratios = append(ratios, tortuosity(dist[v], tree.Dist(g.Pos(v), base)))
			}
		}
	}

	if len(dist) != g.NodeCount() {
		panic(fmt.Errorf("pareto: %w: reached %d of %d nodes", tree.ErrDisconnected, len(dist), g.NodeCount()))
	}
	return walkResult{
		length:     sum(lengths),
		distance:   sum(dists),
		tortuosity: sum(ratios),
	}, true
}

func tortuosity(pathLen, straight float64) float64 {
	if straight == 0 {
		return 1.0
	}
	return pathLen / straight
}

// sum adds xs in ascending order so totals do not depend on traversal order.
func sum(xs []float64) float64 {
	slices.Sort(xs)
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// WeightedCost is the two-objective scalarization alpha*length + (1-alpha)*distance.
// It panics unless 0 <= alpha <= 1.
func WeightedCost(length, distance, alpha float64) float64 {
	checkAlpha(alpha)
	return alpha*length + (1-alpha)*distance
}

// Weights are the trade-off weights of the three-objective problem. Gamma,
// the coverage weight, is implied: 1 - Alpha - Beta.
type Weights struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Gamma returns 1 - Alpha - Beta, floored at zero to absorb round-off.
func (w Weights) Gamma() float64 {
	return max(0, 1-w.Alpha-w.Beta)
}

// Valid reports whether w lies on the weight simplex.
func (w Weights) Valid() bool {
	return w.Alpha >= 0 && w.Alpha <= 1 &&
		w.Beta >= 0 && w.Beta <= 1 &&
		w.Alpha+w.Beta <= 1+weightTolerance
}

// WeightedCost3D is alpha*length + beta*distance - gamma*coverage. It panics
// when w is off the weight simplex.
func WeightedCost3D(length, distance, coverage float64, w Weights) float64 {
	if !w.Valid() {
		panic(fmt.Sprintf("pareto: invalid weights alpha=%v beta=%v", w.Alpha, w.Beta))
	}
	return w.Alpha*length + w.Beta*distance - w.Gamma()*coverage
}

func checkAlpha(alpha float64) {
	if !(alpha >= 0 && alpha <= 1) {
		panic(fmt.Sprintf("pareto: alpha %v outside [0, 1]", alpha))
	}
}
