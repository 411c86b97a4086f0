// Package pareto compares a traced root system against the Pareto front of
// trees that trade wiring length against conduction delay, with optional
// path tortuosity as a third objective.
//
// The building blocks, from the leaves up:
//
//   - [CriticalNodes] picks the base and the tips, the only nodes an optimal
//     tree must connect.
//   - [Costs] and [Costs3D] evaluate a tree.
//   - [Satellite] and [Steiner] build the two kinds of candidate trees; the
//     latter is a greedy approximation that inserts Steiner points.
//   - [SweepFront] and [SweepFront3D] sweep the trade-off weights.
//   - [RandomTrees] samples a random baseline.
//   - [FrontDistance], [FrontDistance3D] and [Tradeoff] locate an observed
//     cost vector relative to the front.
//
// Everything here is a pure function of its inputs except the random
// sampler, which reseeds on each call unless given an explicit source.
package pareto

import (
	"github.com/matzehuels/rootfront/pkg/tree"
)

// CriticalNodes returns the base and every node of degree one, in ascending
// ID order. These are the nodes whose connectivity every candidate tree must
// preserve.
func CriticalNodes(g *tree.Graph) []int {
	var out []int
	for _, id := range g.NodeIDs() {
		if id == tree.BaseID || g.Degree(id) == 1 {
			out = append(out, id)
		}
	}
	return out
}
