package pareto

import (
	"github.com/matzehuels/rootfront/pkg/tree"
)

// Satellite returns the star that connects the base straight to every other
// critical node of g. It minimizes conduction delay and is the alpha=0 end of
// the front.
func Satellite(g *tree.Graph) *tree.Graph {
	return satellite(g, CriticalNodes(g))
}

func satellite(g *tree.Graph, critical []int) *tree.Graph {
	s := tree.New()
	for _, id := range critical {
		_ = s.AddNode(tree.Node{ID: id, Pos: g.Pos(id)})
	}
	for _, id := range critical {
		if id == tree.BaseID {
			continue
		}
		_ = s.AddEuclideanEdge(tree.BaseID, id)
	}
	return s
}
