package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/rootfront/pkg/tree"
)

// KindSteiner marks a synthetic Steiner point.
const KindSteiner = "steiner"

// =============================================================================
// Graph - Root System Serialization
// =============================================================================

// Graph is the canonical serialization format for root system graphs.
// Used for input files, API requests, and rendered tree exports.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a positioned vertex.
type Node struct {
	ID   int       `json:"id"`
	Pos  []float64 `json:"pos"`
	Kind string    `json:"kind,omitempty"` // "steiner" or empty
}

// IsSteiner returns true if this is a synthetic Steiner point.
func (n *Node) IsSteiner() bool { return n.Kind == KindSteiner }

// Edge is an undirected weighted connection.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

// UnmarshalJSON accepts both "edges" and the NetworkX "links" key.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
		Links []Edge `json:"links"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Nodes = raw.Nodes
	g.Edges = append(raw.Edges, raw.Links...)
	return nil
}

// =============================================================================
// tree.Graph ↔ Graph Conversion
// =============================================================================

// FromTree converts g to its serialization format. Nodes are sorted by ID and
// edges keep insertion order. 2D graphs (all Z zero) are written with
// two-element positions.
func FromTree(g *tree.Graph) Graph {
	nodes := g.Nodes()
	planar := true
	for _, n := range nodes {
		if n.Pos.Z != 0 {
			planar = false
			break
		}
	}

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for i, n := range nodes {
		pos := []float64{n.Pos.X, n.Pos.Y}
		if !planar {
			pos = append(pos, n.Pos.Z)
		}
		out.Nodes[i] = Node{ID: n.ID, Pos: pos}
		if n.IsSteiner() {
			out.Nodes[i].Kind = KindSteiner
		}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{Source: e.From, Target: e.To, Weight: e.Weight})
	}
	return out
}

// ToTree converts a serialized graph into a [tree.Graph]. Positions must have
// 2 or 3 components. Edges without a weight get the Euclidean distance
// between their endpoints.
func ToTree(gj Graph) (*tree.Graph, error) {
	g := tree.New()
	for _, nj := range gj.Nodes {
		p, err := point(nj.Pos)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", nj.ID, err)
		}
		n := tree.Node{ID: nj.ID, Pos: p}
		if nj.IsSteiner() {
			n.Kind = tree.NodeKindSteiner
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range gj.Edges {
		var err error
		if e.Weight == 0 {
			err = g.AddEuclideanEdge(e.Source, e.Target)
		} else {
			err = g.AddEdge(e.Source, e.Target, e.Weight)
		}
		if err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}

func point(pos []float64) (tree.Point, error) {
	switch len(pos) {
	case 2:
		return tree.Pt2(pos[0], pos[1]), nil
	case 3:
		return tree.Pt3(pos[0], pos[1], pos[2]), nil
	default:
		return tree.Point{}, fmt.Errorf("position must have 2 or 3 components, got %d", len(pos))
	}
}
