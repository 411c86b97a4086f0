// Package tree provides the undirected, positioned, weighted graph used to
// represent root systems and the trees built from them.
//
// Nodes carry an integer ID and a position in space. By convention the node
// with ID [BaseID] is the base of the root system (the point where the root
// meets the stem). Edges are undirected and weighted; the weight is normally
// the Euclidean distance between the endpoints.
//
// A [Graph] does not enforce acyclicity or connectivity on insertion because
// traced input may violate both. Use [Validate] to check the structural
// invariants before analysis.
package tree

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// BaseID is the ID of the base node.
const BaseID = 0

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the ID is negative.
	ErrInvalidNodeID = errors.New("node ID must not be negative")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] when either endpoint does
	// not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are equal.
	ErrSelfLoop = errors.New("edge endpoints must differ")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the two nodes are
	// already connected.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrInvalidWeight is returned by [Graph.AddEdge] for negative or NaN weights.
	ErrInvalidWeight = errors.New("edge weight must be a non-negative number")
)

// NodeKind distinguishes traced nodes from synthetic ones inserted while
// building optimal trees.
type NodeKind int

const (
	// NodeKindRegular is a node from the traced input (or a copy of one).
	NodeKindRegular NodeKind = iota
	// NodeKindSteiner is a synthetic point inserted along a new edge by the
	// greedy tree builder.
	NodeKindSteiner
)

// String returns "regular" or "steiner".
func (k NodeKind) String() string {
	if k == NodeKindSteiner {
		return "steiner"
	}
	return "regular"
}

// Node is a vertex with a position.
type Node struct {
	ID   int
	Pos  Point
	Kind NodeKind
}

// IsSteiner reports whether the node is a synthetic Steiner point.
func (n Node) IsSteiner() bool { return n.Kind == NodeKindSteiner }

// Edge is an undirected weighted connection. From and To keep the order in
// which the edge was added.
type Edge struct {
	From   int
	To     int
	Weight float64
}

type edgeKey struct{ a, b int }

func keyOf(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// Graph is an undirected weighted graph with positioned nodes.
//
// The zero value is not usable; call [New]. Graph is not safe for concurrent
// mutation, but concurrent reads are fine once construction is complete.
type Graph struct {
	nodes   map[int]*Node
	adj     map[int][]int
	weights map[edgeKey]float64
	edges   []Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[int]*Node),
		adj:     make(map[int][]int),
		weights: make(map[edgeKey]float64),
	}
}

// AddNode inserts n. IDs must be unique and non-negative.
func (g *Graph) AddNode(n Node) error {
	if n.ID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNodeID, n.ID)
	}
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateNodeID, n.ID)
	}
	node := n
	g.nodes[n.ID] = &node
	return nil
}

// AddEdge connects u and v with the given weight.
func (g *Graph) AddEdge(u, v int, weight float64) error {
	if _, ok := g.nodes[u]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, u)
	}
	if _, ok := g.nodes[v]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, v)
	}
	if u == v {
		return fmt.Errorf("%w: %d", ErrSelfLoop, u)
	}
	if weight < 0 || math.IsNaN(weight) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	k := keyOf(u, v)
	if _, ok := g.weights[k]; ok {
		return fmt.Errorf("%w: %d-%d", ErrDuplicateEdge, u, v)
	}
	g.weights[k] = weight
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	g.edges = append(g.edges, Edge{From: u, To: v, Weight: weight})
	return nil
}

// AddEuclideanEdge connects u and v with a weight equal to the distance
// between their positions.
func (g *Graph) AddEuclideanEdge(u, v int) error {
	nu, ok := g.nodes[u]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, u)
	}
	nv, ok := g.nodes[v]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, v)
	}
	return g.AddEdge(u, v, Dist(nu.Pos, nv.Pos))
}

// Node returns the node with the given ID.
func (g *Graph) Node(id int) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.nodes[id]
	return ok
}

// Pos returns the position of id, or the origin if id is unknown.
func (g *Graph) Pos(id int) Point {
	if n, ok := g.nodes[id]; ok {
		return n.Pos
	}
	return Point{}
}

// Nodes returns all nodes sorted by ID.
func (g *Graph) Nodes() []Node {
	ids := slices.Sorted(maps.Keys(g.nodes))
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = *g.nodes[id]
	}
	return out
}

// NodeIDs returns all node IDs in ascending order.
func (g *Graph) NodeIDs() []int {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Neighbors returns the nodes adjacent to id in edge insertion order.
func (g *Graph) Neighbors(id int) []int {
	return slices.Clone(g.adj[id])
}

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id int) int { return len(g.adj[id]) }

// Weight returns the weight of edge u-v.
func (g *Graph) Weight(u, v int) (float64, bool) {
	w, ok := g.weights[keyOf(u, v)]
	return w, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// MaxID returns the largest node ID, or -1 for an empty graph.
func (g *Graph) MaxID() int {
	m := -1
	for id := range g.nodes {
		m = max(m, id)
	}
	return m
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := New()
	for id, n := range g.nodes {
		node := *n
		c.nodes[id] = &node
	}
	for id, ns := range g.adj {
		c.adj[id] = slices.Clone(ns)
	}
	maps.Copy(c.weights, g.weights)
	c.edges = slices.Clone(g.edges)
	return c
}
