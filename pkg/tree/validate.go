package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBase is returned by [Validate] when node [BaseID] is absent.
	ErrMissingBase = errors.New("graph has no base node")

	// ErrDisconnected is returned by [Validate] when some node cannot be
	// reached from the base.
	ErrDisconnected = errors.New("graph is not connected")

	// ErrCycle is returned by [Validate] when the graph contains a cycle.
	ErrCycle = errors.New("graph contains a cycle")
)

// Validate checks that g contains the base, is connected, and is acyclic.
// A connected graph is a tree exactly when it has one edge fewer than nodes,
// so the cycle check needs no traversal of its own.
func Validate(g *Graph) error {
	if !g.HasNode(BaseID) {
		return ErrMissingBase
	}
	reached := Reachable(g, BaseID)
	if reached != g.NodeCount() {
		return fmt.Errorf("%w: reached %d of %d nodes", ErrDisconnected, reached, g.NodeCount())
	}
	if g.EdgeCount() != g.NodeCount()-1 {
		return fmt.Errorf("%w: %d edges for %d nodes", ErrCycle, g.EdgeCount(), g.NodeCount())
	}
	return nil
}

// Reachable returns the number of nodes reachable from start, start included.
func Reachable(g *Graph, start int) int {
	if !g.HasNode(start) {
		return 0
	}
	seen := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range g.adj[u] {
			if !seen[v] {
				seen[v] = true
				stack = append(stack, v)
			}
		}
	}
	return len(seen)
}
