// Package graph provides the JSON wire format for root system graphs.
//
// This package sits at the serialization boundary between files, HTTP
// requests and caches on one side and the in-memory [tree.Graph] on the
// other.
//
// # Format
//
// Graphs use a node-link JSON format. Positions are 2 or 3 element arrays;
// the base of the root system is the node with id 0:
//
//	{
//	  "nodes": [{"id": 0, "pos": [0, 0]}, {"id": 1, "pos": [10, 0]}],
//	  "edges": [{"source": 0, "target": 1, "weight": 10}]
//	}
//
// NetworkX node-link output is accepted as-is: "links" is read as a synonym
// for "edges". A missing or zero weight is replaced by the Euclidean
// distance between the endpoints. Synthetic Steiner points carry
// "kind": "steiner".
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("root.json")    // File → tree.Graph
//	graph.WriteGraphFile(g, "steiner.json")     // tree.Graph → File
//	data, _ := graph.MarshalGraph(g)            // tree.Graph → []byte
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct graphs.
package graph
