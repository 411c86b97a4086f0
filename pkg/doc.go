// Package pkg provides the libraries behind rootfront, which measures how
// close plant root architectures come to the Pareto-optimal trade-off between
// building material (total root length) and transport cost (travel distance
// from the base to each tip).
//
// # Overview
//
//  1. [tree] - positioned, weighted graphs and their validation
//  2. [graph] - JSON serialization of tree graphs (native and NetworkX layouts)
//  3. [pareto] - cost evaluation, greedy Steiner trees, front sweeps, random
//     baselines and distances to the front
//  4. [pipeline] - orchestration with front caching (analyze, front, random, render)
//  5. [report] - flat per-graph records, CSV, JSON and YAML output
//  6. [render] - Graphviz drawings of trees
//  7. [cache], [config], [errors], [observability], [buildinfo] - infrastructure
//
// # Data Flow
//
//	graph JSON
//	     ↓
//	[graph] package (decode into tree.Graph)
//	     ↓
//	[pipeline] package (front, baseline, distances; cached by graph hash)
//	     ↓
//	[report] package (flatten, scale units)
//	     ↓
//	CSV / JSON / YAML / HTTP response
//
// # Quick Start
//
//	g, err := graph.ReadGraphFile("root.json")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Analyze(ctx, g, pipeline.Options{Enable3D: true})
//	if err != nil {
//	    return err
//	}
//	rec := report.Scale(report.Flatten("root.json", res), 0.05)
//	return report.WriteCSV(os.Stdout, "mm", rec)
package pkg
