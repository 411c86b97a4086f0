// Package render draws root trees with Graphviz.
//
// Nodes are pinned at their measured positions and laid out with neato, so
// the picture matches the source image rather than a computed layout. 3D
// positions are projected onto the XY plane.
//
//	dot := render.ToDOT(g, render.Options{FlipY: true})
//	svg, err := render.Render(ctx, dot, render.FormatSVG)
//
// The base node is drawn as a filled square, Steiner points as small grey
// dots and regular nodes as circles.
package render
