package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/rootfront/pkg/tree"
)

// targetSize is the longest side of an auto-scaled drawing, in inches.
const targetSize = 8.0

// Options configures DOT output.
type Options struct {
	// Title is drawn above the tree when set.
	Title string
	// Scale is inches per input unit. Zero fits the tree into targetSize.
	Scale float64
	// FlipY negates y so image coordinates (y down) draw upright.
	FlipY bool
	// Labels prints node IDs inside regular nodes.
	Labels bool
}

// ToDOT writes g as an undirected Graphviz graph with pinned positions.
func ToDOT(g *tree.Graph, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = fitScale(g)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, width=0.12, fixedsize=true, fontsize=6, label=\"\"];\n")
	buf.WriteString("  edge [color=\"#5b3a1e\", penwidth=1.5];\n\n")

	for _, n := range g.Nodes() {
		x, y := n.Pos.X*scale, n.Pos.Y*scale
		if opts.FlipY {
			y = -y
		}
		attrs := fmt.Sprintf("pos=\"%s,%s!\"", ftoa(x), ftoa(y))
		switch {
		case n.ID == tree.BaseID:
			attrs += ", shape=square, fillcolor=\"#2e7d32\", width=0.18"
		case n.IsSteiner():
			attrs += ", fillcolor=grey, color=grey, width=0.05"
		case opts.Labels:
			attrs += fmt.Sprintf(", label=\"%d\", width=0.2", n.ID)
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.From, e.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fitScale(g *tree.Graph) float64 {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes() {
		minX, maxX = min(minX, n.Pos.X), max(maxX, n.Pos.X)
		minY, maxY = min(minY, n.Pos.Y), max(maxY, n.Pos.Y)
	}
	span := max(maxX-minX, maxY-minY)
	if math.IsInf(span, 0) || span <= 0 {
		return 1
	}
	return targetSize / span
}

func ftoa(f float64) string {
	return fmt.Sprintf("%.4f", f)
}
