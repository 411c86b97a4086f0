package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/render"
	"github.com/matzehuels/rootfront/pkg/tree"
)

// Trees that can be drawn.
const (
	TreeActual    = "actual"
	TreeSteiner   = "steiner"
	TreeSatellite = "satellite"
)

// ValidTrees lists the accepted RenderOptions.Tree values.
var ValidTrees = []string{TreeActual, TreeSteiner, TreeSatellite}

// RenderOptions selects a tree and how to draw it.
type RenderOptions struct {
	Tree string `json:"tree,omitempty"`
	// Alpha weights length against delay for the Steiner tree.
	Alpha float64 `json:"alpha"`
	// Beta, when ThreeD is set, weights delay against coverage.
	Beta   float64 `json:"beta,omitempty"`
	ThreeD bool    `json:"three_d,omitempty"`

	Midpoints int    `json:"midpoints,omitempty"`
	Format    string `json:"format,omitempty"`
	Title     string `json:"title,omitempty"`
	FlipY     bool   `json:"flip_y,omitempty"`
	Labels    bool   `json:"labels,omitempty"`
}

// ValidateAndSetDefaults fills defaults and checks the tree, weights and format.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.Tree == "" {
		o.Tree = TreeActual
	}
	if o.Format == "" {
		o.Format = render.FormatSVG
	}
	if o.Midpoints == 0 {
		o.Midpoints = DefaultMidpoints
	}
	if !slices.Contains(ValidTrees, o.Tree) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid tree %q (must be one of: actual, steiner, satellite)", o.Tree)
	}
	if !slices.Contains(render.ValidFormats, o.Format) {
		return errors.New(errors.ErrCodeUnsupported, "invalid format %q (must be one of: svg, png, dot)", o.Format)
	}
	if o.ThreeD {
		return errors.ValidateWeights(o.Alpha, o.Beta)
	}
	return errors.ValidateAlpha(o.Alpha)
}

// SelectTree returns the tree named by opts.Tree, built from g.
func SelectTree(g *tree.Graph, opts RenderOptions) *tree.Graph {
	switch opts.Tree {
	case TreeSteiner:
		mp := pareto.WithMidpoints(max(0, opts.Midpoints))
		if opts.ThreeD {
			return pareto.Steiner3D(g, pareto.Weights{Alpha: opts.Alpha, Beta: opts.Beta}, mp)
		}
		return pareto.Steiner(g, opts.Alpha, mp)
	case TreeSatellite:
		return pareto.Satellite(g)
	default:
		return g
	}
}

// RenderTree draws the selected tree of g.
func (r *Runner) RenderTree(ctx context.Context, g *tree.Graph, opts RenderOptions) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := CheckGraph(g); err != nil {
		return nil, err
	}
	h := SelectTree(g, opts)
	r.Logger.Debug("selected tree", "tree", opts.Tree, "nodes", h.NodeCount(), "edges", h.EdgeCount())

	dot := render.ToDOT(h, render.Options{Title: opts.Title, FlipY: opts.FlipY, Labels: opts.Labels})
	out, err := render.Render(ctx, dot, opts.Format)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s tree", opts.Tree)
	}
	return out, nil
}

// TreeTitle is a default caption for the selected tree.
func TreeTitle(opts RenderOptions) string {
	switch opts.Tree {
	case TreeSteiner:
		if opts.ThreeD {
			return fmt.Sprintf("Steiner tree (alpha=%.2f, beta=%.2f)", opts.Alpha, opts.Beta)
		}
		return fmt.Sprintf("Steiner tree (alpha=%.2f)", opts.Alpha)
	case TreeSatellite:
		return "Satellite tree"
	default:
		return "Observed tree"
	}
}
