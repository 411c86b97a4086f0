package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/pkg/graph"
	"github.com/matzehuels/rootfront/pkg/pipeline"
	"github.com/matzehuels/rootfront/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts   pipeline.RenderOptions
		output string
		title  string
		noFlip bool
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Draw the observed, Steiner or satellite tree of a graph",
		Long: `Render draws one tree over the positions of a root graph:

  actual     the observed root tree
  steiner    the optimal tree for --alpha (and --beta with --3d)
  satellite  every tip joined straight to the base

Nodes are pinned to their coordinates. The base is drawn as a green square and
Steiner points as small grey dots.`,
		Example: `  rootfront render root.json
  rootfront render root.json --tree steiner --alpha 0.3 -f png -o steiner.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.FlipY = !noFlip
			if !cmd.Flags().Changed("midpoints") {
				opts.Midpoints = c.Config.Analysis.Midpoints
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			opts.Title = title
			if opts.Title == "" {
				opts.Title = pipeline.TreeTitle(opts)
			}
			if output == "" {
				output = defaultRenderPath(args[0], opts)
			}

			ctx := cmd.Context()
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			runner := c.newRunner(ctx, true)
			defer runner.Close()

			spin := startSpinner(ctx, c.Logger, "Rendering "+opts.Tree+" tree...")
			out, err := runner.RenderTree(ctx, g, opts)
			spin.Stop()
			if err != nil {
				return err
			}
			return writeTo(output, func(w io.Writer) error {
				_, err := w.Write(out)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&opts.Tree, "tree", pipeline.TreeActual, "tree to draw: actual, steiner, satellite")
	cmd.Flags().Float64Var(&opts.Alpha, "alpha", 0, "trade-off weight of the Steiner tree")
	cmd.Flags().Float64Var(&opts.Beta, "beta", 0, "tortuosity weight of the 3D Steiner tree")
	cmd.Flags().BoolVar(&opts.ThreeD, "3d", false, "build the three-objective Steiner tree")
	cmd.Flags().IntVar(&opts.Midpoints, "midpoints", pipeline.DefaultMidpoints, "Steiner points per new edge (negative disables)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", render.FormatSVG, "output format: "+strings.Join(render.ValidFormats, ", "))
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label nodes with their IDs")
	cmd.Flags().BoolVar(&noFlip, "no-flip", false, "keep image coordinates (y grows downward)")
	cmd.Flags().StringVar(&title, "title", "", "caption (default describes the tree)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default <graph>_<tree>.<format>)")

	return cmd
}

// defaultRenderPath derives "<dir>/<name>_<tree>.<format>" from the input path.
func defaultRenderPath(input string, opts pipeline.RenderOptions) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_" + opts.Tree + "." + opts.Format
}
