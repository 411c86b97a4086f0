package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/pkg/graph"
	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/report"
)

// randomCommand creates the random command.
func (c *CLI) randomCommand() *cobra.Command {
	var (
		af     analysisFlags
		sf     scaleFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "random <graph.json>",
		Short: "Sample the costs of random spanning trees",
		Long: `Random draws random spanning trees over the base and tips of a graph and
writes their costs as CSV. The centroid is printed to stderr. Use --seed for
reproducible samples.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, unit, err := sf.resolve(cmd, c.Config.Scale)
			if err != nil {
				return err
			}
			opts := af.options(cmd, c.Config.Analysis)
			ctx := cmd.Context()

			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			// Baselines are never cached.
			runner := c.newRunner(ctx, true)
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			spin := startSpinner(ctx, c.Logger, "Sampling random trees...")
			if opts.Enable3D {
				costs, err := runner.Random3D(ctx, g, opts)
				spin.Stop()
				if err != nil {
					return err
				}
				prog.done("Sampled random trees")
				centroid := pareto.Centroid3D(costs)
				printKeyValue("centroid", formatCost(centroid.Length*factor, centroid.Distance*factor, unit))
				return writeTo(output, func(w io.Writer) error {
					return report.WriteRandom3DCSV(w, costs, factor)
				})
			}

			costs, err := runner.Random(ctx, g, opts)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done("Sampled random trees")
			centroid := pareto.Centroid(costs)
			printKeyValue("centroid", formatCost(centroid.Length*factor, centroid.Distance*factor, unit))
			return writeTo(output, func(w io.Writer) error {
				return report.WriteRandomCSV(w, costs, factor)
			})
		},
	}

	af.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	// The front is not computed here.
	_ = cmd.Flags().MarkHidden("steps")
	_ = cmd.Flags().MarkHidden("no-cache")
	_ = cmd.Flags().MarkHidden("refresh")

	return cmd
}
