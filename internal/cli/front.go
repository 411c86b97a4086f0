package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/graph"
	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/report"
)

// frontCommand creates the front command.
func (c *CLI) frontCommand() *cobra.Command {
	var (
		af     analysisFlags
		sf     scaleFlags
		csv    string
		browse bool
	)

	cmd := &cobra.Command{
		Use:   "front <graph.json>",
		Short: "Compute the Pareto front of a root graph",
		Long: `Front sweeps the trade-off weight alpha from 0 to 1, builds the optimal tree
for each weight and prints the resulting costs. The row closest to the
observed tree is highlighted. With --3d the (alpha, beta) grid of the
three-objective front is computed instead.`,
		Example: `  rootfront front root.json --steps 20
  rootfront front root.json --csv front.csv
  rootfront front root.json --browse`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, unit, err := sf.resolve(cmd, c.Config.Scale)
			if err != nil {
				return err
			}
			opts := af.options(cmd, c.Config.Analysis)
			if opts.Enable3D && browse {
				return errors.New(errors.ErrCodeUnsupported, "--browse supports the 2D front only")
			}

			ctx := cmd.Context()
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			runner := c.newRunner(ctx, af.noCache)
			defer runner.Close()

			spin := startSpinner(ctx, c.Logger, "Sweeping front...")
			if opts.Enable3D {
				front, hit, err := runner.Front3D(ctx, g, opts)
				spin.Stop()
				if err != nil {
					return err
				}
				printStats(g.NodeCount(), g.EdgeCount(), hit)
				return writeTo(csv, func(w io.Writer) error {
					return report.WriteFront3DCSV(w, front, factor)
				})
			}

			res, err := runner.FrontOnly(ctx, g, opts)
			spin.Stop()
			if err != nil {
				return err
			}
			printStats(g.NodeCount(), g.EdgeCount(), res.CacheHit)
			mark := closestAlpha(res.Front, res.Distance)

			switch {
			case browse:
				return runBrowser(ctx, NewFrontBrowser(args[0], res.Front, mark, factor, unit))
			case csv != "":
				return writeTo(csv, func(w io.Writer) error {
					return report.WriteFrontCSV(w, res.Front, factor)
				})
			default:
				fmt.Println(frontTable(res.Front, mark, factor, unit).Render())
				if res.Distance.Valid {
					printKeyValue("alpha", fmt.Sprintf("%.3f", res.Distance.Alpha))
					printKeyValue("scaling", fmt.Sprintf("%.3f", res.Distance.Epsilon))
				} else {
					printKeyValue("alpha", "n/a")
				}
				return nil
			}
		},
	}

	af.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVar(&csv, "csv", "", "write the front as CSV to this file (- for stdout)")
	cmd.Flags().BoolVar(&browse, "browse", false, "browse the front interactively")

	return cmd
}

// closestAlpha returns the index of the front point whose weight is nearest
// the interpolated weight of d, or -1 when d is invalid.
func closestAlpha(front pareto.Front2D, d pareto.Distance2D) int {
	if !d.Valid {
		return -1
	}
	best, bestDiff := -1, math.Inf(1)
	for i, p := range front {
		if diff := math.Abs(p.Alpha - d.Alpha); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// writeTo runs write against a created file at path, or stdout for "" and
// "-".
func writeTo(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(path)
	return nil
}

func runBrowser(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	return err
}
