package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/graph"
	"github.com/matzehuels/rootfront/pkg/pipeline"
	"github.com/matzehuels/rootfront/pkg/report"
)

// Output formats of the analyze command.
const (
	formatCSV  = "csv"
	formatJSON = "json"
	formatYAML = "yaml"
)

type analyzeOpts struct {
	pipeline pipeline.Options
	factor   float64
	unit     string
	format   string
	output   string
	quiet    bool
	noCache  bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		af     analysisFlags
		sf     scaleFlags
		format string
		output string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <graph.json>...",
		Short: "Measure observed root trees against their Pareto front",
		Long: `Analyze computes, for each graph, the Pareto front of optimal trees, a random
baseline, and how far the observed tree and the baseline lie from the front.
One record per graph is written as CSV, JSON or YAML.`,
		Example: `  rootfront analyze roots/*.json -o results.csv
  rootfront analyze root.json --3d --scale 0.05 --unit mm --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, unit, err := sf.resolve(cmd, c.Config.Scale)
			if err != nil {
				return err
			}
			switch format {
			case formatCSV, formatJSON, formatYAML:
			default:
				return errors.New(errors.ErrCodeUnsupported, "invalid format %q (must be one of: csv, json, yaml)", format)
			}
			return c.runAnalyze(cmd.Context(), args, analyzeOpts{
				pipeline: af.options(cmd, c.Config.Analysis),
				factor:   factor,
				unit:     unit,
				format:   format,
				output:   output,
				quiet:    quiet,
				noCache:  af.noCache,
			})
		},
	}

	af.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "output format: csv, json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print per-graph summaries")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, paths []string, opts analyzeOpts) error {
	logger := loggerFromContext(ctx)
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	records := make([]report.Record, 0, len(paths))
	var failed int
	for i, path := range paths {
		rec, err := c.analyzeFile(ctx, runner, logger, path, opts, fmt.Sprintf("[%d/%d]", i+1, len(paths)))
		if err != nil {
			if stderrors.Is(err, context.Canceled) {
				return err
			}
			failed++
			printError("%s: %s", path, errors.UserMessage(err))
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		if err := writeRecords(opts, records); err != nil {
			return err
		}
	}
	if failed > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%d of %d graphs failed", failed, len(paths))
	}
	return nil
}

func (c *CLI) analyzeFile(ctx context.Context, runner *pipeline.Runner, logger *log.Logger, path string, opts analyzeOpts, counter string) (report.Record, error) {
	prog := newProgress(logger)

	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return report.Record{}, err
	}

	spin := startSpinner(ctx, logger, fmt.Sprintf("%s Analyzing %s...", counter, filepath.Base(path)))
	res, err := runner.Analyze(ctx, g, opts.pipeline)
	spin.Stop()
	if err != nil {
		return report.Record{}, err
	}
	logger.Debug("analysis complete",
		"file", path,
		"run", res.RunID,
		"front", res.Stats.FrontTime,
		"random", res.Stats.RandomTime,
		"cached", res.CacheInfo.FrontHit)

	rec := report.Scale(report.Flatten(filepath.Base(path), res), opts.factor)
	prog.done(counter + " Analyzed " + path)
	if !opts.quiet {
		printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.FrontHit)
		printSummary(rec, opts.unit)
	}
	return rec, nil
}

func writeRecords(opts analyzeOpts, records []report.Record) error {
	return writeTo(opts.output, func(w io.Writer) error {
		switch opts.format {
		case formatJSON:
			return report.WriteJSON(w, records...)
		case formatYAML:
			return report.WriteYAML(w, records...)
		}
		return report.WriteCSV(w, opts.unit, records...)
	})
}
