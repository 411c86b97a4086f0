package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/pkg/config"
	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/pipeline"
)

// analysisFlags are the options shared by analyze, front and random. Unset
// flags fall back to the [analysis] config section.
type analysisFlags struct {
	enable3D  bool
	samples   int
	steps     int
	midpoints int
	workers   int
	seed      uint64
	noCache   bool
	refresh   bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	d := config.Default().Analysis
	fl := cmd.Flags()
	fl.BoolVar(&f.enable3D, "3d", d.Enable3D, "also run the three-objective analysis")
	fl.IntVar(&f.samples, "samples", d.RandomSamples, "random baseline size")
	fl.IntVar(&f.steps, "steps", d.Steps, "weight grid resolution of the front sweep")
	fl.IntVar(&f.midpoints, "midpoints", d.Midpoints, "Steiner points per new edge (negative disables)")
	fl.IntVar(&f.workers, "workers", d.Workers, "parallel workers (0 = all CPUs)")
	fl.Uint64Var(&f.seed, "seed", d.Seed, "random seed (0 = nondeterministic)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the front cache")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute fronts and overwrite cached ones")
}

// options merges the flags that were set over the configured defaults.
func (f *analysisFlags) options(cmd *cobra.Command, cfg config.Analysis) pipeline.Options {
	fl := cmd.Flags()
	if fl.Changed("3d") {
		cfg.Enable3D = f.enable3D
	}
	if fl.Changed("samples") {
		cfg.RandomSamples = f.samples
	}
	if fl.Changed("steps") {
		cfg.Steps = f.steps
	}
	if fl.Changed("midpoints") {
		cfg.Midpoints = f.midpoints
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	return pipeline.Options{
		Enable3D:  cfg.Enable3D,
		Samples:   cfg.RandomSamples,
		Steps:     cfg.Steps,
		Midpoints: cfg.Midpoints,
		Workers:   cfg.Workers,
		Seed:      cfg.Seed,
		Refresh:   f.refresh,
	}
}

// scaleFlags convert pixel lengths into physical units on output.
type scaleFlags struct {
	factor float64
	unit   string
}

func (f *scaleFlags) register(cmd *cobra.Command) {
	d := config.Default().Scale
	cmd.Flags().Float64Var(&f.factor, "scale", d.Factor, "length scale factor applied to reported lengths")
	cmd.Flags().StringVar(&f.unit, "unit", d.Unit, "unit of scaled lengths")
}

func (f *scaleFlags) resolve(cmd *cobra.Command, cfg config.Scale) (float64, string, error) {
	if cmd.Flags().Changed("scale") {
		cfg.Factor = f.factor
	}
	if cmd.Flags().Changed("unit") {
		cfg.Unit = f.unit
	}
	if err := errors.ValidateScaleFactor(cfg.Factor); err != nil {
		return 0, "", err
	}
	if err := errors.ValidateUnit(cfg.Unit); err != nil {
		return 0, "", err
	}
	return cfg.Factor, cfg.Unit, nil
}
