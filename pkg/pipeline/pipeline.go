// Package pipeline runs a complete root architecture analysis.
//
// It ties the pieces of [pareto] together the same way for the CLI and the
// HTTP server: score the observed tree, sweep the Pareto front (through the
// cache), draw the random baseline, and locate both the observed tree and
// the baseline centroid relative to the front.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Analyze(ctx, g, pipeline.Options{Enable3D: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Distance.Alpha, res.Distance.Epsilon)
//
// Stages can also be run alone:
//
//	front, hit, err := runner.Front(ctx, g, opts)
//	baseline, err := runner.Random(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rootfront/pkg/cache"
	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/tree"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	DefaultSamples   = pareto.DefaultSamples
	DefaultSteps     = pareto.DefaultSteps
	DefaultMidpoints = pareto.DefaultMidpoints
)

// =============================================================================
// Options
// =============================================================================

// Options configures one analysis. Zero values select defaults. The JSON form
// is accepted by the HTTP API.
type Options struct {
	Enable3D bool `json:"enable_3d,omitempty"`

	// Samples is the random baseline size.
	Samples int `json:"samples,omitempty"`
	// Steps is the weight grid resolution of the front sweep.
	Steps int `json:"steps,omitempty"`
	// Midpoints is the number of Steiner points per new edge. Negative
	// disables them; zero selects the default.
	Midpoints int `json:"midpoints,omitempty"`
	// Workers bounds sample concurrency. Zero uses GOMAXPROCS.
	Workers int `json:"workers,omitempty"`
	// Seed makes the random baseline reproducible. Zero reseeds each run.
	Seed uint64 `json:"seed,omitempty"`

	// Refresh recomputes cached fronts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults fills defaults and checks ranges. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Samples == 0 {
		o.Samples = DefaultSamples
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	switch {
	case o.Midpoints == 0:
		o.Midpoints = DefaultMidpoints
	case o.Midpoints < 0:
		o.Midpoints = -1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateSamples(o.Samples); err != nil {
		return err
	}
	if err := errors.ValidateSteps(o.Steps); err != nil {
		return err
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must not be negative, got %d", o.Workers)
	}
	o.validated = true
	return nil
}

// midpoints returns the builder's midpoint count, mapping "disabled" to 0.
func (o *Options) midpoints() int { return max(0, o.Midpoints) }

func (o *Options) frontOpts() []pareto.Option {
	return []pareto.Option{
		pareto.WithSteps(o.Steps),
		pareto.WithMidpoints(o.midpoints()),
		pareto.WithWorkers(o.Workers),
	}
}

func (o *Options) randomOpts() []pareto.Option {
	opts := []pareto.Option{
		pareto.WithSamples(o.Samples),
		pareto.WithWorkers(o.Workers),
	}
	if o.Seed != 0 {
		opts = append(opts, pareto.WithSeed(o.Seed))
	}
	return opts
}

// FrontKeyOpts returns the cache key parameters for a front of dimension dim.
func (o *Options) FrontKeyOpts(dim int) cache.FrontKeyOpts {
	return cache.FrontKeyOpts{Dim: dim, Steps: o.Steps, Midpoints: o.midpoints()}
}

// =============================================================================
// Results
// =============================================================================

// Result holds every output of an analysis.
type Result struct {
	RunID     string      `json:"run_id"`
	GraphHash string      `json:"graph_hash"`
	Graph     *tree.Graph `json:"-"`

	Actual         pareto.Cost2D         `json:"actual"`
	Front          pareto.Front2D        `json:"front"`
	Distance       pareto.Distance2D     `json:"distance"`
	Random         []pareto.Cost2D       `json:"-"`
	RandomCentroid pareto.Cost2D         `json:"random_centroid"`
	RandomDistance pareto.Distance2D     `json:"random_distance"`
	Tradeoff       pareto.TradeoffResult `json:"tradeoff"`

	// ThreeD is set when Options.Enable3D was.
	ThreeD *Result3D `json:"three_d,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Result3D holds the three-objective outputs.
type Result3D struct {
	Actual         pareto.Cost3D     `json:"actual"`
	Front          pareto.Front3D    `json:"front"`
	Distance       pareto.Distance3D `json:"distance"`
	Random         []pareto.Cost3D   `json:"-"`
	RandomCentroid pareto.Cost3D     `json:"random_centroid"`
	RandomDistance pareto.Distance3D `json:"random_distance"`
}

// Stats describes the input and where time went.
type Stats struct {
	NodeCount     int           `json:"nodes"`
	EdgeCount     int           `json:"edges"`
	CriticalCount int           `json:"critical_nodes"`
	FrontTime     time.Duration `json:"front_ns"`
	RandomTime    time.Duration `json:"random_ns"`
	Front3DTime   time.Duration `json:"front3d_ns,omitempty"`
	Random3DTime  time.Duration `json:"random3d_ns,omitempty"`
	TotalTime     time.Duration `json:"total_ns"`
}

// CacheInfo records which fronts were read from the cache.
type CacheInfo struct {
	FrontHit   bool `json:"front_hit"`
	Front3DHit bool `json:"front3d_hit"`
}
