package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/rootfront/pkg/cache"
	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/graph"
	"github.com/matzehuels/rootfront/pkg/observability"
	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/tree"
)

// Runner executes analyses with front caching. It holds no per-run state and
// is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of cached fronts.
	TTL time.Duration
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer uses
// [cache.DefaultKeyer] and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.DefaultFrontTTL}
}

// Analyze runs the full analysis of g.
func (r *Runner) Analyze(ctx context.Context, g *tree.Graph, opts Options) (_ *Result, err error) {
	start := time.Now()
	if err := r.prepare(g, &opts); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:     uuid.NewString(),
		GraphHash: GraphHash(g),
		Graph:     g,
	}
	defer func() {
		observability.Analysis().OnAnalysisComplete(ctx, res.RunID, time.Since(start), err)
	}()

	critical := pareto.CriticalNodes(g)
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.EdgeCount = g.EdgeCount()
	res.Stats.CriticalCount = len(critical)

	res.Actual = pareto.Actual(g)
	if res.Actual.IsInf() {
		opts.Logger.Warn("observed tree contains a cycle, its costs are unavailable")
	}
	opts.Logger.Info("scored observed tree",
		"nodes", g.NodeCount(),
		"critical", len(critical),
		"length", res.Actual.Length,
		"distance", res.Actual.Distance)

	// 2D
	t := time.Now()
	front, hit, err := r.Front(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.Front = front
	res.CacheInfo.FrontHit = hit
	res.Stats.FrontTime = time.Since(t)
	opts.Logger.Info("computed front", "points", len(front), "cached", hit, "duration", res.Stats.FrontTime)

	t = time.Now()
	randoms, err := r.Random(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.Random = randoms
	res.RandomCentroid = pareto.Centroid(randoms)
	res.Stats.RandomTime = time.Since(t)
	opts.Logger.Info("sampled random trees", "samples", len(randoms), "duration", res.Stats.RandomTime)

	res.Distance = pareto.FrontDistance(front, res.Actual)
	res.RandomDistance = pareto.FrontDistance(front, res.RandomCentroid)
	res.Tradeoff = pareto.Tradeoff(front, res.Actual)
	opts.Logger.Debug("front distance",
		"alpha", res.Distance.Alpha,
		"epsilon", res.Distance.Epsilon,
		"alpha_random", res.RandomDistance.Alpha,
		"epsilon_random", res.RandomDistance.Epsilon)

	if opts.Enable3D {
		r3, err := r.analyze3D(ctx, g, &opts, res)
		if err != nil {
			return nil, err
		}
		res.ThreeD = r3
	}

	res.Stats.TotalTime = time.Since(start)
	return res, nil
}

func (r *Runner) analyze3D(ctx context.Context, g *tree.Graph, opts *Options, res *Result) (*Result3D, error) {
	r3 := &Result3D{Actual: pareto.Actual3D(g)}

	t := time.Now()
	front, hit, err := r.Front3D(ctx, g, *opts)
	if err != nil {
		return nil, err
	}
	r3.Front = front
	res.CacheInfo.Front3DHit = hit
	res.Stats.Front3DTime = time.Since(t)
	opts.Logger.Info("computed 3D front", "points", len(front), "cached", hit, "duration", res.Stats.Front3DTime)

	t = time.Now()
	randoms, err := r.Random3D(ctx, g, *opts)
	if err != nil {
		return nil, err
	}
	r3.Random = randoms
	r3.RandomCentroid = pareto.Centroid3D(randoms)
	res.Stats.Random3DTime = time.Since(t)

	r3.Distance = pareto.FrontDistance3D(front, r3.Actual)
	r3.RandomDistance = pareto.FrontDistance3D(front, r3.RandomCentroid)
	opts.Logger.Debug("3D front distance",
		"alpha", r3.Distance.Alpha,
		"beta", r3.Distance.Beta,
		"gamma", r3.Distance.Gamma,
		"epsilon", r3.Distance.Epsilon)
	return r3, nil
}

// FrontResult is the output of [Runner.FrontOnly].
type FrontResult struct {
	GraphHash string            `json:"graph_hash"`
	Actual    pareto.Cost2D     `json:"actual"`
	Front     pareto.Front2D    `json:"front"`
	Distance  pareto.Distance2D `json:"distance"`
	CacheHit  bool              `json:"cache_hit"`
}

// FrontOnly computes the 2D front and where the observed tree sits on it,
// skipping the random baseline.
func (r *Runner) FrontOnly(ctx context.Context, g *tree.Graph, opts Options) (*FrontResult, error) {
	if err := r.prepare(g, &opts); err != nil {
		return nil, err
	}
	front, hit, err := r.Front(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	actual := pareto.Actual(g)
	return &FrontResult{
		GraphHash: GraphHash(g),
		Actual:    actual,
		Front:     front,
		Distance:  pareto.FrontDistance(front, actual),
		CacheHit:  hit,
	}, nil
}

// Front returns the 2D front of g, reading through the cache.
func (r *Runner) Front(ctx context.Context, g *tree.Graph, opts Options) (pareto.Front2D, bool, error) {
	if err := r.prepare(g, &opts); err != nil {
		return nil, false, err
	}
	key := r.Keyer.FrontKey(GraphHash(g), opts.FrontKeyOpts(2))
	return cachedFront(ctx, r, opts, key, cache.KeyTypeFront, func() (pareto.Front2D, error) {
		return timed(ctx, "2d", opts.Steps+1, func() (pareto.Front2D, error) {
			return pareto.SweepFront(ctx, g, opts.frontOpts()...)
		})
	})
}

// Front3D returns the 3D front of g, reading through the cache.
func (r *Runner) Front3D(ctx context.Context, g *tree.Graph, opts Options) (pareto.Front3D, bool, error) {
	if err := r.prepare(g, &opts); err != nil {
		return nil, false, err
	}
	key := r.Keyer.FrontKey(GraphHash(g), opts.FrontKeyOpts(3))
	samples := (opts.Steps + 1) * (opts.Steps + 2) / 2
	return cachedFront(ctx, r, opts, key, cache.KeyTypeFront3D, func() (pareto.Front3D, error) {
		return timed(ctx, "3d", samples, func() (pareto.Front3D, error) {
			return pareto.SweepFront3D(ctx, g, opts.frontOpts()...)
		})
	})
}

// Random draws the 2D random baseline. Baselines are never cached.
func (r *Runner) Random(ctx context.Context, g *tree.Graph, opts Options) ([]pareto.Cost2D, error) {
	if err := r.prepare(g, &opts); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Analysis().OnRandomStart(ctx, opts.Samples)
	out, err := pareto.RandomTrees(ctx, g, opts.randomOpts()...)
	err = errors.Canceled(err, "analysis")
	observability.Analysis().OnRandomComplete(ctx, opts.Samples, time.Since(start), err)
	return out, err
}

// Random3D draws the 3D random baseline.
func (r *Runner) Random3D(ctx context.Context, g *tree.Graph, opts Options) ([]pareto.Cost3D, error) {
	if err := r.prepare(g, &opts); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Analysis().OnRandomStart(ctx, opts.Samples)
	out, err := pareto.RandomTrees3D(ctx, g, opts.randomOpts()...)
	err = errors.Canceled(err, "analysis")
	observability.Analysis().OnRandomComplete(ctx, opts.Samples, time.Since(start), err)
	return out, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare applies the runner's logger and option defaults, then checks g.
func (r *Runner) prepare(g *tree.Graph, opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	return CheckGraph(g)
}

// cachedFront returns the cached front under key, or computes and stores it.
// Cache failures are logged and never fail the analysis.
func cachedFront[F ~[]P, P any](ctx context.Context, r *Runner, opts Options, key, keyType string, compute func() (F, error)) (F, bool, error) {
	hooks := observability.Cache()
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			opts.Logger.Warn("cache read failed", "type", keyType, "err", err)
		case hit:
			var f F
			if err := json.Unmarshal(data, &f); err == nil {
				hooks.OnCacheHit(ctx, keyType)
				return f, true, nil
			}
			opts.Logger.Debug("discarding corrupt cache entry", "type", keyType)
		}
		hooks.OnCacheMiss(ctx, keyType)
	}

	f, err := compute()
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(f); err != nil {
		opts.Logger.Debug("front not cacheable", "type", keyType, "err", err)
	} else if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "type", keyType, "err", err)
	} else {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return f, false, nil
}

func timed[F any](ctx context.Context, dim string, samples int, fn func() (F, error)) (F, error) {
	start := time.Now()
	observability.Analysis().OnFrontStart(ctx, dim, samples)
	f, err := fn()
	err = errors.Canceled(err, "analysis")
	observability.Analysis().OnFrontComplete(ctx, dim, time.Since(start), err)
	return f, err
}

// CheckGraph verifies that g can be analyzed: it must contain the base, be
// connected, and have finite positions and edge weights. Cycles are allowed; the observed
// costs of a cyclic graph are reported as unavailable.
func CheckGraph(g *tree.Graph) error {
	if g == nil || g.NodeCount() == 0 {
		return errors.New(errors.ErrCodeInvalidGraph, "graph is empty")
	}
	if !g.HasNode(tree.BaseID) {
		return errors.Wrap(errors.ErrCodeInvalidGraph, tree.ErrMissingBase, "node %d is required", tree.BaseID)
	}
	if n := tree.Reachable(g, tree.BaseID); n != g.NodeCount() {
		return errors.Wrap(errors.ErrCodeInvalidGraph, tree.ErrDisconnected, "reached %d of %d nodes", n, g.NodeCount())
	}
	for _, n := range g.Nodes() {
		p := n.Pos
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return errors.New(errors.ErrCodeInvalidGraph, "node %d has a non-finite position", n.ID)
		}
	}
	for _, e := range g.Edges() {
		if !finite(e.Weight) {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %d-%d has a non-finite weight", e.From, e.To)
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// GraphHash is the content hash of g's canonical JSON form. g must pass
// [CheckGraph].
func GraphHash(g *tree.Graph) string {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		panic(fmt.Sprintf("pipeline: marshal graph: %v", err))
	}
	return cache.Hash(data)
}
