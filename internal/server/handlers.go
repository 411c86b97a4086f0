package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rootfront/pkg/buildinfo"
	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/graph"
	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/pipeline"
	"github.com/matzehuels/rootfront/pkg/render"
	"github.com/matzehuels/rootfront/pkg/report"
	"github.com/matzehuels/rootfront/pkg/tree"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// analyzeResponse is the body of POST /v1/analyze.
type analyzeResponse struct {
	RunID     string             `json:"run_id"`
	RequestID string             `json:"request_id,omitempty"`
	GraphHash string             `json:"graph_hash"`
	Unit      string             `json:"unit"`
	Record    report.Record      `json:"record"`
	Stats     pipeline.Stats     `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := &query{r: r}
	opts := s.analysisOptions(q)
	opts.Enable3D = q.flag("enable_3d", opts.Enable3D)
	factor := q.number("scale", s.cfg.Scale.Factor)
	unit := q.str("unit", s.cfg.Scale.Unit)
	if err := q.err(); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateScaleFactor(factor); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateUnit(unit); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Analyze(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("analyzed graph",
		"run", res.RunID,
		"request", middleware.GetReqID(r.Context()),
		"nodes", res.Stats.NodeCount,
		"duration", res.Stats.TotalTime)

	writeJSON(w, http.StatusOK, analyzeResponse{
		RunID:     res.RunID,
		RequestID: middleware.GetReqID(r.Context()),
		GraphHash: res.GraphHash,
		Unit:      unit,
		Record:    report.Scale(report.Flatten(res.GraphHash, res), factor),
		Stats:     res.Stats,
		Cache:     res.CacheInfo,
	})
}

// frontResponse is the body of POST /v1/front. Costs of the observed tree
// are null when unavailable.
type frontResponse struct {
	GraphHash string         `json:"graph_hash"`
	Front     pareto.Front2D `json:"front"`
	Actual    struct {
		Length   *float64 `json:"length"`
		Distance *float64 `json:"distance"`
	} `json:"actual"`
	Alpha    *float64 `json:"alpha"`
	Epsilon  *float64 `json:"epsilon"`
	CacheHit bool     `json:"cache_hit"`
}

func (s *Server) handleFront(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := &query{r: r}
	opts := s.analysisOptions(q)
	if err := q.err(); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.FrontOnly(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	var body frontResponse
	body.GraphHash = res.GraphHash
	body.Front = res.Front
	body.CacheHit = res.CacheHit
	if !res.Actual.IsInf() {
		body.Actual.Length = &res.Actual.Length
		body.Actual.Distance = &res.Actual.Distance
	}
	if res.Distance.Valid {
		body.Alpha = &res.Distance.Alpha
		body.Epsilon = &res.Distance.Epsilon
	}
	writeJSON(w, http.StatusOK, body)
}

var contentTypes = map[string]string{
	render.FormatSVG: "image/svg+xml",
	render.FormatPNG: "image/png",
	render.FormatDOT: "text/vnd.graphviz",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := &query{r: r}
	opts := pipeline.RenderOptions{
		Tree:      q.str("tree", pipeline.TreeActual),
		Alpha:     q.number("alpha", 0),
		Beta:      q.number("beta", 0),
		ThreeD:    q.flag("three_d", false),
		Midpoints: q.integer("midpoints", s.cfg.Analysis.Midpoints),
		Format:    q.str("format", render.FormatSVG),
		FlipY:     q.flag("flip_y", true),
		Labels:    q.flag("labels", false),
	}
	if err := q.err(); err != nil {
		writeError(w, err)
		return
	}
	opts.Title = pipeline.TreeTitle(opts)

	out, err := s.runner.RenderTree(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// analysisOptions starts from the configured defaults and applies query
// overrides.
func (s *Server) analysisOptions(q *query) pipeline.Options {
	a := s.cfg.Analysis
	return pipeline.Options{
		Enable3D:  a.Enable3D,
		Samples:   q.integer("samples", a.RandomSamples),
		Steps:     q.integer("steps", a.Steps),
		Midpoints: q.integer("midpoints", a.Midpoints),
		Workers:   a.Workers,
		Seed:      q.u64("seed", a.Seed),
		Refresh:   q.flag("refresh", false),
		Logger:    s.logger,
	}
}

func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*tree.Graph, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBody)
	g, err := graph.ReadGraph(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, err
	}
	return g, nil
}

// query parses typed query parameters, remembering the first failure.
type query struct {
	r     *http.Request
	first error
}

func (q *query) raw(name string) (string, bool) {
	v := q.r.URL.Query().Get(name)
	return v, v != ""
}

func (q *query) fail(name, v string) {
	if q.first == nil {
		q.first = errors.New(errors.ErrCodeInvalidInput, "invalid value %q for query parameter %s", v, name)
	}
}

func (q *query) str(name, def string) string {
	if v, ok := q.raw(name); ok {
		return v
	}
	return def
}

func (q *query) integer(name string, def int) int {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, v)
		return def
	}
	return n
}

func (q *query) u64(name string, def uint64) uint64 {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		q.fail(name, v)
		return def
	}
	return n
}

func (q *query) number(name string, def float64) float64 {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(name, v)
		return def
	}
	return f
}

func (q *query) flag(name string, def bool) bool {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, v)
		return def
	}
	return b
}

func (q *query) err() error { return q.first }

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidWeights,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Code: code, Message: errors.UserMessage(err)})
}

// writeJSON encodes v before writing the header. A value that cannot be
// encoded is answered with a coded 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		body := errorBody{Code: errors.ErrCodeInternal, Message: "failed to encode response"}
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			http.Error(w, "internal error", status)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
