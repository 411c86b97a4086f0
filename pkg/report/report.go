// Package report flattens analysis results into named fields and writes them
// as CSV, JSON or YAML.
//
// Field names follow the column names used by existing root phenotyping
// spreadsheets ("Total root length", "scaling distance to front", ...), so
// output can be appended to those sheets directly. A field whose value is
// unavailable (an invalid front distance, a cyclic input tree) is nil and
// written as an empty cell or JSON null.
package report

import (
	"math"
	"strings"

	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/pipeline"
)

// Field is one named value of a record.
type Field struct {
	Name  string
	Value *float64
}

// Record is the flattened analysis of one input.
type Record struct {
	Source string
	Fields []Field
}

// Get returns the value of the named field.
func (r Record) Get(name string) (*float64, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Flatten turns res into a record. 3D fields are included when res holds
// 3D results.
func Flatten(source string, res *pipeline.Result) Record {
	rec := Record{Source: source}
	add := func(name string, v *float64) {
		rec.Fields = append(rec.Fields, Field{Name: name, Value: v})
	}

	add("Total root length", num(res.Actual.Length))
	add("Travel distance", num(res.Actual.Distance))
	alpha, eps := distance2D(res.Distance)
	add("alpha", alpha)
	add("scaling distance to front", eps)

	add("Total root length (random)", num(res.RandomCentroid.Length))
	add("Travel distance (random)", num(res.RandomCentroid.Distance))
	alpha, eps = distance2D(res.RandomDistance)
	add("alpha (random)", alpha)
	add("scaling (random)", eps)

	t := res.Tradeoff
	add("Tradeoff", finite(t.Tradeoff))
	add("Actual_ratio", finite(t.ActualRatio))
	add("Optimal_ratio", finite(t.OptimalRatio))
	if t.Steiner != nil {
		add("Steiner_length", num(t.Steiner.Length))
		add("Steiner_distance", num(t.Steiner.Distance))
	} else {
		add("Steiner_length", nil)
		add("Steiner_distance", nil)
	}
	if t.Satellite != nil {
		add("Satellite_length", num(t.Satellite.Length))
		add("Satellite_distance", num(t.Satellite.Distance))
	} else {
		add("Satellite_length", nil)
		add("Satellite_distance", nil)
	}

	if r3 := res.ThreeD; r3 != nil {
		add("Path tortuosity", num(r3.Actual.Tortuosity))
		for _, f := range distance3D(r3.Distance, "") {
			add(f.Name, f.Value)
		}
		add("Path tortuosity (random)", num(r3.RandomCentroid.Tortuosity))
		for _, f := range distance3D(r3.RandomDistance, " (random)") {
			add(f.Name, f.Value)
		}

		d := r3.Distance
		add("Steiner_tortuosity_3d", num(d.Steiner.Tortuosity))
		add("Satellite_tortuosity_3d", num(d.Satellite.Tortuosity))
		add("Coverage_length_3d", num(d.Coverage.Length))
		add("Coverage_distance_3d", num(d.Coverage.Distance))
		add("Coverage_tortuosity_3d", num(d.Coverage.Tortuosity))
	}
	return rec
}

func distance2D(d pareto.Distance2D) (alpha, eps *float64) {
	if !d.Valid {
		return nil, nil
	}
	return num(d.Alpha), num(d.Epsilon)
}

func distance3D(d pareto.Distance3D, suffix string) []Field {
	names := []string{"alpha_3d", "beta_3d", "gamma_3d", "epsilon_3d",
		"epsilon_3d_material", "epsilon_3d_transport", "epsilon_3d_coverage"}
	values := []float64{d.Alpha, d.Beta, d.Gamma, d.Epsilon,
		d.MaterialRatio, d.TransportRatio, d.CoverageRatio}

	out := make([]Field, len(names))
	for i, n := range names {
		out[i].Name = n + suffix
		if d.Valid {
			out[i].Value = num(values[i])
		}
	}
	return out
}

// num returns &f, or nil when f is not finite.
func num(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func finite(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return num(*p)
}

// dimensionless lists lower-case substrings that mark fields a length scale
// must not touch.
var dimensionless = []string{
	"alpha", "beta", "gamma", "epsilon", "scaling", "tortuosity", "tradeoff", "ratio",
}

// IsDimensionless reports whether the named field is a weight or ratio.
func IsDimensionless(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range dimensionless {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// Scale returns a copy of rec with every dimensional field multiplied by
// factor.
func Scale(rec Record, factor float64) Record {
	out := Record{Source: rec.Source, Fields: make([]Field, len(rec.Fields))}
	for i, f := range rec.Fields {
		out.Fields[i] = f
		if f.Value == nil || factor == 1 || IsDimensionless(f.Name) {
			continue
		}
		out.Fields[i].Value = num(*f.Value * factor)
	}
	return out
}

// Header returns the column name of field, with unit appended to
// dimensional fields.
func Header(name, unit string) string {
	if unit == "" || IsDimensionless(name) {
		return name
	}
	return name + " (" + unit + ")"
}
