package pareto

import (
	"cmp"
	"math"
	"slices"
)

// idwGuard keeps inverse-distance weights finite when an epsilon is zero.
const idwGuard = 1e-10

// Distance2D locates a cost vector relative to a two-objective front.
type Distance2D struct {
	// Alpha is the interpolated trade-off weight of the nearest front region.
	Alpha float64 `json:"alpha"`
	// Epsilon is the factor by which the closest front point must be scaled
	// to dominate the cost vector; 1 means the vector lies on the front.
	Epsilon        float64 `json:"epsilon"`
	MaterialRatio  float64 `json:"material_ratio"`
	TransportRatio float64 `json:"transport_ratio"`
	// Valid is false when the cost vector is not finite or no front point
	// has non-zero costs.
	Valid bool `json:"valid"`
}

type scored2D struct {
	alpha, eps, material, transport float64
}

// FrontDistance returns where actual sits relative to front.
//
// Each front point gets epsilon = max(actual.L/front.L, actual.D/front.D);
// points with a zero component are skipped. The two points with the
// smallest epsilon are blended by inverse epsilon to give alpha, unless their
// epsilons tie, in which case the smaller alpha wins. Epsilon is that of the
// closest point.
//
// A non-finite actual (the sentinel of a cyclic tree) yields the invalid
// result: epsilon +Inf, alpha 0.
func FrontDistance(front Front2D, actual Cost2D) Distance2D {
	if !actual.Finite() {
		return Distance2D{Epsilon: math.Inf(1)}
	}
	var pts []scored2D
	for _, p := range front {
		if p.Cost.Length == 0 || p.Cost.Distance == 0 {
			continue
		}
		m := actual.Length / p.Cost.Length
		t := actual.Distance / p.Cost.Distance
		pts = append(pts, scored2D{alpha: p.Alpha, eps: max(m, t), material: m, transport: t})
	}
	if len(pts) == 0 {
		return Distance2D{Epsilon: math.Inf(1)}
	}
	slices.SortStableFunc(pts, func(a, b scored2D) int { return cmp.Compare(a.eps, b.eps) })

	best := pts[0]
	res := Distance2D{
		Alpha:          best.alpha,
		Epsilon:        best.eps,
		MaterialRatio:  best.material,
		TransportRatio: best.transport,
		Valid:          true,
	}
	if len(pts) == 1 || best.eps == 0 {
		return res
	}
	second := pts[1]
	if math.Abs(best.eps-second.eps) <= 1e-12 {
		res.Alpha = min(best.alpha, second.alpha)
		return res
	}
	w1, w2 := 1/best.eps, 1/second.eps
	res.Alpha = (w1*best.alpha + w2*second.alpha) / (w1 + w2)
	return res
}

// Distance3D locates a cost vector relative to a three-objective front.
type Distance3D struct {
	Epsilon float64 `json:"epsilon"`
	Alpha   float64 `json:"alpha"`
	Beta    float64 `json:"beta"`
	Gamma   float64 `json:"gamma"`

	// Component ratios of the closest front point.
	MaterialRatio  float64 `json:"material_ratio"`
	TransportRatio float64 `json:"transport_ratio"`
	CoverageRatio  float64 `json:"coverage_ratio"`

	// Corner costs read straight from the front at (1,0), (0,1) and (0,0).
	Steiner   Cost3D `json:"steiner"`
	Satellite Cost3D `json:"satellite"`
	Coverage  Cost3D `json:"coverage"`

	Valid bool `json:"valid"`
}

type scored3D struct {
	w                             Weights
	eps, material, transport, cov float64
}

// FrontDistance3D extends [FrontDistance] to three objectives. Alpha and beta
// are the inverse-distance weighted mean of the up to three closest valid
// points, clamped to the weight simplex, and gamma = 1 - alpha - beta. This is
// an interpolation over nearest samples, not barycentric coordinates on a
// triangulated front.
//
// When actual is not finite or no point is valid, epsilon is +Inf and the
// weights sit at the coverage corner (0, 0, 1).
func FrontDistance3D(front Front3D, actual Cost3D) Distance3D {
	res := Distance3D{Epsilon: math.Inf(1), Gamma: 1}
	res.Steiner, _ = front.Lookup(Weights{Alpha: 1, Beta: 0})
	res.Satellite, _ = front.Lookup(Weights{Alpha: 0, Beta: 1})
	res.Coverage, _ = front.Lookup(Weights{Alpha: 0, Beta: 0})
	if !actual.Finite() {
		return res
	}

	var pts []scored3D
	for _, p := range front {
		c := p.Cost
		if c.Length == 0 || c.Distance == 0 || c.Tortuosity == 0 {
			continue
		}
		m := actual.Length / c.Length
		t := actual.Distance / c.Distance
		v := actual.Tortuosity / c.Tortuosity
		pts = append(pts, scored3D{w: p.Weights, eps: max(m, t, v), material: m, transport: t, cov: v})
	}
	if len(pts) == 0 {
		return res
	}
	slices.SortStableFunc(pts, func(a, b scored3D) int { return cmp.Compare(a.eps, b.eps) })

	best := pts[0]
	res.Epsilon = best.eps
	res.MaterialRatio = best.material
	res.TransportRatio = best.transport
	res.CoverageRatio = best.cov
	res.Valid = true

	var alpha, beta, total float64
	for _, p := range pts[:min(3, len(pts))] {
		w := 1 / (p.eps + idwGuard)
		alpha += w * p.w.Alpha
		beta += w * p.w.Beta
		total += w
	}
	alpha, beta = clampSimplex(alpha/total, beta/total)
	res.Alpha, res.Beta = alpha, beta
	res.Gamma = max(0, 1-alpha-beta)
	return res
}

func clampSimplex(a, b float64) (float64, float64) {
	a = min(max(a, 0), 1)
	b = min(max(b, 0), 1)
	if s := a + b; s > 1 {
		a, b = a/s, b/s
	}
	return a, b
}
