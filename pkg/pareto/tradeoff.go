package pareto

// TradeoffResult contrasts the observed length/delay ratio with the ratio
// spanned by the two ends of the front. Ratio fields are nil when a
// denominator is zero, an input is not finite or the front is empty.
type TradeoffResult struct {
	Tradeoff     *float64 `json:"tradeoff"`
	ActualRatio  *float64 `json:"actual_ratio"`
	OptimalRatio *float64 `json:"optimal_ratio"`

	// Steiner is the front point with minimal length, Satellite the one with
	// minimal distance. Both are nil for an empty front.
	Steiner   *Cost2D `json:"steiner"`
	Satellite *Cost2D `json:"satellite"`
}

// Tradeoff computes Actual_ratio = L/D of actual, Optimal_ratio = Steiner
// length over Satellite distance, and their quotient.
func Tradeoff(front Front2D, actual Cost2D) TradeoffResult {
	var res TradeoffResult
	if actual.Finite() && actual.Distance != 0 {
		res.ActualRatio = ptr(actual.Length / actual.Distance)
	}
	if len(front) == 0 {
		return res
	}

	steiner, satellite := front[0].Cost, front[0].Cost
	for _, p := range front[1:] {
		if p.Cost.Length < steiner.Length {
			steiner = p.Cost
		}
		if p.Cost.Distance < satellite.Distance {
			satellite = p.Cost
		}
	}
	res.Steiner, res.Satellite = &steiner, &satellite

	if steiner.Finite() && satellite.Finite() && satellite.Distance != 0 {
		res.OptimalRatio = ptr(steiner.Length / satellite.Distance)
	}
	if res.ActualRatio != nil && res.OptimalRatio != nil && *res.OptimalRatio != 0 {
		res.Tradeoff = ptr(*res.ActualRatio / *res.OptimalRatio)
	}
	return res
}

func ptr(f float64) *float64 { return &f }
