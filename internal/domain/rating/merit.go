package rating

import "math"

// normEpsilon is the threshold below which a merit sum counts as zero and
// the team falls back to a uniform split.
const normEpsilon = 1e-12

// teamShares converts a roster's impact scores into fractional shares of
// that side's pool. Winners are rewarded for high impact; losers for the
// least negative one, so a losing player who still performed well loses
// less. The merit shares are blended with an equal-split floor so every
// player keeps a non-trivial minimum share.
//
// Returns the blended shares (summing to 1) and the raw merit values,
// which double as the deterministic tie key for apportionment.
func (p Params) teamShares(impacts []float64, winners bool) (shares, merit []float64) {
	n := len(impacts)
	merit = make([]float64, n)
	for i, imp := range impacts {
		if !winners {
			imp = -imp
		}
		x := clip((imp+100.0)/200.0, 0, 1)
		merit[i] = math.Pow(x, p.MapGamma)
	}

	shares = normalize(merit)
	floor := 1.0 / float64(n)
	for i := range shares {
		shares[i] = p.MeritWeight*shares[i] + (1-p.MeritWeight)*floor
	}
	return shares, merit
}

// normalize scales v to sum to 1, falling back to a uniform split when the
// sum is ~zero. The input is left untouched.
func normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum <= normEpsilon {
		u := 1.0 / float64(len(v))
		for i := range out {
			out[i] = u
		}
		return out
	}
	for i, x := range v {
		out[i] = x / sum
	}
	return out
}
