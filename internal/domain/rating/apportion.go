package rating

import (
	"math"
	"sort"
)

// apportion splits an integer pool across fractional shares with the
// largest-remainder (Hamilton) method: floor everyone's raw entitlement,
// then hand the leftover units one each to the largest fractional parts.
// Ties break on the higher merit key, then on ascending player name, so
// the split is fully determined by record content. The result always sums
// to pool exactly.
func apportion(shares, meritKey []float64, names []string, pool int64) []int64 {
	w := normalize(shares)

	units := make([]int64, len(w))
	frac := make([]float64, len(w))
	var used int64
	for i, s := range w {
		raw := s * float64(pool)
		base := math.Floor(raw)
		units[i] = int64(base)
		frac[i] = raw - base
		used += int64(base)
	}

	rem := pool - used
	if rem <= 0 {
		return units
	}

	order := make([]int, len(w))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if frac[ia] != frac[ib] {
			return frac[ia] > frac[ib]
		}
		if meritKey[ia] != meritKey[ib] {
			return meritKey[ia] > meritKey[ib]
		}
		return names[ia] < names[ib]
	})
	for i := 0; i < len(order) && int64(i) < rem; i++ {
		units[order[i]]++
	}
	return units
}
