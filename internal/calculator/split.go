package calculator

import (
	"cmp"
	"math/bits"
	"slices"
)

// splitEqually divides amount into n integer shares that sum exactly to amount.
// Leftover units go to the first positions.
func splitEqually(amount int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	weights := make([]int64, n)
	for i := range weights {
		weights[i] = 1
	}
	return splitByWeight(amount, weights)
}

// splitByWeight divides amount into integer shares proportional to weights using
// largest-remainder allocation: every position first receives the floor of its exact
// quota, then the leftover units go to the largest remainders (earlier positions win ties).
// Shares carry the sign of amount. Non-positive weights receive nothing.
// Returns nil when no weight is positive.
func splitByWeight(amount int64, weights []int64) []int64 {
	var total uint64
	for _, w := range weights {
		if w > 0 {
			total += uint64(w)
		}
	}
	if total == 0 {
		return nil
	}

	negative := amount < 0
	abs := uint64(amount)
	if negative {
		abs = uint64(-amount)
	}

	quotas := make([]uint64, len(weights))
	remainders := make([]uint64, len(weights))
	var allocated uint64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		// abs*w < 2^64*total, so the high word is always below total.
		hi, lo := bits.Mul64(abs, uint64(w))
		quotas[i], remainders[i] = bits.Div64(hi, lo, total)
		allocated += quotas[i]
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(remainders[b], remainders[a])
	})
	for _, i := range order[:abs-allocated] {
		quotas[i]++
	}

	shares := make([]int64, len(weights))
	for i, q := range quotas {
		shares[i] = int64(q)
		if negative {
			shares[i] = -shares[i]
		}
	}
	return shares
}
