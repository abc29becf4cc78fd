package domain

import "math"

// AdvanceRatio is the share of the total collected upfront to confirm a
// reservation. The remainder is due after the service is rendered.
// Kept global rather than per-service; persisted amounts make a future
// per-service ratio a purely additive change.
const AdvanceRatio = 0.80

// SplitAmount splits a total into advance and balance amounts.
// The advance is rounded to the nearest minor unit; the balance is the
// remainder, so advance + balance == total always holds and the balance
// is never negative for a non-negative total.
func SplitAmount(total int64) (advance, balance int64) {
	advance = int64(math.Round(float64(total) * AdvanceRatio))
	if advance > total {
		advance = total
	}
	return advance, total - advance
}
