// pkg/cleaner/stats.go
package cleaner

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// quantile returns the empirical p-quantile of xs. xs must be
// non-empty; it is not modified.
func quantile(xs []float64, p float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// median returns the midpoint of the sorted values: the middle value
// for odd counts, the mean of the two middle values for even counts.
// xs must be non-empty; it is not modified.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// meanStdDev returns the mean and sample standard deviation of xs.
// Fewer than two values have stddev 0.
func meanStdDev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	if len(xs) == 1 {
		return xs[0], 0
	}
	m, sd := stat.MeanStdDev(xs, nil)
	return m, sd
}
