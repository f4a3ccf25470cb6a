// Package stats derives descriptive, relative, and cross-series statistics
// from normalized result series. Every function is pure; inputs with too few
// points yield an explicit "not applicable" result rather than a panic or a
// silent division by zero.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Descriptive summarizes one series' valid (non-DNF, positive) values.
type Descriptive struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
	// StdDev is the population standard deviation (divide by n).
	StdDev float64 `json:"std_dev"`
	// CV is the coefficient of variation, stdDev/mean as a percentage.
	CV    float64 `json:"cv"`
	Best  float64 `json:"best"`
	Worst float64 `json:"worst"`
}

// Describe computes descriptive statistics over a value set. ok is false for
// an empty input. Quartiles use the floor-index convention on the ascending
// sort: Q1 at floor(0.25·n), Q3 at floor(0.75·n).
func Describe(values []float64) (Descriptive, bool) {
	n := len(values)
	if n == 0 {
		return Descriptive{}, false
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := stat.Mean(sorted, nil)
	stdDev := stat.PopStdDev(sorted, nil)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	q1 := sorted[n/4]
	q3i := (3 * n) / 4
	if q3i >= n {
		q3i = n - 1
	}
	q3 := sorted[q3i]

	cv := 0.0
	if mean != 0 {
		cv = stdDev / mean * 100
	}

	return Descriptive{
		Count:  n,
		Mean:   mean,
		Median: median,
		Q1:     q1,
		Q3:     q3,
		IQR:    q3 - q1,
		StdDev: stdDev,
		CV:     cv,
		Best:   sorted[0],
		Worst:  sorted[n-1],
	}, true
}
