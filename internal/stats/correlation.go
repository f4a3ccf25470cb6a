package stats

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/roowus/graphisizer/internal/series"
)

// CorrelationTolerance is the date-alignment window for pairing two series'
// points: competitions starting within this many hours of each other count
// as the same observation.
const CorrelationTolerance = 48 * time.Hour

// minCorrelationPairs is the minimum paired observations required before a
// coefficient is reported.
const minCorrelationPairs = 3

// PairCorrelation is the Pearson correlation between two series over their
// date-aligned valid points. Coefficient is nil when fewer than three pairs
// exist or either series has zero variance in the paired subset.
type PairCorrelation struct {
	A           string   `json:"a"`
	B           string   `json:"b"`
	Pairs       int      `json:"pairs"`
	Coefficient *float64 `json:"coefficient"`
}

// Correlate pairs the valid points of a and b by date within
// CorrelationTolerance and computes the Pearson correlation coefficient.
func Correlate(a, b *series.Series) PairCorrelation {
	out := PairCorrelation{A: a.WCAID, B: b.WCAID}

	xs, ys := alignedValues(a, b, CorrelationTolerance)
	out.Pairs = len(xs)
	if len(xs) < minCorrelationPairs {
		return out
	}
	if stat.PopVariance(xs, nil) == 0 || stat.PopVariance(ys, nil) == 0 {
		return out
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return out
	}
	out.Coefficient = &r
	return out
}

// CorrelateAll computes pairwise correlations for every distinct pair.
func CorrelateAll(list []*series.Series) []PairCorrelation {
	var out []PairCorrelation
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			out = append(out, Correlate(list[i], list[j]))
		}
	}
	return out
}

// alignedValues walks both date-sorted series with two cursors, emitting one
// value pair per alignment. A point is consumed once; no point pairs twice.
func alignedValues(a, b *series.Series, tolerance time.Duration) (xs, ys []float64) {
	ap := validPoints(a)
	bp := validPoints(b)

	i, j := 0, 0
	for i < len(ap) && j < len(bp) {
		diff := ap[i].Date.Sub(bp[j].Date)
		switch {
		case diff < -tolerance:
			i++
		case diff > tolerance:
			j++
		default:
			xs = append(xs, ap[i].Value)
			ys = append(ys, bp[j].Value)
			i++
			j++
		}
	}
	return xs, ys
}

func validPoints(s *series.Series) []series.DataPoint {
	out := make([]series.DataPoint, 0, len(s.Points))
	for _, p := range s.Points {
		if !p.IsDNF && p.Value > 0 {
			out = append(out, p)
		}
	}
	return out
}
