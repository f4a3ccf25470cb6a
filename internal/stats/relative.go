package stats

// Relative positions one value against its own series' valid values.
type Relative struct {
	DevFromMean   float64 `json:"dev_from_mean"`
	DevFromMedian float64 `json:"dev_from_median"`
	// Percentile is the share of the series' values worse than this one,
	// where worse always means greater: slower times, more moves, higher
	// rank positions.
	Percentile float64 `json:"percentile"`
	// ZScore is nil when the series has zero variance.
	ZScore *float64 `json:"z_score"`
}

// Relativize computes per-point relative statistics for value against the
// series summarized by d, with values being the same valid set d was
// computed from. ok is false when the value set is empty.
func Relativize(value float64, d Descriptive, values []float64) (Relative, bool) {
	if len(values) == 0 {
		return Relative{}, false
	}

	worse := 0
	for _, v := range values {
		if v > value {
			worse++
		}
	}

	r := Relative{
		DevFromMean:   value - d.Mean,
		DevFromMedian: value - d.Median,
		Percentile:    float64(worse) / float64(len(values)) * 100,
	}
	if d.StdDev > 0 {
		z := (value - d.Mean) / d.StdDev
		r.ZScore = &z
	}
	return r, true
}
