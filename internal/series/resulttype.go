package series

// ResultType selects which measurement of a round becomes the plotted value.
type ResultType string

const (
	Single          ResultType = "single"
	Average         ResultType = "average"
	Rank            ResultType = "rank"
	WorldRank       ResultType = "wr"
	ContinentalRank ResultType = "cr"
	NationalRank    ResultType = "nr"
	Solves          ResultType = "solves"
	Worst           ResultType = "worst"
)

// IsRankType reports whether the result type plots a ranking position rather
// than a measurement.
func (t ResultType) IsRankType() bool {
	switch t {
	case Rank, WorldRank, ContinentalRank, NationalRank:
		return true
	}
	return false
}
