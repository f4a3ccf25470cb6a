package series

import "sort"

// UnitFamily classifies what a series' values measure. Series from different
// families cannot be compared in absolute terms.
type UnitFamily string

const (
	FamilyTime       UnitFamily = "time"
	FamilyMoves      UnitFamily = "moves"
	FamilyMultiBlind UnitFamily = "multiblind"
	FamilyRank       UnitFamily = "rank"
)

// Family returns the unit family for an (event, result type) combination.
// Rank-based result types override the event's native unit: a rank position
// is a rank no matter which event it comes from.
func Family(event string, resultType ResultType) UnitFamily {
	if resultType.IsRankType() {
		return FamilyRank
	}
	switch event {
	case "333fm":
		return FamilyMoves
	case "333mbf":
		return FamilyMultiBlind
	}
	return FamilyTime
}

// CompatReport is the result of checking the active series set.
type CompatReport struct {
	// Incompatible is true when more than one distinct unit family is
	// active, which makes absolute-value (raw) comparison meaningless.
	Incompatible bool `json:"incompatible"`
	// Families lists the distinct families present, sorted.
	Families []string `json:"families"`
	// PercentAllowed is false when any active series is moves, multi-blind,
	// or rank based: percent change is not meaningful for non-ratio-scale
	// units. Unit-delta mode is always allowed.
	PercentAllowed bool `json:"percent_allowed"`
}

// CheckCompat classifies the active series and reports which display modes
// remain meaningful. Pure function, no side effects.
func CheckCompat(active []*Series) CompatReport {
	seen := make(map[UnitFamily]bool)
	percentOK := true
	for _, s := range active {
		fam := Family(s.Event, s.ResultType)
		seen[fam] = true
		if fam != FamilyTime {
			percentOK = false
		}
	}

	families := make([]string, 0, len(seen))
	for fam := range seen {
		families = append(families, string(fam))
	}
	sort.Strings(families)

	return CompatReport{
		Incompatible:   len(seen) > 1,
		Families:       families,
		PercentAllowed: percentOK,
	}
}
