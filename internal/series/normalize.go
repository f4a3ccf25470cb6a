package series

import (
	"fmt"
	"sort"
)

// rankCategory selects which ranking-history table feeds the wr/cr/nr result
// types. Single rankings are what competitors care about when tracking
// progression, so the singles table is used throughout.
const rankCategory = "singles"

// Build produces the chronologically sorted data-point sequence for one
// (competitor, event, result type) selection.
//
// Competitions missing from comps, competitions with no results for the
// event, and competitions with unparseable dates are skipped silently — they
// are simply absent from the output. After sorting, the DNF estimation pass
// overwrites every DNF point's value with the last preceding valid value so
// failed attempts plot at the competitor's prior level instead of zero.
func Build(person *CompetitorRecord, comps map[string]*CompetitionRecord, event string, resultType ResultType) ([]DataPoint, error) {
	var points []DataPoint

	for _, compID := range person.CompetitionIDs {
		comp, ok := comps[compID]
		if !ok {
			continue
		}
		results := person.Results[compID][event]
		if len(results) == 0 {
			continue
		}
		date, err := comp.StartDate()
		if err != nil {
			continue
		}

		add := func(round string, value float64, isDNF bool) {
			v := value
			if isDNF {
				v = 0 // placeholder, replaced by the estimation pass
			}
			points = append(points, DataPoint{
				Date:            date,
				CompetitionName: comp.Name,
				Round:           round,
				Value:           v,
				IsDNF:           isDNF,
			})
		}

		switch resultType {
		case Single:
			for _, r := range results {
				add(r.Round, float64(r.Best), r.Best <= 0)
			}

		case Average:
			for _, r := range results {
				add(r.Round, float64(r.Average), r.Average <= 0)
			}

		case Rank:
			for _, r := range results {
				add(r.Round, float64(r.Position), false)
			}

		case WorldRank, ContinentalRank, NationalRank:
			history := person.Rank[rankCategory][event]
			if len(history) == 0 {
				// No ranking history for this event: fall back to the
				// round's competition position.
				for _, r := range results {
					add(r.Round, float64(r.Position), false)
				}
				break
			}
			// Positional join: history entries are consumed in the same
			// order as the round results. Results beyond the history length
			// are dropped.
			idx := 0
			for _, r := range results {
				if idx >= len(history) {
					break
				}
				value := float64(r.Position)
				if v := history[idx].rankFor(resultType); v != nil {
					value = float64(*v)
				}
				add(r.Round, value, false)
				idx++
			}

		case Solves:
			for _, r := range results {
				for _, solve := range r.Attempts() {
					add(r.Round, float64(solve), solve <= 0)
				}
			}

		case Worst:
			for _, r := range results {
				worst := 0
				for _, solve := range r.Attempts() {
					if solve > 0 && solve > worst {
						worst = solve
					}
				}
				if worst > 0 {
					add(r.Round, float64(worst), false)
				}
			}

		default:
			return nil, fmt.Errorf("unknown result type %q", resultType)
		}
	}

	sortByDate(points)
	estimateDNFs(points)
	return points, nil
}

// rankFor picks the ranking field matching the result type, nil if absent.
func (e *RankEntry) rankFor(t ResultType) *int {
	switch t {
	case WorldRank:
		return e.World
	case ContinentalRank:
		return e.Continent
	case NationalRank:
		return e.Country
	}
	return nil
}

// sortByDate orders points date-ascending. The sort is stable so rounds from
// the same competition keep their original order, which keeps repeated runs
// byte-for-byte identical.
func sortByDate(points []DataPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
}

// estimateDNFs walks the sorted series and replaces every DNF placeholder
// with the last valid value seen so far. A series that starts with DNFs
// holds at 0 until the first valid point. This is a smoothing choice for
// visual parity, not a data correction.
func estimateDNFs(points []DataPoint) {
	lastValid := 0.0
	for i := range points {
		if points[i].IsDNF {
			points[i].Value = lastValid
		} else {
			lastValid = points[i].Value
		}
	}
}
