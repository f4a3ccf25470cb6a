// Package series defines the canonical data shapes fetched from the WCA
// results API and turns raw per-competition result records into flat,
// chronologically ordered series of plottable points.
//
// The fetch client decodes upstream JSON directly into these structs; the
// normalizer, statistics engine, and presentation layers only ever see these
// types, never provider-specific shapes.
package series

import "time"

// CompetitorRecord is one competitor's full record as served by the WCA API:
// identity, attended competitions, and per-competition per-event results.
// Immutable once fetched.
type CompetitorRecord struct {
	WCAID          string                            `json:"wcaId"`
	Name           string                            `json:"name"`
	CompetitionIDs []string                          `json:"competitionIds"`
	Results        map[string]map[string][]RawResult `json:"results"`
	// Rank holds ranking history keyed by category ("singles"/"averages"),
	// then event ID. Entries are positionally aligned with round results.
	Rank map[string]map[string][]RankEntry `json:"rank"`
}

// CompetitionRecord identifies one competition. The start date is
// authoritative for chronological placement.
type CompetitionRecord struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Date CompetitionDate `json:"date"`
}

type CompetitionDate struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StartDate parses the competition's start date. Records with unparseable
// dates are skipped by the normalizer.
func (c *CompetitionRecord) StartDate() (time.Time, error) {
	return time.Parse("2006-01-02", c.Date.From)
}

// RawResult is one round's outcome for one competitor at one event.
// Measurements are encoded integers: centiseconds for timed events, move
// count for fewest-moves, a 9-digit packed value for multi-blind. A
// non-positive measurement signals a failed attempt (DNF).
//
// Individual attempts appear under different upstream keys depending on the
// event and API era; Attempts applies the documented fallback order.
type RawResult struct {
	Round    string `json:"round"`
	Position int    `json:"position"`
	Best     int    `json:"best"`
	Average  int    `json:"average"`

	Solves []int `json:"solves"`
	Trips  []int `json:"trips"`
	Solve1 *int  `json:"solve1"`
	Solve2 *int  `json:"solve2"`
	Solve3 *int  `json:"solve3"`
	Solve4 *int  `json:"solve4"`
	Solve5 *int  `json:"solve5"`
}

// Attempts returns the round's individual attempt values, trying in order:
// the solves list, the trips list (multi-blind), then the five discrete
// attempt fields. The fallback order is fixed; callers must not probe the
// raw fields themselves.
func (r *RawResult) Attempts() []int {
	if len(r.Solves) > 0 {
		return r.Solves
	}
	if len(r.Trips) > 0 {
		return r.Trips
	}
	var out []int
	for _, s := range []*int{r.Solve1, r.Solve2, r.Solve3, r.Solve4, r.Solve5} {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// RankEntry is one ranking-history observation. Absent fields stay nil and
// fall back to the round's competition position.
type RankEntry struct {
	World     *int `json:"world"`
	Continent *int `json:"continent"`
	Country   *int `json:"country"`
}

// DataPoint is one plottable observation derived from a RawResult (or from a
// single attempt, for the solves/worst result types). Value is always a
// plottable number; for DNF points it holds the estimated value after the
// normalizer's estimation pass.
type DataPoint struct {
	Date            time.Time `json:"date"`
	CompetitionName string    `json:"competition_name"`
	Round           string    `json:"round"`
	Value           float64   `json:"value"`
	IsDNF           bool      `json:"is_dnf"`
}

// Series is an ordered-by-date sequence of points for one
// (competitor, event, result type) selection.
type Series struct {
	WCAID      string      `json:"wca_id"`
	PersonName string      `json:"person_name"`
	Event      string      `json:"event"`
	ResultType ResultType  `json:"result_type"`
	Points     []DataPoint `json:"points"`
}

// ValidValues returns the values of all successful points, in series order.
// DNF points and non-positive values are excluded; this is the input set for
// every statistic.
func (s *Series) ValidValues() []float64 {
	out := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		if !p.IsDNF && p.Value > 0 {
			out = append(out, p.Value)
		}
	}
	return out
}
