package stats

import (
	"sort"
	"time"

	"github.com/roowus/graphisizer/internal/series"
)

// Standing is one competitor's head-to-head record across all meetings.
type Standing struct {
	WCAID       string  `json:"wca_id"`
	PersonName  string  `json:"person_name"`
	Wins        int     `json:"wins"`
	Meetings    int     `json:"meetings"`
	AvgPosition float64 `json:"avg_position"`
}

// HeadToHead tallies wins and finishing positions across all dates where two
// or more of the given series have valid points.
type HeadToHead struct {
	Meetings  int        `json:"meetings"`
	Standings []Standing `json:"standings"`
}

// CompareHeadToHead groups all series' valid points by calendar day and, for
// each day attended by at least two competitors, ranks them by value. Lower
// is better for every unit family: a faster time, a lower move count, and a
// lower rank position all win. When a competitor has several points on one
// day (the solves result type), their best value represents them.
func CompareHeadToHead(list []*series.Series) *HeadToHead {
	if len(list) < 2 {
		return nil
	}

	// day -> series index -> best value that day
	meetings := make(map[time.Time]map[int]float64)
	for i, s := range list {
		for _, p := range s.Points {
			if p.IsDNF || p.Value <= 0 {
				continue
			}
			day := p.Date.Truncate(24 * time.Hour)
			byID := meetings[day]
			if byID == nil {
				byID = make(map[int]float64)
				meetings[day] = byID
			}
			if best, ok := byID[i]; !ok || p.Value < best {
				byID[i] = p.Value
			}
		}
	}

	wins := make([]int, len(list))
	met := make([]int, len(list))
	posSum := make([]int, len(list))
	total := 0

	// Deterministic iteration over meeting days.
	days := make([]time.Time, 0, len(meetings))
	for day := range meetings {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for _, day := range days {
		byID := meetings[day]
		if len(byID) < 2 {
			continue
		}
		total++

		type entry struct {
			idx   int
			value float64
		}
		ranked := make([]entry, 0, len(byID))
		for idx, v := range byID {
			ranked = append(ranked, entry{idx, v})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].value != ranked[j].value {
				return ranked[i].value < ranked[j].value
			}
			return ranked[i].idx < ranked[j].idx
		})

		wins[ranked[0].idx]++
		for pos, e := range ranked {
			met[e.idx]++
			posSum[e.idx] += pos + 1
		}
	}

	if total == 0 {
		return nil
	}

	h := &HeadToHead{Meetings: total}
	for i, s := range list {
		st := Standing{
			WCAID:      s.WCAID,
			PersonName: s.PersonName,
			Wins:       wins[i],
			Meetings:   met[i],
		}
		if met[i] > 0 {
			st.AvgPosition = float64(posSum[i]) / float64(met[i])
		}
		h.Standings = append(h.Standings, st)
	}
	return h
}

// ImprovementRate is the fraction of consecutive valid-to-valid transitions
// in which the value moved in the better (lower) direction. ok is false with
// fewer than two valid points.
func ImprovementRate(s *series.Series) (float64, bool) {
	values := s.ValidValues()
	if len(values) < 2 {
		return 0, false
	}
	improved := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			improved++
		}
	}
	return float64(improved) / float64(len(values)-1), true
}
