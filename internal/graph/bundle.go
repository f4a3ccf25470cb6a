package graph

import (
	"github.com/roowus/graphisizer/internal/series"
	"github.com/roowus/graphisizer/internal/stats"
)

// SeriesStats packages one ready graph's statistics.
type SeriesStats struct {
	GraphID         int                `json:"graph_id"`
	WCAID           string             `json:"wca_id"`
	PersonName      string             `json:"person_name"`
	Descriptive     *stats.Descriptive `json:"descriptive,omitempty"`
	ImprovementRate *float64           `json:"improvement_rate,omitempty"`
}

// StatsBundle is the aggregate statistics payload for the active graph set:
// per-series descriptive stats, the unit-compatibility report, head-to-head
// standings, and pairwise correlations.
type StatsBundle struct {
	Series        []SeriesStats           `json:"series"`
	Compatibility series.CompatReport     `json:"compatibility"`
	HeadToHead    *stats.HeadToHead       `json:"head_to_head,omitempty"`
	Correlations  []stats.PairCorrelation `json:"correlations,omitempty"`
}

// Stats assembles the bundle over all ready graphs. Statistics with too few
// inputs are simply absent; nothing here can fail.
func (m *Manager) Stats() StatsBundle {
	m.mu.Lock()
	ready := make([]*Graph, 0, len(m.order))
	for _, id := range m.order {
		if g := m.graphs[id]; g.Status == StatusReady {
			snapshot := *g
			ready = append(ready, &snapshot)
		}
	}
	m.mu.Unlock()

	bundle := StatsBundle{}
	seriesList := make([]*series.Series, 0, len(ready))
	for _, g := range ready {
		s := g.Series()
		seriesList = append(seriesList, s)

		ss := SeriesStats{
			GraphID:    g.ID,
			WCAID:      g.Spec.WCAID,
			PersonName: g.PersonName,
		}
		if d, ok := stats.Describe(s.ValidValues()); ok {
			ss.Descriptive = &d
		}
		if rate, ok := stats.ImprovementRate(s); ok {
			ss.ImprovementRate = &rate
		}
		bundle.Series = append(bundle.Series, ss)
	}

	bundle.Compatibility = series.CheckCompat(seriesList)
	bundle.HeadToHead = stats.CompareHeadToHead(seriesList)
	if len(seriesList) >= 2 {
		bundle.Correlations = stats.CorrelateAll(seriesList)
	}
	return bundle
}
