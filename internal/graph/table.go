package graph

import (
	"sort"
	"time"

	"github.com/roowus/graphisizer/internal/format"
	"github.com/roowus/graphisizer/internal/series"
)

// Row is one line of the combined results table: a data point joined with
// its graph's identity plus change-from-previous columns. Plot carries the
// view-transformed value (nil where the transform is undefined, e.g. a DNF
// in raw mode or the first point in a delta mode).
type Row struct {
	GraphID    int               `json:"graph_id"`
	WCAID      string            `json:"wca_id"`
	PersonName string            `json:"person_name"`
	Event      string            `json:"event"`
	ResultType series.ResultType `json:"result_type"`
	Color      string            `json:"color"`

	Date        time.Time `json:"date"`
	Competition string    `json:"competition"`
	Round       string    `json:"round"`
	Value       float64   `json:"value"`
	Display     string    `json:"display"`
	IsDNF       bool      `json:"is_dnf"`

	Change        *float64 `json:"change,omitempty"`
	PercentChange *float64 `json:"percent_change,omitempty"`
	Plot          *float64 `json:"plot,omitempty"`
}

// Table returns the combined, globally date-sorted rows for all ready
// graphs, transformed for the given view mode. Change columns compare each
// point with its immediate predecessor in the same graph; a DNF on either
// side leaves them unset. Percent change is only computed for time-family
// series, positive meaning improvement.
func (m *Manager) Table(view ViewMode) []Row {
	m.mu.Lock()
	ready := make([]*Graph, 0, len(m.order))
	for _, id := range m.order {
		if g := m.graphs[id]; g.Status == StatusReady {
			snapshot := *g
			ready = append(ready, &snapshot)
		}
	}
	m.mu.Unlock()

	var rows []Row
	for _, g := range ready {
		fam := series.Family(g.Spec.Event, g.Spec.ResultType)
		for i, p := range g.Points {
			row := Row{
				GraphID:     g.ID,
				WCAID:       g.Spec.WCAID,
				PersonName:  g.PersonName,
				Event:       g.Spec.Event,
				ResultType:  g.Spec.ResultType,
				Color:       g.Color,
				Date:        p.Date,
				Competition: p.CompetitionName,
				Round:       p.Round,
				Value:       p.Value,
				IsDNF:       p.IsDNF,
			}
			if p.IsDNF {
				row.Display = "DNF"
			} else {
				row.Display = format.Value(p.Value, g.Spec.Event, g.Spec.ResultType)
			}

			if i > 0 && !p.IsDNF {
				prev := g.Points[i-1]
				if !prev.IsDNF {
					change := p.Value - prev.Value
					row.Change = &change
					if fam == series.FamilyTime && prev.Value > 0 {
						pct := (prev.Value - p.Value) / prev.Value * 100
						row.PercentChange = &pct
					}
				}
			}

			switch view {
			case ViewUnit:
				row.Plot = row.Change
			case ViewPercent:
				row.Plot = row.PercentChange
			default:
				if !p.IsDNF {
					v := p.Value
					row.Plot = &v
				}
			}

			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}
