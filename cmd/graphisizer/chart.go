package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/roowus/graphisizer/internal/graph"
)

// dnfStyle renders points only, no connecting line. Estimated DNF values get
// hollow-looking dots so real results stay visually distinct.
func dnfStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col.WithAlpha(140),
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotWidth:    3,
		DotColor:    col,
	}
}

// renderChart draws all ready graphs as time series and writes a PNG. In the
// delta views only the transformed values plot; in raw view estimated DNF
// values appear as a separate dotted overlay per graph.
func renderChart(manager *graph.Manager, view graph.ViewMode, w io.Writer) error {
	rows := manager.Table(view)

	type bucket struct {
		name  string
		color drawing.Color
		times []time.Time
		ys    []float64

		dnfTimes []time.Time
		dnfYs    []float64
	}
	buckets := make(map[int]*bucket)
	var order []int

	for _, row := range rows {
		b := buckets[row.GraphID]
		if b == nil {
			name := row.PersonName
			if name == "" {
				name = row.WCAID
			}
			b = &bucket{
				name:  fmt.Sprintf("%s %s %s", name, row.Event, row.ResultType),
				color: drawing.ColorFromHex(strings.TrimPrefix(row.Color, "#")),
			}
			buckets[row.GraphID] = b
			order = append(order, row.GraphID)
		}
		if row.Plot != nil {
			b.times = append(b.times, row.Date)
			b.ys = append(b.ys, *row.Plot)
		} else if view == graph.ViewRaw && row.IsDNF && row.Value > 0 {
			b.dnfTimes = append(b.dnfTimes, row.Date)
			b.dnfYs = append(b.dnfYs, row.Value)
		}
	}

	var seriesList []chart.Series
	for _, id := range order {
		b := buckets[id]
		if len(b.times) >= 2 {
			seriesList = append(seriesList, chart.TimeSeries{
				Name:    b.name,
				XValues: b.times,
				YValues: b.ys,
				Style:   lineStyle(b.color),
			})
		}
		if len(b.dnfTimes) > 0 {
			seriesList = append(seriesList, chart.TimeSeries{
				Name:    b.name + " (DNF est.)",
				XValues: b.dnfTimes,
				YValues: b.dnfYs,
				Style:   dnfStyle(b.color),
			})
		}
	}
	if len(seriesList) == 0 {
		return errors.New("not enough data points to chart")
	}

	ch := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  chart.XAxis{Name: "competition date"},
		YAxis:  chart.YAxis{Name: yAxisName(view)},
		Series: seriesList,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

func yAxisName(view graph.ViewMode) string {
	switch view {
	case graph.ViewUnit:
		return "change from previous"
	case graph.ViewPercent:
		return "percent improvement"
	default:
		return "value"
	}
}
