package stats

import (
	"testing"
	"time"

	"github.com/roowus/graphisizer/internal/series"
)

func day(n int) time.Time {
	return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC)
}

func seriesOf(id, name string, points ...series.DataPoint) *series.Series {
	return &series.Series{
		WCAID:      id,
		PersonName: name,
		Event:      "333",
		ResultType: series.Single,
		Points:     points,
	}
}

func pt(d time.Time, v float64) series.DataPoint {
	return series.DataPoint{Date: d, Value: v}
}

func dnf(d time.Time, v float64) series.DataPoint {
	return series.DataPoint{Date: d, Value: v, IsDNF: true}
}

func TestCompareHeadToHead(t *testing.T) {
	a := seriesOf("A", "Alice",
		pt(day(1), 1000),
		pt(day(5), 900),
		pt(day(9), 950),
	)
	b := seriesOf("B", "Bob",
		pt(day(1), 1100),
		pt(day(5), 850),
		pt(day(20), 800), // no meeting: Alice absent
	)

	h := CompareHeadToHead([]*series.Series{a, b})
	if h == nil {
		t.Fatal("expected standings")
	}
	if h.Meetings != 2 {
		t.Fatalf("Meetings = %d, want 2", h.Meetings)
	}
	if len(h.Standings) != 2 {
		t.Fatalf("got %d standings, want 2", len(h.Standings))
	}

	alice, bob := h.Standings[0], h.Standings[1]
	if alice.WCAID != "A" || bob.WCAID != "B" {
		t.Fatalf("standings order: %+v", h.Standings)
	}
	// Day 1: Alice wins (1000 < 1100); day 5: Bob wins (850 < 900).
	if alice.Wins != 1 || bob.Wins != 1 {
		t.Errorf("wins = %d/%d, want 1/1", alice.Wins, bob.Wins)
	}
	if alice.Meetings != 2 || bob.Meetings != 2 {
		t.Errorf("meetings = %d/%d, want 2/2", alice.Meetings, bob.Meetings)
	}
	if alice.AvgPosition != 1.5 || bob.AvgPosition != 1.5 {
		t.Errorf("avg positions = %v/%v, want 1.5/1.5", alice.AvgPosition, bob.AvgPosition)
	}
}

func TestCompareHeadToHeadIgnoresDNFs(t *testing.T) {
	a := seriesOf("A", "Alice", pt(day(1), 1000), dnf(day(3), 1000))
	b := seriesOf("B", "Bob", dnf(day(1), 0), pt(day(3), 900))

	// Every shared day has a DNF on one side, so no meetings qualify.
	if h := CompareHeadToHead([]*series.Series{a, b}); h != nil {
		t.Fatalf("expected nil (no qualifying meetings), got %+v", h)
	}
}

func TestCompareHeadToHeadBestValuePerDay(t *testing.T) {
	// Multiple points per day (solves): the best value represents the day.
	a := seriesOf("A", "Alice", pt(day(1), 1000), pt(day(1), 800))
	b := seriesOf("B", "Bob", pt(day(1), 900))

	h := CompareHeadToHead([]*series.Series{a, b})
	if h == nil {
		t.Fatal("expected standings")
	}
	if h.Standings[0].Wins != 1 {
		t.Error("Alice's best solve (800) should win the day")
	}
}

func TestCompareHeadToHeadTooFewSeries(t *testing.T) {
	a := seriesOf("A", "Alice", pt(day(1), 1000))
	if h := CompareHeadToHead([]*series.Series{a}); h != nil {
		t.Fatal("single series must yield nil")
	}
	if h := CompareHeadToHead(nil); h != nil {
		t.Fatal("empty input must yield nil")
	}
}

func TestImprovementRate(t *testing.T) {
	s := seriesOf("A", "Alice",
		pt(day(1), 1000),
		pt(day(2), 900),  // improved
		pt(day(3), 950),  // regressed
		dnf(day(4), 950), // skipped
		pt(day(5), 800),  // improved vs 950
	)
	rate, ok := ImprovementRate(s)
	if !ok {
		t.Fatal("expected a rate")
	}
	if !almostEqual(rate, 2.0/3.0) {
		t.Errorf("rate = %v, want 2/3", rate)
	}
}

func TestImprovementRateTooFewPoints(t *testing.T) {
	s := seriesOf("A", "Alice", pt(day(1), 1000))
	if _, ok := ImprovementRate(s); ok {
		t.Fatal("one valid point must yield ok=false")
	}
}
