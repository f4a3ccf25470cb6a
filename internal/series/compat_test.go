package series

import (
	"reflect"
	"testing"
)

func TestFamily(t *testing.T) {
	cases := []struct {
		event      string
		resultType ResultType
		want       UnitFamily
	}{
		{"333", Single, FamilyTime},
		{"555bf", Average, FamilyTime},
		{"333fm", Single, FamilyMoves},
		{"333mbf", Single, FamilyMultiBlind},
		{"333", WorldRank, FamilyRank},
		{"333fm", Rank, FamilyRank},
		{"333mbf", NationalRank, FamilyRank},
	}
	for _, c := range cases {
		if got := Family(c.event, c.resultType); got != c.want {
			t.Errorf("Family(%q, %q) = %q, want %q", c.event, c.resultType, got, c.want)
		}
	}
}

func TestCheckCompat(t *testing.T) {
	mk := func(event string, rt ResultType) *Series {
		return &Series{Event: event, ResultType: rt}
	}

	t.Run("two timed series are compatible", func(t *testing.T) {
		report := CheckCompat([]*Series{mk("333", Single), mk("444", Average)})
		if report.Incompatible {
			t.Error("two timed series reported incompatible")
		}
		if !report.PercentAllowed {
			t.Error("percent should be allowed for pure time series")
		}
		if !reflect.DeepEqual(report.Families, []string{"time"}) {
			t.Errorf("Families = %v, want [time]", report.Families)
		}
	})

	t.Run("fmc with time is incompatible", func(t *testing.T) {
		report := CheckCompat([]*Series{mk("333", Single), mk("333fm", Single)})
		if !report.Incompatible {
			t.Error("mixed moves/time not reported incompatible")
		}
		if report.PercentAllowed {
			t.Error("percent must be blocked when a moves series is active")
		}
		if !reflect.DeepEqual(report.Families, []string{"moves", "time"}) {
			t.Errorf("Families = %v, want sorted [moves time]", report.Families)
		}
	})

	t.Run("rank alone blocks percent but is compatible", func(t *testing.T) {
		report := CheckCompat([]*Series{mk("333", WorldRank), mk("222", NationalRank)})
		if report.Incompatible {
			t.Error("two rank series reported incompatible")
		}
		if report.PercentAllowed {
			t.Error("percent must be blocked for rank series")
		}
	})

	t.Run("empty set", func(t *testing.T) {
		report := CheckCompat(nil)
		if report.Incompatible {
			t.Error("empty set reported incompatible")
		}
		if !report.PercentAllowed {
			t.Error("empty set should allow percent")
		}
	})
}
