// Package format renders encoded WCA measurements as display strings.
// Every function is pure and always returns a string; there are no failure
// modes.
package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/roowus/graphisizer/internal/series"
)

// Time renders a centisecond measurement. Non-positive values are DNFs.
// Values under a minute render as "SS.ss"s; longer values as M:SS.ss with
// zero-padded seconds.
func Time(centis float64) string {
	if centis <= 0 {
		return "DNF"
	}
	seconds := centis / 100
	if seconds < 60 {
		return fmt.Sprintf("%.2fs", seconds)
	}
	minutes := int(seconds) / 60
	return fmt.Sprintf("%d:%05.2f", minutes, seconds-float64(minutes*60))
}

// Moves renders a fewest-moves measurement as a plain move count.
func Moves(v float64) string {
	if v <= 0 {
		return "DNF"
	}
	return strconv.Itoa(int(math.Round(v)))
}

// MultiBlind decodes a 9-digit packed multi-blind value DDTTTTTMM:
// DD encodes 99−solved, TTTTT the elapsed time in whole seconds, MM the
// count of missed cubes (attempted = solved + missed). Rendered as
// "solved/attempted time".
func MultiBlind(v float64) string {
	if v <= 0 {
		return "DNF"
	}
	n := int64(v)
	dd := n / 1e7
	secs := (n / 100) % 100000
	missed := n % 100

	solved := 99 - dd
	attempted := solved + missed
	return fmt.Sprintf("%d/%d %s", solved, attempted, duration(secs))
}

// duration renders whole seconds as H:MM:SS, M:SS, or Ns by magnitude.
func duration(secs int64) string {
	switch {
	case secs >= 3600:
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	case secs >= 60:
		return fmt.Sprintf("%d:%02d", secs/60, secs%60)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Value renders a measurement for display, branching on result type and
// event. Rank-based result types are plain rounded integers; otherwise the
// event decides between multi-blind decoding, move counts, and times.
func Value(v float64, event string, resultType series.ResultType) string {
	if resultType.IsRankType() {
		return strconv.Itoa(int(math.Round(v)))
	}
	switch event {
	case "333mbf":
		return MultiBlind(v)
	case "333fm":
		return Moves(v)
	}
	return Time(v)
}
