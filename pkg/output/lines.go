package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/ccollicutt/timelog/pkg/stats"
)

// Lines renders statistics as ordered display lines. Lines that close a
// section end in a newline so that joining them with "\n" leaves a blank
// line between sections.
func Lines(s *stats.Stats) []string {
	out := []string{
		fmt.Sprintf("Statistics for %s:", s.Filename),
		strings.Repeat("-", len(s.Filename)+16),
	}

	h, m := divmod(s.TotalMinutes)
	out = append(out,
		fmt.Sprintf("Total time spent: %d hours, %d minutes", h, m),
		fmt.Sprintf("Total days worked: %d", s.WorkingDays()),
		fmt.Sprintf("Total days elapsed: %d\n", s.ElapsedDays),
	)

	fh, fm := divmodFloat(s.MeanMinutes)
	out = append(out, fmt.Sprintf("Mean time spent per working day: %.2f hours, %.2f minutes", fh, fm))
	fh, fm = divmodFloat(s.MedianMinutes)
	out = append(out, fmt.Sprintf("Median time spent: %.2f hours, %.2f minutes\n", fh, fm))

	h, m = divmod(s.Longest.Minutes)
	out = append(out,
		"Longest working session:",
		fmt.Sprintf("%s: %s", s.Longest.Date, s.Longest.Comment),
		fmt.Sprintf("Time spent: %d hours, %d minutes\n", h, m),
	)

	return out
}

func divmod(minutes int) (int, int) {
	return minutes / 60, minutes % 60
}

func divmodFloat(minutes float64) (float64, float64) {
	return math.Floor(minutes / 60), math.Mod(minutes, 60)
}
