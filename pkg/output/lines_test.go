package output

import (
	"reflect"
	"testing"

	"github.com/ccollicutt/timelog/pkg/parser"
	"github.com/ccollicutt/timelog/pkg/stats"
)

func createTestStats() *stats.Stats {
	return &stats.Stats{
		Filename:      "week.txt",
		TotalMinutes:  725,
		Dates:         []string{"1/2/23", "1/3/23"},
		ElapsedDays:   1,
		MeanMinutes:   362.5,
		MedianMinutes: 362.5,
		Longest:       parser.TimeRecord{Date: "1/2/23", Minutes: 485, Comment: "client work"},
		Records:       2,
	}
}

func TestLines(t *testing.T) {
	got := Lines(createTestStats())
	want := []string{
		"Statistics for week.txt:",
		"------------------------",
		"Total time spent: 12 hours, 5 minutes",
		"Total days worked: 2",
		"Total days elapsed: 1\n",
		"Mean time spent per working day: 6.00 hours, 2.50 minutes",
		"Median time spent: 6.00 hours, 2.50 minutes\n",
		"Longest working session:",
		"1/2/23: client work",
		"Time spent: 8 hours, 5 minutes\n",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() =\n%q\nwant\n%q", got, want)
	}
}

func TestLines_RuleMatchesHeader(t *testing.T) {
	s := createTestStats()
	s.Filename = "a-much-longer-name.txt"
	got := Lines(s)
	if len(got[1]) != len(got[0]) {
		t.Errorf("rule length = %d, header length = %d", len(got[1]), len(got[0]))
	}
}

func TestLines_Deterministic(t *testing.T) {
	s := createTestStats()
	first := Lines(s)
	for i := 0; i < 10; i++ {
		if got := Lines(s); !reflect.DeepEqual(got, first) {
			t.Fatalf("Lines() changed between calls: %q vs %q", got, first)
		}
	}
}
