package stats

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ccollicutt/timelog/pkg/parser"
)

func rec(date string, minutes int, comment string) parser.TimeRecord {
	return parser.TimeRecord{Date: date, Minutes: minutes, Comment: comment}
}

func TestCompute(t *testing.T) {
	records := []parser.TimeRecord{
		rec("1/2/23", 480, "client work"),
		rec("1/3/23", 240, "follow up"),
		rec("1/5/23", 480, "release"),
	}

	s, err := Compute(records, 1260, "week.txt")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if s.Filename != "week.txt" {
		t.Errorf("Filename = %q, want %q", s.Filename, "week.txt")
	}
	if s.TotalMinutes != 1260 {
		t.Errorf("TotalMinutes = %d, want 1260", s.TotalMinutes)
	}
	if !reflect.DeepEqual(s.Dates, []string{"1/2/23", "1/3/23", "1/5/23"}) {
		t.Errorf("Dates = %v", s.Dates)
	}
	if s.WorkingDays() != 3 {
		t.Errorf("WorkingDays() = %d, want 3", s.WorkingDays())
	}
	if s.ElapsedDays != 3 {
		t.Errorf("ElapsedDays = %d, want 3", s.ElapsedDays)
	}
	if s.MeanMinutes != 420 {
		t.Errorf("MeanMinutes = %v, want 420", s.MeanMinutes)
	}
	if s.MedianMinutes != 480 {
		t.Errorf("MedianMinutes = %v, want 480", s.MedianMinutes)
	}
	if s.Longest != records[0] {
		t.Errorf("Longest = %+v, want first of the tied records %+v", s.Longest, records[0])
	}
	if s.Records != 3 {
		t.Errorf("Records = %d, want 3", s.Records)
	}
}

func TestCompute_Empty(t *testing.T) {
	s, err := Compute(nil, 0, "f.txt")
	if s != nil {
		t.Errorf("Compute() = %+v, want nil", s)
	}

	var se *StatsError
	if !errors.As(err, &se) {
		t.Fatalf("Compute() error = %v, want *StatsError", err)
	}
	if se.Kind != KindDivideByZero {
		t.Errorf("Kind = %q, want %q", se.Kind, KindDivideByZero)
	}
	if !errors.Is(err, ErrNoRecords) {
		t.Error("error does not wrap ErrNoRecords")
	}
}

func TestCompute_RepeatedDatesCountOnce(t *testing.T) {
	records := []parser.TimeRecord{
		rec("1/2/23", 60, "a"),
		rec("1/3/23", 60, "b"),
		rec("1/2/23", 90, "c"),
	}

	s, err := Compute(records, 300, "f.txt")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if s.WorkingDays() != 2 {
		t.Errorf("WorkingDays() = %d, want 2", s.WorkingDays())
	}
	if s.MeanMinutes != 150 {
		t.Errorf("MeanMinutes = %v, want 150", s.MeanMinutes)
	}
	if s.ElapsedDays != 0 {
		t.Errorf("ElapsedDays = %d, want 0", s.ElapsedDays)
	}
	if s.Longest.Comment != "c" {
		t.Errorf("Longest = %+v, want c", s.Longest)
	}
}

func TestCompute_Median(t *testing.T) {
	tests := []struct {
		name      string
		durations []int
		mode      MedianMode
		want      float64
		wantKind  ErrorKind
	}{
		{"single", []int{30}, MedianStandard, 30, ""},
		{"odd", []int{90, 10, 50}, MedianStandard, 50, ""},
		{"even", []int{40, 10, 30, 20}, MedianStandard, 25, ""},
		{"two", []int{10, 25}, MedianStandard, 17.5, ""},
		{"legacy odd", []int{90, 10, 50}, MedianLegacy, 50, ""},
		{"legacy even", []int{40, 10, 30, 20}, MedianLegacy, 35, ""},
		{"legacy two out of range", []int{10, 25}, MedianLegacy, 0, KindMedianIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []parser.TimeRecord
			total := 0
			for _, d := range tt.durations {
				records = append(records, rec("1/2/23", d, ""))
				total += d
			}

			s, err := Compute(records, total, "f.txt", WithMedianMode(tt.mode))
			if tt.wantKind != "" {
				var se *StatsError
				if !errors.As(err, &se) || se.Kind != tt.wantKind {
					t.Fatalf("Compute() error = %v, want kind %q", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if s.MedianMinutes != tt.want {
				t.Errorf("MedianMinutes = %v, want %v", s.MedianMinutes, tt.want)
			}
		})
	}
}

func TestCompute_InvalidDate(t *testing.T) {
	_, err := Compute([]parser.TimeRecord{rec("", 10, "")}, 10, "f.txt")
	var se *StatsError
	if !errors.As(err, &se) || se.Kind != KindInvalidDate {
		t.Errorf("Compute() error = %v, want kind %q", err, KindInvalidDate)
	}
}

func TestCompute_FromParser(t *testing.T) {
	result, err := parser.Parse([]string{
		"time log:",
		"1/2/23: 9:00am 5:00pm client work",
		"1/3/23: 9:00am 1:00pm - follow up",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	s, err := Compute(result.Records, result.TotalMinutes, "f.txt")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	// The open 1/3 group is not a record but its minutes are in the total.
	if s.MeanMinutes != 720 {
		t.Errorf("MeanMinutes = %v, want 720", s.MeanMinutes)
	}
	if s.ElapsedDays != 0 {
		t.Errorf("ElapsedDays = %d, want 0", s.ElapsedDays)
	}
}

func TestParseMedianMode(t *testing.T) {
	if m, err := ParseMedianMode(""); err != nil || m != MedianStandard {
		t.Errorf("ParseMedianMode(\"\") = %q, %v", m, err)
	}
	if m, err := ParseMedianMode("Legacy"); err != nil || m != MedianLegacy {
		t.Errorf("ParseMedianMode(\"Legacy\") = %q, %v", m, err)
	}
	if _, err := ParseMedianMode("mean"); err == nil {
		t.Error("ParseMedianMode(\"mean\") expected error")
	}
}
