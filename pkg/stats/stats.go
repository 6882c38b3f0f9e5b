// Package stats reduces parsed time records to summary statistics.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ccollicutt/timelog/pkg/parser"
)

// MedianMode selects how the median of an even number of records is computed.
type MedianMode string

const (
	// MedianStandard averages the two middle durations. This is the default.
	MedianStandard MedianMode = "standard"

	// MedianLegacy averages the durations at len/2 and len/2+1, the indexing
	// used by the first release. It fails with KindMedianIndex when len/2+1
	// is past the end.
	MedianLegacy MedianMode = "legacy"
)

// ParseMedianMode converts a configuration string into a MedianMode.
func ParseMedianMode(s string) (MedianMode, error) {
	switch m := MedianMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MedianStandard, nil
	case MedianStandard, MedianLegacy:
		return m, nil
	default:
		return "", fmt.Errorf("invalid median mode %q (must be %s or %s)", s, MedianStandard, MedianLegacy)
	}
}

// Stats summarizes a time log.
type Stats struct {
	// Filename labels the log the statistics were computed from.
	Filename string `json:"filename"`

	// TotalMinutes is every interval in the log, including an unemitted final group.
	TotalMinutes int `json:"total_minutes"`

	// Dates are the distinct record dates in order of first appearance.
	Dates []string `json:"dates"`

	// ElapsedDays is the calendar distance between the first and last record.
	ElapsedDays int `json:"elapsed_days"`

	// MeanMinutes is TotalMinutes divided by the number of working days.
	MeanMinutes float64 `json:"mean_minutes"`

	// MedianMinutes is the median record duration.
	MedianMinutes float64 `json:"median_minutes"`

	// Longest is the record with the largest duration; the first one wins ties.
	Longest parser.TimeRecord `json:"longest"`

	// Records is the number of records the statistics were computed from.
	Records int `json:"records"`
}

// WorkingDays returns the number of distinct record dates.
func (s *Stats) WorkingDays() int {
	return len(s.Dates)
}

// Option configures Compute.
type Option func(*options)

type options struct {
	median MedianMode
}

// WithMedianMode selects the median computation.
func WithMedianMode(m MedianMode) Option {
	return func(o *options) {
		if m != "" {
			o.median = m
		}
	}
}

// Compute derives statistics from records and the log's total minutes.
// It returns a *StatsError when records is empty.
func Compute(records []parser.TimeRecord, totalMinutes int, filename string, opts ...Option) (*Stats, error) {
	o := options{median: MedianStandard}
	for _, opt := range opts {
		opt(&o)
	}

	if len(records) == 0 {
		return nil, &StatsError{Kind: KindDivideByZero, Err: ErrNoRecords}
	}

	s := &Stats{
		Filename:     filename,
		TotalMinutes: totalMinutes,
		Dates:        distinctDates(records),
		Records:      len(records),
		Longest:      longest(records),
	}

	elapsed, err := parser.DateDelta(records[0].Date, records[len(records)-1].Date)
	if err != nil {
		return nil, &StatsError{Kind: KindInvalidDate, Err: err}
	}
	s.ElapsedDays = elapsed

	s.MeanMinutes = float64(totalMinutes) / float64(len(s.Dates))

	median, err := medianMinutes(records, o.median)
	if err != nil {
		return nil, err
	}
	s.MedianMinutes = median

	return s, nil
}

func distinctDates(records []parser.TimeRecord) []string {
	seen := make(map[string]bool, len(records))
	dates := make([]string, 0, len(records))
	for _, r := range records {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	return dates
}

func longest(records []parser.TimeRecord) parser.TimeRecord {
	best := records[0]
	for _, r := range records[1:] {
		if r.Minutes > best.Minutes {
			best = r
		}
	}
	return best
}

func medianMinutes(records []parser.TimeRecord, mode MedianMode) (float64, error) {
	durations := make([]int, len(records))
	for i, r := range records {
		durations[i] = r.Minutes
	}
	sort.Ints(durations)

	n := len(durations)
	mid := n / 2
	if n%2 == 1 {
		return float64(durations[mid]), nil
	}

	if mode == MedianLegacy {
		if mid+1 >= n {
			return 0, &StatsError{
				Kind: KindMedianIndex,
				Err:  fmt.Errorf("index %d out of range for %d records", mid+1, n),
			}
		}
		return float64(durations[mid]+durations[mid+1]) / 2, nil
	}

	return float64(durations[mid-1]+durations[mid]) / 2, nil
}
