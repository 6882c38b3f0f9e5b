package parser

import "fmt"

const (
	minutesPerDay = 24 * 60

	// daysPerCycle is the length of the simplified 100-year calendar used by
	// DateDelta: 365-day years plus one leap day every fourth year.
	daysPerCycle = 100*365 + 100/4
)

// monthDays uses a fixed 28-day February; leap days are added per year instead.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ToMinutes converts a time token to minutes since midnight on a 12-hour clock.
// 12:xxam maps to the first hour of the day and 12:xxpm to noon.
func ToMinutes(t string) (int, error) {
	hour, minute, meridiem, ok := splitTime(t)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTimeToken, t)
	}

	switch meridiem {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 12 {
			hour += 12
		}
	}

	return hour*60 + minute, nil
}

// ToDays converts a bare M/D/YY date to a day count within its century.
func ToDays(d string) (int, error) {
	month, day, year, ok := parseDate(d)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrDateToken, d)
	}

	days := day + year*365 + year/4
	for _, n := range monthDays[:month-1] {
		days += n
	}
	return days, nil
}

// TimeDelta returns the minutes elapsed from t1 to t2. The result wraps across
// midnight and is never negative.
func TimeDelta(t1, t2 string) (int, error) {
	m1, err := ToMinutes(t1)
	if err != nil {
		return 0, err
	}
	m2, err := ToMinutes(t2)
	if err != nil {
		return 0, err
	}
	return mod(m2-m1, minutesPerDay), nil
}

// DateDelta returns the days elapsed from d1 to d2 under the simplified
// century calendar. The result wraps across the century boundary.
func DateDelta(d1, d2 string) (int, error) {
	n1, err := ToDays(d1)
	if err != nil {
		return 0, err
	}
	n2, err := ToDays(d2)
	if err != nil {
		return 0, err
	}
	return mod(n2-n1, daysPerCycle), nil
}

// mod is the floored modulus, matching the sign of m.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
