package parser

import (
	"strconv"
	"strings"
)

// Separator is the literal token placed between clock-in and clock-out times.
const Separator = "-"

// IsDateToken reports whether tok is a date marker of the form M/D/YY:.
// Malformed numbers yield false.
func IsDateToken(tok string) bool {
	_, _, _, ok := splitDate(tok)
	return ok
}

// IsTimeToken reports whether tok is a 12-hour clock time of the form H:MMam or H:MMpm.
func IsTimeToken(tok string) bool {
	_, _, _, ok := splitTime(tok)
	return ok
}

// splitDate validates a date token (with its trailing colon) and returns
// month, day and two-digit year.
func splitDate(tok string) (month, day, year int, ok bool) {
	if tok == "" || !isDigit(tok[0]) || tok[0] == '0' {
		return 0, 0, 0, false
	}
	if !strings.Contains(tok, "/") || !strings.HasSuffix(tok, ":") {
		return 0, 0, 0, false
	}
	return parseDate(strings.TrimSuffix(tok, ":"))
}

// parseDate parses a bare M/D/YY date and checks its ranges.
func parseDate(d string) (month, day, year int, ok bool) {
	fields := strings.Split(d, "/")
	if len(fields) != 3 {
		return 0, 0, 0, false
	}

	nums := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}

	month, day, year = nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 0 || year > 99 {
		return 0, 0, 0, false
	}
	return month, day, year, true
}

// splitTime validates a time token and returns hour, minute and meridiem.
func splitTime(tok string) (hour, minute int, meridiem string, ok bool) {
	if tok == "" || !isDigit(tok[0]) || tok[0] == '0' || len(tok) > 7 {
		return 0, 0, "", false
	}
	if !strings.HasSuffix(tok, "am") && !strings.HasSuffix(tok, "pm") {
		return 0, 0, "", false
	}

	h, rest, found := strings.Cut(tok, ":")
	if !found || len(rest) != 4 {
		return 0, 0, "", false
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, "", false
	}

	mm := rest[:2]
	if !isDigit(mm[0]) || !isDigit(mm[1]) {
		return 0, 0, "", false
	}
	minute, _ = strconv.Atoi(mm)
	if minute > 59 {
		return 0, 0, "", false
	}

	return hour, minute, rest[2:], true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
