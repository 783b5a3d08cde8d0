// Package datefmt converts between the display form of a date (DD/MM/YYYY)
// and its storage form (YYYY-MM-DD).
package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder is the hint shown for empty date inputs.
const Placeholder = "JJ/MM/AAAA"

const (
	minYear = 1900
	maxYear = 2100
)

// IsValidDisplayDate reports whether s is a real calendar date written as
// DD/MM/YYYY with a year between 1900 and 2100.
func IsValidDisplayDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return false
	}
	day, err1 := digits(parts[0])
	month, err2 := digits(parts[1])
	year, err3 := digits(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if year < minYear || year > maxYear {
		return false
	}
	return day >= 1 && day <= DaysIn(year, time.Month(month))
}

// ToStorageForm converts DD/MM/YYYY to YYYY-MM-DD, zero padding day and
// month. It returns "" when s does not have three non-empty parts or when
// the day or month is not a number. The year is copied as written.
func ToStorageForm(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return ""
	}
	day, month, year := parts[0], parts[1], parts[2]
	if day == "" || month == "" || year == "" {
		return ""
	}
	d, err := number(day)
	if err != nil {
		return ""
	}
	m, err := number(month)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}

// ToDisplayForm converts YYYY-MM-DD to DD/MM/YYYY, zero padding day and
// month. An empty input gives ""; an input that is not three dash-separated
// parts with a numeric day and month is returned unchanged.
func ToDisplayForm(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	year, month, day := parts[0], parts[1], parts[2]
	d, err := number(day)
	if err != nil {
		return s
	}
	m, err := number(month)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d/%02d/%s", d, m, year)
}

// ParseDisplayDate reads a DD/MM/YYYY date leniently: one or two digit day
// and month are accepted and out-of-range values roll over the way
// time.Date normalizes them (32/01/2025 is 1 February 2025). The result is
// midnight in the local time zone.
func ParseDisplayDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	d, err1 := leadingInt(parts[0])
	m, err2 := leadingInt(parts[1])
	y, err3 := leadingInt(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), true
}

// DateKey formats t as YYYY-MM-DD. Keys sort chronologically as strings.
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// TodayKey is the DateKey of now in local time, the zone ParseDisplayDate
// uses, so it compares correctly against parsed dates.
func TodayKey(now time.Time) string {
	return DateKey(now.In(time.Local))
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Normalize returns the display form of a date stored in either form.
func Normalize(value string) string {
	if value == "" {
		return ""
	}
	if strings.Contains(value, "/") {
		return value
	}
	return ToDisplayForm(value)
}

// PickerValue returns the storage form of a date stored in either form.
func PickerValue(value string) string {
	if value == "" {
		return ""
	}
	if strings.Contains(value, "/") {
		return ToStorageForm(value)
	}
	return value
}

func digits(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// number parses a date part the way a loose numeric conversion would:
// surrounding spaces are ignored, anything else must be an integer.
func number(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// leadingInt parses the integer prefix of s, ignoring leading spaces and
// anything after the digits.
func leadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s[:end])
}
