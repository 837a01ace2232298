package dateinput

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloudeng.io/datetime"
)

// ErrInvalidDate is returned by ParseValue and ParseBound for strings that do
// not name a calendar date.
var ErrInvalidDate = errors.New("dateinput: invalid date")

// maxYear keeps years inside the 16 bits CalendarDate stores them in.
const maxYear = 9999

// ParseValue parses a month-day-year value. Any run of non-digit characters
// separates the parts, so "6/5/1990" and "06-05-1990" are equivalent. The day
// must exist in the given month and year.
func ParseValue(value string) (datetime.CalendarDate, error) {
	parts := splitDateParts(value)
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return calendarDate(value, parts[2], parts[0], parts[1])
}

// ParseBound parses a bound value. In addition to month-day-year it accepts
// year-first ISO dates (2006-01-02).
func ParseBound(value string) (datetime.CalendarDate, error) {
	parts := splitDateParts(value)
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	if len(parts[0]) == 4 {
		return calendarDate(value, parts[0], parts[1], parts[2])
	}
	return calendarDate(value, parts[2], parts[0], parts[1])
}

// ValidValue reports whether value parses with ParseValue.
func ValidValue(value string) bool {
	_, err := ParseValue(value)
	return err == nil
}

// FormatDate renders d as MM-DD-YYYY.
func FormatDate(d datetime.CalendarDate) string {
	return fmt.Sprintf("%02d-%02d-%04d", int(d.Month()), d.Day(), d.Year())
}

// CompareDates orders two calendar dates chronologically. CalendarDate packs
// year, month and day from the high bits down, so the raw values sort.
func CompareDates(a, b datetime.CalendarDate) int {
	return cmp.Compare(uint32(a), uint32(b))
}

// IsBefore reports whether value is strictly before bound. Either side failing
// to parse makes the comparison false.
func IsBefore(value, bound string) bool {
	c, ok := compareValueToBound(value, bound)
	return ok && c < 0
}

// IsAfter reports whether value is strictly after bound. Either side failing
// to parse makes the comparison false.
func IsAfter(value, bound string) bool {
	c, ok := compareValueToBound(value, bound)
	return ok && c > 0
}

func compareValueToBound(value, bound string) (int, bool) {
	v, err := ParseValue(value)
	if err != nil {
		return 0, false
	}
	b, err := ParseBound(bound)
	if err != nil {
		return 0, false
	}
	return CompareDates(v, b), true
}

func calendarDate(raw, yearText, monthText, dayText string) (datetime.CalendarDate, error) {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: year: %v", ErrInvalidDate, raw, err)
	}
	if year > maxYear {
		return 0, fmt.Errorf("%w: %q: year %d out of range", ErrInvalidDate, raw, year)
	}
	month, err := datetime.ParseNumericMonth(monthText)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDate, raw, err)
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: day: %v", ErrInvalidDate, raw, err)
	}
	if day < 1 || day > int(datetime.DaysInMonth(year, month)) {
		return 0, fmt.Errorf("%w: %q: day %d out of range", ErrInvalidDate, raw, day)
	}
	return datetime.NewCalendarDate(year, month, day), nil
}

func splitDateParts(value string) []string {
	return strings.FieldsFunc(strings.TrimSpace(value), func(r rune) bool {
		return r < '0' || r > '9'
	})
}
