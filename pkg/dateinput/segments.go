package dateinput

import (
	"strings"
	"unicode/utf8"
)

// Segment identifies one of the three sub-fields. The numeric order is the
// focus order and the order of the canonical value.
type Segment int

const (
	SegmentMonth Segment = iota
	SegmentDay
	SegmentYear
)

// SegmentOrder lists the segments in focus order.
var SegmentOrder = []Segment{SegmentMonth, SegmentDay, SegmentYear}

func (s Segment) String() string {
	switch s {
	case SegmentMonth:
		return "month"
	case SegmentDay:
		return "day"
	case SegmentYear:
		return "year"
	default:
		return "unknown"
	}
}

// MaxLength is the required length of the segment.
func (s Segment) MaxLength() int {
	if s == SegmentYear {
		return 4
	}
	return 2
}

// Placeholder is the hint shown in an empty input.
func (s Segment) Placeholder() string {
	switch s {
	case SegmentMonth:
		return "MM"
	case SegmentDay:
		return "DD"
	case SegmentYear:
		return "YYYY"
	default:
		return ""
	}
}

func (s Segment) valid() bool {
	return s >= SegmentMonth && s <= SegmentYear
}

// ParseSegment maps a segment name ("day", "month", "year") to its Segment.
func ParseSegment(name string) (Segment, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "month":
		return SegmentMonth, true
	case "day":
		return SegmentDay, true
	case "year":
		return SegmentYear, true
	default:
		return 0, false
	}
}

// Segments holds the raw text of the three sub-fields.
type Segments struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// Get returns the raw text of seg.
func (s Segments) Get(seg Segment) string {
	switch seg {
	case SegmentMonth:
		return s.Month
	case SegmentDay:
		return s.Day
	case SegmentYear:
		return s.Year
	default:
		return ""
	}
}

// With returns a copy of s with seg replaced by value.
func (s Segments) With(seg Segment, value string) Segments {
	switch seg {
	case SegmentMonth:
		s.Month = value
	case SegmentDay:
		s.Day = value
	case SegmentYear:
		s.Year = value
	}
	return s
}

// Canonical merges the segments into MM-DD-YYYY without validating them.
func (s Segments) Canonical() string {
	return s.Month + "-" + s.Day + "-" + s.Year
}

func (s Segments) dayInvalid() bool {
	return s.Day == "00"
}

func (s Segments) monthInvalid() bool {
	return s.Month == "00"
}

// yearInvalid is a coarse plausibility rule, not a range check: birth years
// may not start with 0, other years may start with neither 0 nor 1.
func (s Segments) yearInvalid(dateOfBirth bool) bool {
	if dateOfBirth {
		return strings.HasPrefix(s.Year, "0")
	}
	return strings.HasPrefix(s.Year, "0") || strings.HasPrefix(s.Year, "1")
}

// complete reports whether the merge gate is open.
func (s Segments) complete(dateOfBirth bool) bool {
	return utf8.RuneCountInString(s.Day) == SegmentDay.MaxLength() &&
		utf8.RuneCountInString(s.Month) == SegmentMonth.MaxLength() &&
		utf8.RuneCountInString(s.Year) == SegmentYear.MaxLength() &&
		!s.dayInvalid() &&
		!s.monthInvalid() &&
		!s.yearInvalid(dateOfBirth)
}
