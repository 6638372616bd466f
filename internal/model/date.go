package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DatePrecision tags how much of a Date is actually specified by the input.
type DatePrecision int

const (
	// PrecisionNone marks the zero Date (field absent).
	PrecisionNone DatePrecision = iota
	// PrecisionYear covers inputs like "2022".
	PrecisionYear
	// PrecisionMonth covers inputs like "2022-06".
	PrecisionMonth
	// PrecisionDay covers full ISO dates like "2022-06-15".
	PrecisionDay
	// PrecisionPresent is the sentinel for an ongoing range.
	PrecisionPresent
	// PrecisionText is free-form text, kept verbatim and never compared.
	PrecisionText
)

func (p DatePrecision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "year-month"
	case PrecisionDay:
		return "day"
	case PrecisionPresent:
		return "present"
	case PrecisionText:
		return "text"
	default:
		return "none"
	}
}

// Date is the normalized representation of a point in time. Only the
// components covered by Precision are meaningful.
type Date struct {
	Year      int
	Month     int
	Day       int
	Precision DatePrecision
	Text      string
}

var numericDateRe = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2})(?:-(\d{1,2}))?)?$`)

// ParseDate normalizes a raw date field. Most specific forms are tried first:
// full ISO date, then year-month, then bare year, then the "present" sentinel.
// Anything else non-empty is kept as opaque text, which skips chronological
// checks. Numeric inputs with an impossible month or day fail outright.
func ParseDate(path, raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, nil
	}
	if strings.EqualFold(raw, "present") {
		return Date{Precision: PrecisionPresent}, nil
	}

	m := numericDateRe.FindStringSubmatch(raw)
	if m == nil {
		return Date{Precision: PrecisionText, Text: raw}, nil
	}

	year, _ := strconv.Atoi(m[1])
	d := Date{Year: year, Precision: PrecisionYear}
	if m[2] != "" {
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return Date{}, NewFieldError(path, raw, "month %d is out of range 1-12", month)
		}
		d.Month = month
		d.Precision = PrecisionMonth
	}
	if m[3] != "" {
		day, _ := strconv.Atoi(m[3])
		if day < 1 || day > daysIn(year, d.Month) {
			return Date{}, NewFieldError(path, raw, "day %d is not valid for %04d-%02d", day, year, d.Month)
		}
		d.Day = day
		d.Precision = PrecisionDay
	}
	return d, nil
}

func daysIn(year, month int) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsZero reports whether the date field was absent.
func (d Date) IsZero() bool { return d.Precision == PrecisionNone }

// Comparable reports whether the date takes part in chronological checks.
// Free-form text dates are opaque and never compared.
func (d Date) Comparable() bool {
	switch d.Precision {
	case PrecisionYear, PrecisionMonth, PrecisionDay, PrecisionPresent:
		return true
	default:
		return false
	}
}

// Time returns the comparison instant. A year-only date compares as the start
// of that year, a year-month as the first of the month, and "present" as now.
func (d Date) Time() time.Time {
	switch d.Precision {
	case PrecisionYear:
		return time.Date(d.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	case PrecisionMonth:
		return time.Date(d.Year, time.Month(d.Month), 1, 0, 0, 0, 0, time.UTC)
	case PrecisionDay:
		return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	case PrecisionPresent:
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}
	}
}

// After reports whether d is chronologically after other. Either side being
// non-comparable yields false, so opaque text suppresses ordering checks.
func (d Date) After(other Date) bool {
	if !d.Comparable() || !other.Comparable() {
		return false
	}
	return d.Time().After(other.Time())
}

// Format renders the date at its own precision using the locale catalog, so a
// year-only input never gains a spurious month or day.
func (d Date) Format(loc *Locale) string {
	switch d.Precision {
	case PrecisionYear:
		return strconv.Itoa(d.Year)
	case PrecisionMonth:
		return fmt.Sprintf("%s %d", loc.MonthsShort[d.Month-1], d.Year)
	case PrecisionDay:
		return fmt.Sprintf("%s %d, %d", loc.MonthsShort[d.Month-1], d.Day, d.Year)
	case PrecisionPresent:
		return loc.Present
	case PrecisionText:
		return d.Text
	default:
		return ""
	}
}

// FormatRange renders "start – end" for a pair of dates, falling back to the
// single present side when one is absent.
func FormatRange(start, end Date, loc *Locale) string {
	switch {
	case start.IsZero() && end.IsZero():
		return ""
	case start.IsZero():
		return end.Format(loc)
	case end.IsZero():
		return start.Format(loc) + " " + loc.RangeSep + " " + loc.Present
	default:
		return start.Format(loc) + " " + loc.RangeSep + " " + end.Format(loc)
	}
}

// FormatDuration renders the elapsed span between two comparable dates as
// "N years M months" text, rounded to whole months.
func FormatDuration(start, end Date, loc *Locale) string {
	if !start.Comparable() || !end.Comparable() {
		return ""
	}
	from, to := start.Time(), end.Time()
	if to.Before(from) {
		return ""
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() >= from.Day() {
		months++ // partial months count, matching human reading of ranges
	}
	years := months / 12
	months %= 12

	var parts []string
	if years == 1 {
		parts = append(parts, "1 "+loc.Year)
	} else if years > 1 {
		parts = append(parts, fmt.Sprintf("%d %s", years, loc.Years))
	}
	if months == 1 {
		parts = append(parts, "1 "+loc.Month)
	} else if months > 1 {
		parts = append(parts, fmt.Sprintf("%d %s", months, loc.MonthPlural))
	}
	if len(parts) == 0 {
		return "1 " + loc.Month
	}
	return strings.Join(parts, " ")
}
