package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// DateLayout is the calendar date format accepted by filters and printed by renderers.
const DateLayout = "2006-01-02"

// Filter selects entries during a scan.
// Every supplied criterion must hold; an empty criterion always holds.
type Filter struct {
	// Date, if set, requires the entry's local calendar date to equal the
	// calendar date of Date in its own location.
	Date *time.Time
	// Range, if set, requires the entry to be at most Range days old.
	// Entries dated in the future always pass.
	Range *int
	// Tags must all be present on the entry (exact match).
	Tags []string
	// Keyword is matched case-insensitively against the content or any tag.
	Keyword string
	// Now overrides the clock used for Range. Nil means time.Now.
	Now func() time.Time
}

// NewFilter builds a Filter from raw CLI-style arguments.
// An empty date means no date criterion; an unparseable one fails with ErrInvalidDate.
func NewFilter(date string, rangeDays *int, tags []string, keyword string) (Filter, error) {
	f := Filter{
		Range:   rangeDays,
		Tags:    tags,
		Keyword: keyword,
	}
	if date != "" {
		d, err := time.Parse(DateLayout, date)
		if err != nil {
			return Filter{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, date)
		}
		f.Date = &d
	}
	return f, nil
}

// ParseRange parses a day count given on the command line.
// An empty string means no range. Anything that is not an integer fails
// with ErrInvalidRange. Negative ranges are allowed and only match entries
// dated in the future.
func ParseRange(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: expected a whole number of days", ErrInvalidRange, s)
	}
	return &n, nil
}

// Match reports whether e satisfies every criterion of the filter.
func (f Filter) Match(e Entry) bool {
	day := CalendarDate(e.Timestamp)

	if f.Date != nil && !day.Equal(dateOf(*f.Date)) {
		return false
	}

	if f.Range != nil {
		if DaysBetween(day, CalendarDate(f.now())) > *f.Range {
			return false
		}
	}

	for _, t := range f.Tags {
		if !e.HasTag(t) {
			return false
		}
	}

	if f.Keyword != "" && !matchKeyword(e, f.Keyword) {
		return false
	}

	return true
}

func (f Filter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func matchKeyword(e Entry, keyword string) bool {
	fold := cases.Fold()
	kw := fold.String(keyword)
	if strings.Contains(fold.String(e.Content), kw) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(fold.String(t), kw) {
			return true
		}
	}
	return false
}

// CalendarDate returns the local calendar date of t as midnight UTC,
// so that dates compare and subtract without DST artifacts.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from calendar date from to calendar date to.
// It is negative when to is earlier than from.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
