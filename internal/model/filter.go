package model

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DateRange is an optional filter on sale dates: From is inclusive, To is
// exclusive. A nil bound leaves that side open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// ParseDateRange builds a range from optional YYYY-MM-DD strings.
// The end day is included in full.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.ParseInLocation(dayLayout, s, time.Local)
		if err != nil {
			return r, ErrInvalidDate
		}
		r.From = &t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.ParseInLocation(dayLayout, s, time.Local)
		if err != nil {
			return r, ErrInvalidDate
		}
		end := t.AddDate(0, 0, 1)
		r.To = &end
	}
	return r, nil
}

// ParseMonthRange builds a range from optional YYYY-MM strings.
// The end month is included in full.
func ParseMonthRange(from, to string) (DateRange, error) {
	var r DateRange
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.ParseInLocation(monthLayout, s, time.Local)
		if err != nil {
			return r, ErrInvalidDate
		}
		r.From = &t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.ParseInLocation(monthLayout, s, time.Local)
		if err != nil {
			return r, ErrInvalidDate
		}
		end := t.AddDate(0, 1, 0)
		r.To = &end
	}
	return r, nil
}

// Label renders the range for report headings
func (r DateRange) Label() string {
	if r.IsZero() {
		return "All sales"
	}
	from, to := "beginning", "today"
	if r.From != nil {
		from = r.From.Format(dayLayout)
	}
	if r.To != nil {
		to = r.To.AddDate(0, 0, -1).Format(dayLayout)
	}
	return "From " + from + " to " + to
}
