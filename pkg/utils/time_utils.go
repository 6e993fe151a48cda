package utils

import (
	"errors"
	"strings"
	"time"
)

// Calendar dates travel as ISO yyyy-mm-dd strings end to end.
const ISODateLayout = "2006-01-02"

var ErrBadDate = errors.New("bad iso date")

func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// CompareISODates returns -1, 0 or 1. Unparseable inputs fall back to a
// lexicographic compare, which orders valid ISO dates identically.
func CompareISODates(a, b string) int {
	ta, errA := ParseISODate(a)
	tb, errB := ParseISODate(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// InclusiveDayCount counts both endpoints: 2024-01-01 through 2024-01-05 is
// five travel days.
func InclusiveDayCount(start, end string) (int, error) {
	ts, err := ParseISODate(start)
	if err != nil {
		return 0, err
	}
	te, err := ParseISODate(end)
	if err != nil {
		return 0, err
	}
	return int(te.Sub(ts).Hours()/24) + 1, nil
}

// ResolveMinDate turns a catalog min-date config into a concrete ISO date.
// Supported configs: a literal date, "today", and "start_date"/"start_date + 1"
// relative to the range's chosen start.
func ResolveMinDate(minConfig, startDate string, now time.Time) string {
	if minConfig == "today" {
		return now.Format(ISODateLayout)
	}
	if strings.Contains(minConfig, "start_date") && startDate != "" {
		start, err := ParseISODate(startDate)
		if err != nil {
			return minConfig
		}
		if strings.Contains(minConfig, "+ 1") {
			start = start.AddDate(0, 0, 1)
		}
		return start.Format(ISODateLayout)
	}
	return minConfig
}

func NowUnixMillis() int64 { return time.Now().UnixMilli() }
