package parser

import (
	"strconv"
	"strings"
	"time"
)

// resolveDate splits a D/M/Y-or-M/D/Y date token into calendar parts. The
// last part is always the year (two-digit years map to 2000+Y). When the
// first part exceeds 12 it must be the day; when the second does, it must
// instead. When both are 12 or below the token is ambiguous and day-first is
// assumed, the common convention outside the US. This is a documented
// best-effort heuristic: changing it would silently change historical
// statistics for previously saved analyses.
func resolveDate(dateText string) (day, month, year int, ok bool) {
	fields := strings.Split(dateText, "/")
	if len(fields) != 3 {
		return 0, 0, 0, false
	}

	p0, err0 := strconv.Atoi(fields[0])
	p1, err1 := strconv.Atoi(fields[1])
	p2, err2 := strconv.Atoi(fields[2])
	if err0 != nil || err1 != nil || err2 != nil {
		return 0, 0, 0, false
	}

	switch {
	case p0 > 12:
		day, month = p0, p1
	case p1 > 12:
		day, month = p1, p0
	default:
		day, month = p0, p1
	}

	year = p2
	if year < 100 {
		year += 2000
	}
	return day, month, year, true
}

// DateValue converts a raw date token into a comparable calendar value using
// the same disambiguation as message timestamps. It is used to order day
// labels chronologically for trend display.
func DateValue(dateText string) (time.Time, bool) {
	day, month, year, ok := resolveDate(dateText)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// buildTimestamp combines the date and time tokens of an entry header into a
// single local timestamp. Timestamps are deliberately timezone naive: the
// export carries wall-clock fields only. The AM/PM suffix and seconds are
// kept for display but do not shift the hour, matching how exports that mix
// clock formats have always been interpreted.
func buildTimestamp(dateText, timeText string) time.Time {
	day, month, year, ok := resolveDate(dateText)
	if !ok {
		return time.Time{}
	}

	hour, minute := 0, 0
	if colon := strings.IndexByte(timeText, ':'); colon > 0 {
		hour, _ = strconv.Atoi(timeText[:colon])
		rest := timeText[colon+1:]
		if len(rest) >= 2 {
			minute, _ = strconv.Atoi(rest[:2])
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
}
