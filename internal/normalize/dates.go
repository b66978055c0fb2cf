package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Accepted raw date shapes: MM-DD-YYYY and M/D/YYYY (two-digit years get
// 2000 added), YYYY-MM-DD, plus a small set of spelled-out fallbacks.
var (
	reDateMDY = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})$`)
	reDateYMD = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)

	reMonthMDY = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2,4})$`)
	reMonthYMD = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

var fallbackLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// DateParts parses a raw date value into year, month, day. The second return
// is false when no accepted shape matches.
func DateParts(s string) (year, month, day int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, false
	}
	if m := reDateMDY.FindStringSubmatch(s); m != nil {
		mm, _ := strconv.Atoi(m[1])
		dd, _ := strconv.Atoi(m[2])
		yy, _ := strconv.Atoi(m[3])
		if yy < 100 {
			yy += 2000
		}
		return yy, mm, dd, true
	}
	if m := reDateYMD.FindStringSubmatch(s); m != nil {
		yy, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		dd, _ := strconv.Atoi(m[3])
		return yy, mm, dd, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), int(t.Month()), t.Day(), true
		}
	}
	return 0, 0, 0, false
}

// DateKey collapses a raw date into an orderable yyyymmdd integer. The
// second return is false for unparseable values; callers decide whether an
// unparseable date constrains anything (it never does in temporal
// resolution).
func DateKey(s string) (int, bool) {
	y, m, d, ok := DateParts(s)
	if !ok {
		return 0, false
	}
	return y*10000 + m*100 + d, true
}

// Date converts a raw date value to a time.Time in UTC.
func Date(s string) (time.Time, bool) {
	y, m, d, ok := DateParts(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

// MonthKey reduces a date to its "YYYY-MM" histogram bucket. Only the two
// dashed shapes bucket; anything else is excluded from the series.
func MonthKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := reMonthMDY.FindStringSubmatch(s); m != nil {
		yy := m[3]
		if len(yy) == 2 {
			yy = "20" + yy
		}
		return yy + "-" + m[1], true
	}
	if m := reMonthYMD.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2], true
	}
	return "", false
}

// PrevYearMonth shifts a "YYYY-MM" bucket back one year.
func PrevYearMonth(ym string) string {
	parts := strings.SplitN(ym, "-", 2)
	if len(parts) != 2 {
		return ""
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d-%s", y-1, parts[1])
}

// FormatDate renders a raw date as MM-DD-YYYY for display. Unparseable
// values pass through untouched; empty values render as an em dash.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "—"
	}
	y, m, d, ok := DateParts(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%02d-%02d-%d", m, d, y)
}

// FormatDates renders a list of raw dates joined by ", ", or an em dash when
// there are none.
func FormatDates(dates []string) string {
	if len(dates) == 0 {
		return "—"
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = FormatDate(d)
	}
	return strings.Join(out, ", ")
}
