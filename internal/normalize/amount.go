package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reNonAmount = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount reads a currency-formatted or plain numeric string, ignoring
// "$", ",", and any other decoration. The second return is false when
// nothing numeric remains.
func ParseAmount(s string) (float64, bool) {
	stripped := reNonAmount.ReplaceAllString(strings.TrimSpace(s), "")
	if stripped == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatAmount renders a raw amount as US currency ("$1,234.56"). Values
// with no numeric content render as an em dash.
func FormatAmount(s string) string {
	v, ok := ParseAmount(s)
	if !ok {
		return "—"
	}
	return FormatCurrency(v)
}

// FormatCurrency formats a float as US currency with comma grouping.
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a ratio as a whole-number percentage string.
func FormatPercent(num, den int) string {
	if den == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(float64(num)/float64(den)*100+0.5))
}
