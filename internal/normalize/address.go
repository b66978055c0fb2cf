package normalize

import (
	"regexp"
	"strings"
)

// Directionals maps spelled-out directional words to their abbreviations.
var Directionals = map[string]string{
	"north":     "n",
	"south":     "s",
	"east":      "e",
	"west":      "w",
	"northeast": "ne",
	"northwest": "nw",
	"southeast": "se",
	"southwest": "sw",
}

// Suffixes maps spelled-out street-suffix words to their abbreviations.
// Tokens are matched after punctuation stripping, so dotted forms ("St.")
// never reach the lookup.
var Suffixes = map[string]string{
	"street":    "st",
	"avenue":    "ave",
	"road":      "rd",
	"boulevard": "blvd",
	"parkway":   "pkwy",
	"place":     "pl",
	"lane":      "ln",
	"drive":     "dr",
	"court":     "ct",
	"highway":   "hwy",
	"circle":    "cir",
	"terrace":   "ter",
	"park":      "park",
}

// Unit designators: "unit 4", "apt B", "suite 210", "ste 3", "#12".
var reUnit = regexp.MustCompile(`(?i)(?:\b(?:unit|apt|apartment|suite|ste)|#)\s*([A-Za-z0-9\-]+)\b`)

var reNonAddress = regexp.MustCompile(`[^A-Za-z0-9\s\-]`)

var reSpaces = regexp.MustCompile(`\s+`)

var reDigit = regexp.MustCompile(`\d`)

// StripUnit removes every unit/suite/apartment designator and its value from
// an address fragment.
func StripUnit(addr string) string {
	return reUnit.ReplaceAllString(strings.TrimSpace(addr), "")
}

// ExtractUnit pulls the first unit designator's value, uppercased. Absent
// units return the empty string.
func ExtractUnit(addr1, addr2 string) string {
	s := strings.TrimSpace(strings.TrimSpace(addr1) + " " + strings.TrimSpace(addr2))
	if m := reUnit.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// Street canonicalizes the street portion of an address: addr1 and addr2
// concatenated, unit tokens stripped, punctuation removed, lowercased,
// whitespace collapsed, and directional/suffix words abbreviated.
// Unrecognized tokens pass through unchanged.
func Street(addr1, addr2 string) string {
	s := strings.TrimSpace(strings.TrimSpace(addr1) + " " + strings.TrimSpace(addr2))
	s = StripUnit(s)
	s = strings.ReplaceAll(s, ".", " ")
	s = reNonAddress.ReplaceAllString(s, " ")
	s = strings.ToLower(strings.TrimSpace(reSpaces.ReplaceAllString(s, " ")))

	tokens := strings.Fields(s)
	for i, tok := range tokens {
		if d, ok := Directionals[tok]; ok {
			tok = d
		}
		if suf, ok := Suffixes[tok]; ok {
			tok = suf
		}
		tokens[i] = tok
	}
	return strings.Join(tokens, " ")
}

// StreetCollapsed is Street with all internal whitespace removed, tolerant of
// word-splitting variance ("North east" vs "Northeast").
func StreetCollapsed(addr1, addr2 string) string {
	return strings.ReplaceAll(Street(addr1, addr2), " ", "")
}

// City trims, collapses whitespace, and title-cases each word.
func City(city string) string {
	fields := strings.Fields(strings.TrimSpace(city))
	for i, f := range fields {
		fields[i] = titleWord(f)
	}
	return strings.Join(fields, " ")
}

// State uppercases the two-letter state code.
func State(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

// Zip5 returns the first five digits found in the value, in order. No
// validation against a postal database is attempted.
func Zip5(zip string) string {
	digits := reDigit.FindAllString(strings.TrimSpace(zip), -1)
	if len(digits) > 5 {
		digits = digits[:5]
	}
	return strings.Join(digits, "")
}

// Key builds the canonical street|city|state|zip comparison key.
func Key(addr1, addr2, city, state, zip string) string {
	return strings.Join([]string{Street(addr1, addr2), City(city), State(state), Zip5(zip)}, "|")
}

// CollapsedKey is Key with the whitespace-collapsed street variant.
func CollapsedKey(addr1, addr2, city, state, zip string) string {
	return strings.Join([]string{StreetCollapsed(addr1, addr2), City(city), State(state), Zip5(zip)}, "|")
}

// ZipStateKey is the blocking-bucket key for fuzzy candidate search.
func ZipStateKey(zip, state string) string {
	return Zip5(zip) + "|" + State(state)
}

// HouseNumber returns the leading all-digit token of a canonical street, or
// the empty string when the street does not start with a number.
func HouseNumber(street string) string {
	tokens := strings.Fields(street)
	if len(tokens) == 0 {
		return ""
	}
	if isDigits(tokens[0]) {
		return tokens[0]
	}
	return ""
}

// StreetName strips the leading house number from a canonical street.
func StreetName(street string) string {
	tokens := strings.Fields(street)
	if len(tokens) > 0 && isDigits(tokens[0]) {
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

func titleWord(w string) string {
	var b strings.Builder
	b.Grow(len(w))
	prevLetter := false
	for _, r := range w {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(upper(r))
		case isLetter:
			b.WriteRune(lower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	return r
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
