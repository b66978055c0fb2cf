package score

import (
	"strings"

	"github.com/mailtrace/internal/normalize"
)

// abbreviations maps short forms to expansions for diff classification.
// Saint/St is the one city-name pair that maps both directions; plain
// suffix prefixes ("blvd" vs "boulevard") are handled by the prefix rule.
var abbreviations = map[string]string{
	"ave":   "avenue",
	"av":    "avenue",
	"blvd":  "boulevard",
	"rd":    "road",
	"dr":    "drive",
	"ln":    "lane",
	"ct":    "court",
	"cir":   "circle",
	"trl":   "trail",
	"pkwy":  "parkway",
	"hwy":   "highway",
	"pl":    "place",
	"mt":    "mount",
	"ft":    "fort",
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
	"st":    "saint",
	"saint": "st",
}

// Classify buckets one "a vs b" difference note:
// punct (identical after stripping non-alphanumerics), abbrev (known
// abbreviation, directional, or dot-stripped prefix), typo (edit distance
// at most 2), other.
func Classify(note string) string {
	a, b := splitPair(note)
	if punctOnly(a, b) {
		return DiffPunct
	}
	if abbrevOrDirectional(a, b) {
		return DiffAbbrev
	}
	d := normalize.EditDistance(strings.ToLower(a), strings.ToLower(b))
	if d > 0 && d <= 2 {
		return DiffTypo
	}
	return DiffOther
}

// splitPair splits a note on its " vs " separator.
func splitPair(note string) (string, string) {
	i := strings.Index(strings.ToLower(note), " vs ")
	if i < 0 {
		return note, ""
	}
	return strings.TrimSpace(note[:i]), strings.TrimSpace(note[i+4:])
}

// punctOnly reports whether the two sides differ only in punctuation or
// spacing, not letters.
func punctOnly(a, b string) bool {
	return lettersOf(a) == lettersOf(b) && !strings.EqualFold(a, b)
}

func abbrevOrDirectional(a, b string) bool {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	aStripped := strings.ReplaceAll(al, ".", "")
	bStripped := strings.ReplaceAll(bl, ".", "")

	if abbreviations[aStripped] == bStripped || abbreviations[bStripped] == aStripped {
		return true
	}
	// One side is a dot-stripped prefix of the other ("blvd." vs "boulevard").
	if aStripped != "" && bStripped != "" &&
		(strings.HasPrefix(bStripped, aStripped) || strings.HasPrefix(aStripped, bStripped)) {
		return true
	}
	return false
}

func lettersOf(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
