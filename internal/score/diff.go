package score

import (
	"strings"

	"github.com/mailtrace/internal/normalize"
)

// Token kinds recognized when pairing up field tokens.
const (
	kindNum = "num"
	kindDir = "dir"
	kindSuf = "suf"
	kindTxt = "txt"
)

// dirForms and sufForms group each directional/suffix canonical abbreviation
// with its spelled-out form so "N" vs "North" pairs as the same kind.
var dirForms = map[string][]string{
	"n": {"n", "north"}, "s": {"s", "south"}, "e": {"e", "east"}, "w": {"w", "west"},
	"ne": {"ne", "northeast"}, "nw": {"nw", "northwest"},
	"se": {"se", "southeast"}, "sw": {"sw", "southwest"},
}

var sufForms = map[string][]string{
	"st": {"st", "street"}, "ave": {"ave", "avenue"}, "rd": {"rd", "road"},
	"blvd": {"blvd", "boulevard"}, "pkwy": {"pkwy", "parkway"}, "pl": {"pl", "place"},
	"ln": {"ln", "lane"}, "dr": {"dr", "drive"}, "ct": {"ct", "court"},
	"hwy": {"hwy", "highway"}, "cir": {"cir", "circle"}, "ter": {"ter", "terrace"},
}

// TokenDiffs walks two raw field values token by token and reports up to two
// representative "short vs long" difference notes: abbreviation/directional
// variants of the same canonical token, and near-miss spellings on plain
// word tokens. Identical-after-case tokens and incomparable positions are
// skipped.
func TokenDiffs(crmVal, mailVal string) []string {
	ctoks := strings.Fields(strings.TrimSpace(crmVal))
	mtoks := strings.Fields(strings.TrimSpace(mailVal))
	n := len(ctoks)
	if len(mtoks) < n {
		n = len(mtoks)
	}

	seen := make(map[string]bool)
	var diffs []string
	add := func(c, m string) {
		short, long := c, m
		if len(c) > len(m) {
			short, long = m, c
		}
		note := short + " vs " + long
		key := strings.ToLower(note)
		if !seen[key] {
			seen[key] = true
			diffs = append(diffs, note)
		}
	}

	for i := 0; i < n; i++ {
		c, m := ctoks[i], mtoks[i]
		if c == "" || m == "" || strings.EqualFold(c, m) {
			continue
		}
		ck, cn := tokenKind(c)
		mk, mn := tokenKind(m)

		// Same canonical kind and value, e.g. "Street" vs "St."
		if ck == mk && cn == mn && ck != kindNum {
			add(c, m)
			continue
		}

		// Slight spelling mismatch on plain word tokens only.
		if ck == kindTxt && mk == kindTxt {
			d := normalize.EditDistance(cn, mn)
			longest := len(cn)
			if len(mn) > longest {
				longest = len(mn)
			}
			if longest == 0 {
				longest = 1
			}
			near := (longest >= 4 && d <= 2) || (longest <= 3 && d <= 1)
			if near {
				add(c, m)
			}
		}
	}

	if len(diffs) > 2 {
		diffs = diffs[:2]
	}
	return diffs
}

// tokenKind classifies a token and returns its canonical comparison value.
func tokenKind(tok string) (kind, canonical string) {
	t := strings.ToLower(stripNonAlnum(tok))
	if t != "" && isAllDigits(t) {
		return kindNum, t
	}
	for abbr, forms := range dirForms {
		for _, f := range forms {
			if t == f {
				return kindDir, abbr
			}
		}
	}
	for abbr, forms := range sufForms {
		for _, f := range forms {
			if t == f {
				return kindSuf, abbr
			}
		}
	}
	return kindTxt, t
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
