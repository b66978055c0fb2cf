package score

import (
	"strings"
)

// UnitCase describes how the secondary-address units compared on a match.
type UnitCase string

const (
	// UnitNone: neither side has a unit, or both agree trivially.
	UnitNone UnitCase = "none"
	// UnitExact: the CRM unit matched a candidate's unit exactly.
	UnitExact UnitCase = "exact"
	// UnitOneSided: exactly one side specifies a unit.
	UnitOneSided UnitCase = "one_sided"
)

// Diff classifications, from most benign to least.
const (
	DiffPunct  = "punct"
	DiffAbbrev = "abbrev"
	DiffTypo   = "typo"
	DiffOther  = "other"
)

// maxDiffs caps the representative differences carried into the notes.
const maxDiffs = 4

// maxDiffPenalty caps the combined diff deduction before the unit penalty.
const maxDiffPenalty = 12

// oneSidedUnitPenalty applies when only one side carries a unit.
const oneSidedUnitPenalty = 8

// Input is one matched pair's raw display fields plus match context.
// FuzzyBase and FuzzyFloor are the active mode's clamp bounds and are only
// consulted when FuzzyUsed is set.
type Input struct {
	CRMStreet, MailStreet string
	CRMCity, MailCity     string
	CRMState, MailState   string
	CRMZip, MailZip       string

	Unit       UnitCase
	FuzzyUsed  bool
	FuzzyBase  int
	FuzzyFloor int
}

// Result is the scored confidence plus the human-readable notes.
type Result struct {
	Confidence int
	Notes      string
	Diffs      []string
}

// Score classifies every representative token-level difference between the
// matched addresses and derives the 0-100 confidence. Penalties are capped,
// fuzzy matches are clamped to the mode's band unless every difference is
// benign, and a diff-free pair with agreeing units is forced to exactly 100.
func Score(in Input) Result {
	diffs := collectDiffs(in)

	// Spacing/punctuation-only city variance is invisible to token diffing;
	// surface it from the raw strings.
	cityDiffs := TokenDiffs(in.CRMCity, in.MailCity)
	if len(cityDiffs) == 0 && !strings.EqualFold(strings.TrimSpace(in.CRMCity), strings.TrimSpace(in.MailCity)) {
		diffs = append(diffs, in.MailCity+" vs "+in.CRMCity)
	}

	var nTypo, nAbbrev, nPunct, nOther int
	for _, d := range diffs {
		switch Classify(d) {
		case DiffTypo:
			nTypo++
		case DiffAbbrev:
			nAbbrev++
		case DiffPunct:
			nPunct++
		default:
			nOther++
		}
	}

	diffPenalty := nTypo*3 + nOther*2 + (nAbbrev+nPunct)*1
	if nTypo >= 2 {
		diffPenalty += nTypo - 1
	}
	if diffPenalty > maxDiffPenalty {
		diffPenalty = maxDiffPenalty
	}

	unitPenalty := 0
	if in.Unit == UnitOneSided {
		unitPenalty = oneSidedUnitPenalty
	}

	conf := 100 - diffPenalty - unitPenalty

	if in.FuzzyUsed {
		if conf > in.FuzzyBase {
			conf = in.FuzzyBase
		}
		if conf < in.FuzzyFloor {
			conf = in.FuzzyFloor
		}
		// Benign-only differences bypass the fuzzy clamp; ties keep the
		// clamped value.
		if nTypo == 0 && nOther == 0 {
			if recompute := 100 - diffPenalty - unitPenalty; recompute > conf {
				conf = recompute
			}
		}
	}

	if len(diffs) == 0 && in.Unit != UnitOneSided {
		conf = 100
	}

	notes := "perfect match"
	if conf != 100 {
		notes = strings.Join(diffs, "; ")
		if notes == "" {
			notes = "difference detected"
		}
	}

	return Result{Confidence: conf, Notes: notes, Diffs: diffs}
}

// collectDiffs gathers the first differing tokens per field in street, city,
// state, zip order, deduplicated and capped at four.
func collectDiffs(in Input) []string {
	fields := [][2]string{
		{in.CRMStreet, in.MailStreet},
		{in.CRMCity, in.MailCity},
		{in.CRMState, in.MailState},
		{head5(in.CRMZip), head5(in.MailZip)},
	}

	seen := make(map[string]bool)
	var diffs []string
	for _, pair := range fields {
		for _, d := range TokenDiffs(pair[0], pair[1]) {
			if !seen[d] {
				seen[d] = true
				diffs = append(diffs, d)
			}
		}
	}
	if len(diffs) > maxDiffs {
		diffs = diffs[:maxDiffs]
	}
	return diffs
}

// Band buckets a confidence for display: green above 95, red at 85 and
// below, yellow between.
func Band(confidence int) string {
	switch {
	case confidence > 95:
		return "green"
	case confidence <= 85:
		return "red"
	default:
		return "yellow"
	}
}

func head5(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
