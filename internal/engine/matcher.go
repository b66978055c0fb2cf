package engine

import (
	"strings"

	"github.com/mailtrace/internal/debug"
	"github.com/mailtrace/internal/normalize"
	"github.com/mailtrace/internal/score"
)

// matcher holds the shared read-only state for one run's matching loop.
type matcher struct {
	index *BlockingIndex
	opts  Options
}

// outcome is the decision for one CRM record before scoring.
type outcome struct {
	mail      *Record
	unitCase  score.UnitCase
	fuzzyUsed bool
}

// matchOne runs the per-record state machine: exact stage, fuzzy fallback,
// unit disambiguation. The second return is false when the record has no
// match (no candidates, below fuzzy thresholds, or an ambiguous unit
// conflict).
func (m *matcher) matchOne(cr *Record) (outcome, bool) {
	candidates := m.index.ExactCandidates(cr.Key, cr.CollapsedKey)
	fuzzyUsed := false

	if len(candidates) == 0 {
		if !m.opts.FuzzyEnabled {
			return outcome{}, false
		}
		best := m.fuzzyCandidate(cr)
		if best == nil {
			debug.Trace(m.opts.Debug, "crm row %d: no exact or fuzzy candidate", cr.Index)
			return outcome{}, false
		}
		candidates = []*Record{best}
		fuzzyUsed = true
	}

	mail, unitCase, ok := disambiguateUnit(cr.Unit, candidates)
	if !ok {
		debug.Trace(m.opts.Debug, "crm row %d: dropped on unit conflict", cr.Index)
		return outcome{}, false
	}

	return outcome{mail: mail, unitCase: unitCase, fuzzyUsed: fuzzyUsed}, true
}

// fuzzyCandidate searches the CRM record's zip/state bucket for the best
// near-miss street. The leading house number must match exactly; street
// names (house number stripped, letters collapsed) are compared by edit
// distance and similarity ratio against the active mode's gates. Ties keep
// the earliest mail row, which keeps runs deterministic.
func (m *matcher) fuzzyCandidate(cr *Record) *Record {
	bucket := m.index.Bucket(cr.ZipState)
	if len(bucket) == 0 {
		return nil
	}

	th := m.opts.thresholds()
	crmNum := normalize.HouseNumber(cr.Street)
	crmName := collapse(normalize.StreetName(cr.Street))

	var best *Record
	bestDist := int(^uint(0) >> 1)
	for _, r := range bucket {
		if normalize.HouseNumber(r.Street) != crmNum {
			continue
		}
		name := collapse(normalize.StreetName(r.Street))
		d := normalize.EditDistance(crmName, name)
		sim := normalize.SimilarityRatio(crmName, name)
		if d <= th.MaxEdits || sim >= th.MinSim {
			if d < bestDist {
				bestDist = d
				best = r
			}
		}
	}
	return best
}

// disambiguateUnit applies the unit rules to the candidate set:
//   - CRM unit set and an exact unit match exists: take it.
//   - CRM unit set but some candidate carries a different non-empty unit:
//     ambiguous, drop the record.
//   - CRM unit empty but candidates carry two or more distinct non-empty
//     units: also ambiguous, drop.
//   - Otherwise take the first candidate; the case is one_sided when exactly
//     one side names a unit.
func disambiguateUnit(crmUnit string, candidates []*Record) (*Record, score.UnitCase, bool) {
	if crmUnit != "" {
		for _, r := range candidates {
			if r.Unit == crmUnit {
				return r, score.UnitExact, true
			}
		}
		for _, r := range candidates {
			if r.Unit != "" && r.Unit != crmUnit {
				return nil, score.UnitNone, false
			}
		}
	} else {
		distinct := ""
		for _, r := range candidates {
			if r.Unit == "" {
				continue
			}
			if distinct == "" {
				distinct = r.Unit
			} else if r.Unit != distinct {
				return nil, score.UnitNone, false
			}
		}
	}

	chosen := candidates[0]
	if (chosen.Unit != "") != (crmUnit != "") {
		return chosen, score.UnitOneSided, true
	}
	return chosen, score.UnitNone, true
}

func collapse(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
