package engine

import (
	"sort"

	"github.com/mailtrace/internal/normalize"
)

// mailDateIndex collects every mail date seen per canonical key during a
// run. Dates stay in their raw string form; ordering and comparison go
// through normalize.DateKey.
type mailDateIndex map[string][]string

// buildMailDates gathers the distinct raw dates per mail key, first-seen
// order preserved. Returns an empty index when the mail side resolved no
// date column.
func buildMailDates(s side, records []*Record) mailDateIndex {
	idx := make(mailDateIndex)
	if s.cols["mail_date"] == "" {
		return idx
	}
	seen := make(map[string]map[string]bool)
	for _, r := range records {
		d := s.value(r.Row, "mail_date")
		if d == "" {
			continue
		}
		if seen[r.Key] == nil {
			seen[r.Key] = make(map[string]bool)
		}
		if !seen[r.Key][d] {
			seen[r.Key][d] = true
			idx[r.Key] = append(idx[r.Key], d)
		}
	}
	return idx
}

// resolve selects the mail dates for a matched key that plausibly caused
// the CRM event: every date on or before the CRM date, ascending. All of
// them are kept, since several mailings can precede one conversion.
// Unparseable dates never constrain: an unparseable CRM date lets every
// mail date through, and an unparseable mail date always passes.
func (idx mailDateIndex) resolve(key, crmDate string) []string {
	all := idx[key]
	if len(all) == 0 {
		return nil
	}

	crmKey, crmOK := normalize.DateKey(crmDate)

	var kept []string
	for _, d := range all {
		dk, ok := normalize.DateKey(d)
		if !ok || !crmOK || dk <= crmKey {
			kept = append(kept, d)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		di, iOK := normalize.DateKey(kept[i])
		dj, jOK := normalize.DateKey(kept[j])
		if iOK != jOK {
			return iOK // parseable dates first
		}
		return di < dj
	})
	return kept
}
