package engine

// BlockingIndex groups the mail-side Records three ways: by exact canonical
// key, by whitespace-collapsed key, and by (zip5, state) bucket. Built once
// per run and read-only afterwards, so the matching loop can share it across
// workers. Duplicate mail addresses are kept — several rows under one key
// represent re-mailings.
type BlockingIndex struct {
	byKey       map[string][]*Record
	byCollapsed map[string][]*Record
	byZipState  map[string][]*Record
}

// BuildIndex indexes mail Records in row order.
func BuildIndex(records []*Record) *BlockingIndex {
	ix := &BlockingIndex{
		byKey:       make(map[string][]*Record),
		byCollapsed: make(map[string][]*Record),
		byZipState:  make(map[string][]*Record),
	}
	for _, r := range records {
		ix.byKey[r.Key] = append(ix.byKey[r.Key], r)
		ix.byCollapsed[r.CollapsedKey] = append(ix.byCollapsed[r.CollapsedKey], r)
		ix.byZipState[r.ZipState] = append(ix.byZipState[r.ZipState], r)
	}
	return ix
}

// ExactCandidates returns the ordered union of the exact-key and
// collapsed-key hits for a CRM record, deduplicated by mail row. Exact-key
// hits come first; within each list the original row order is kept.
func (ix *BlockingIndex) ExactCandidates(key, collapsedKey string) []*Record {
	exact := ix.byKey[key]
	collapsed := ix.byCollapsed[collapsedKey]
	if len(collapsed) == 0 {
		return exact
	}

	seen := make(map[int]bool, len(exact)+len(collapsed))
	out := make([]*Record, 0, len(exact)+len(collapsed))
	for _, r := range exact {
		if !seen[r.Index] {
			seen[r.Index] = true
			out = append(out, r)
		}
	}
	for _, r := range collapsed {
		if !seen[r.Index] {
			seen[r.Index] = true
			out = append(out, r)
		}
	}
	return out
}

// Bucket returns the (zip5, state) blocking bucket for fuzzy search.
func (ix *BlockingIndex) Bucket(zipState string) []*Record {
	return ix.byZipState[zipState]
}

// UniqueKeys counts distinct exact canonical keys — the "unique mail
// addresses" KPI.
func (ix *BlockingIndex) UniqueKeys() int {
	return len(ix.byKey)
}
