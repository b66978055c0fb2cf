package engine

import (
	"github.com/mailtrace/internal/normalize"
	"github.com/mailtrace/internal/tabular"
)

// side wraps one table with its resolved role→column map and gives
// role-based access to row values.
type side struct {
	table *tabular.Table
	cols  map[string]string
}

func (s side) value(row tabular.Row, role string) string {
	col := s.cols[role]
	if col == "" {
		return ""
	}
	return row[col]
}

// Record is the derived, read-only view of one raw row used during a single
// matching run: the canonical comparison keys, the extracted unit, and a
// reference back to the owning row by original index.
type Record struct {
	Index int
	Row   tabular.Row

	Key          string
	CollapsedKey string
	ZipState     string
	Unit         string
	Street       string
}

// buildRecords normalizes every row of a side into Records, preserving row
// order so candidate selection stays deterministic.
func buildRecords(s side) []*Record {
	records := make([]*Record, len(s.table.Rows))
	for i, row := range s.table.Rows {
		addr1 := s.value(row, "address1")
		addr2 := s.value(row, "address2")
		city := s.value(row, "city")
		state := s.value(row, "state")
		zip := s.value(row, "zip")

		records[i] = &Record{
			Index:        i,
			Row:          row,
			Key:          normalize.Key(addr1, addr2, city, state, zip),
			CollapsedKey: normalize.CollapsedKey(addr1, addr2, city, state, zip),
			ZipState:     normalize.ZipStateKey(zip, state),
			Unit:         normalize.ExtractUnit(addr1, addr2),
			Street:       normalize.Street(addr1, addr2),
		}
	}
	return records
}
