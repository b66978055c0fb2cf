package tabular

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Table holds a parsed delimited-text input: the trimmed header names in
// original order plus one Row per surviving data line. Tables are built once
// by Parse and never mutated afterwards.
type Table struct {
	Header []string
	Rows   []Row
}

// Row maps trimmed header names to trimmed cell values. Lookup is by the
// exact header text; case-insensitive column resolution is the column
// resolver's job, not the table's.
type Row map[string]string

// ParseError reports structurally unrecoverable input. Missing or extra
// columns never produce one; only undecodable text does.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tabular parse failed: %s", e.Reason)
}

// Parse turns raw CSV text into a Table. Quoting follows RFC 4180 ("" inside
// a quoted field is a literal quote), \r\n and \n both terminate rows, bare
// \r is ignored, and data rows whose every field is empty after trimming are
// dropped. A short row leaves its trailing columns empty; surplus fields on
// a long row are discarded.
func Parse(text string) (*Table, error) {
	if !utf8.ValidString(text) {
		return nil, &ParseError{Reason: "input is not valid UTF-8"}
	}

	records := splitRecords(text)
	if len(records) == 0 {
		return nil, &ParseError{Reason: "input has no header row"}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	table := &Table{Header: header}
	for _, rec := range records[1:] {
		if allBlank(rec) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = strings.TrimSpace(rec[i])
			} else {
				row[name] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// splitRecords runs the quote-aware field scanner over the whole input.
func splitRecords(text string) [][]string {
	var records [][]string
	var row []string
	var field strings.Builder
	inQuote := false

	i := 0
	for i < len(text) {
		c := text[i]
		if inQuote {
			if c == '"' && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i += 2
				continue
			}
			if c == '"' {
				inQuote = false
				i++
				continue
			}
			field.WriteByte(c)
			i++
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\n':
			row = append(row, field.String())
			field.Reset()
			records = append(records, row)
			row = nil
		case '\r':
			// ignored; \r\n is handled by the \n case
		default:
			field.WriteByte(c)
		}
		i++
	}
	row = append(row, field.String())
	records = append(records, row)

	// A trailing newline leaves a single empty field as the last record.
	last := records[len(records)-1]
	if len(last) == 1 && last[0] == "" {
		records = records[:len(records)-1]
	}

	return records
}

func allBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
