package tabular

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader []string
		wantRows   int
	}{
		{
			name:       "plain rows with crlf",
			input:      "a,b,c\r\n1,2,3\r\n4,5,6\r\n",
			wantHeader: []string{"a", "b", "c"},
			wantRows:   2,
		},
		{
			name:       "quoted field with comma and escaped quote",
			input:      "name,addr\n\"Smith, \"\"Bob\"\"\",123 Main St\n",
			wantHeader: []string{"name", "addr"},
			wantRows:   1,
		},
		{
			name:       "blank rows dropped",
			input:      "a,b\n , \n1,2\n,,\n",
			wantHeader: []string{"a", "b"},
			wantRows:   1,
		},
		{
			name:       "header names trimmed",
			input:      " Address 1 , City \n100 Oak Ave,Springfield\n",
			wantHeader: []string{"Address 1", "City"},
			wantRows:   1,
		},
		{
			name:       "short row pads empty fields",
			input:      "a,b,c\n1,2\n",
			wantHeader: []string{"a", "b", "c"},
			wantRows:   1,
		},
		{
			name:       "no trailing newline",
			input:      "a,b\n1,2",
			wantHeader: []string{"a", "b"},
			wantRows:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(table.Header) != len(tt.wantHeader) {
				t.Fatalf("Parse() header = %v, want %v", table.Header, tt.wantHeader)
			}
			for i, h := range tt.wantHeader {
				if table.Header[i] != h {
					t.Errorf("Parse() header[%d] = %q, want %q", i, table.Header[i], h)
				}
			}
			if len(table.Rows) != tt.wantRows {
				t.Errorf("Parse() rows = %d, want %d", len(table.Rows), tt.wantRows)
			}
		})
	}
}

func TestParseQuotedValues(t *testing.T) {
	table, err := Parse("name,addr\n\"Smith, \"\"Bob\"\"\",\"123 Main St\"\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	row := table.Rows[0]
	if got := row["name"]; got != `Smith, "Bob"` {
		t.Errorf("quoted name = %q, want %q", got, `Smith, "Bob"`)
	}
	if got := row["addr"]; got != "123 Main St" {
		t.Errorf("quoted addr = %q, want %q", got, "123 Main St")
	}
}

func TestParseShortRowEmptyTrailing(t *testing.T) {
	table, err := Parse("a,b,c\n1,2\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := table.Rows[0]["c"]; got != "" {
		t.Errorf("missing trailing field = %q, want empty", got)
	}
}

func TestParseValuesTrimmed(t *testing.T) {
	table, err := Parse("a,b\n  1  ,  2  \n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := table.Rows[0]["a"]; got != "1" {
		t.Errorf("value not trimmed: %q", got)
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := Parse("a,b\n\xff\xfe,2\n")
	if err == nil {
		t.Fatal("Parse() expected error on invalid UTF-8")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("Parse() error type = %T, want *ParseError", err)
	}
}
