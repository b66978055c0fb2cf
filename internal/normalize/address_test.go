package normalize

import (
	"testing"
)

func TestStreet(t *testing.T) {
	tests := []struct {
		name  string
		addr1 string
		addr2 string
		want  string
	}{
		{
			name:  "suffix abbreviated",
			addr1: "100 Oak Avenue",
			want:  "100 oak ave",
		},
		{
			name:  "directional abbreviated",
			addr1: "42 North Main Street",
			want:  "42 n main st",
		},
		{
			name:  "dotted abbreviation survives punctuation strip",
			addr1: "42 N. Main St.",
			want:  "42 n main st",
		},
		{
			name:  "unit token stripped",
			addr1: "100 Oak Ave",
			addr2: "Apt 4B",
			want:  "100 oak ave",
		},
		{
			name:  "hash unit stripped",
			addr1: "100 Oak Ave #12",
			want:  "100 oak ave",
		},
		{
			name:  "punctuation removed and spaces collapsed",
			addr1: "  100   Oak,  Ave  ",
			want:  "100 oak ave",
		},
		{
			name:  "unrecognized tokens pass through",
			addr1: "5 Zzyzx Wobble",
			want:  "5 zzyzx wobble",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Street(tt.addr1, tt.addr2)
			if got != tt.want {
				t.Errorf("Street(%q, %q) = %q, want %q", tt.addr1, tt.addr2, got, tt.want)
			}
		})
	}
}

func TestStreetCollapsed(t *testing.T) {
	if got := StreetCollapsed("100 Oak Ave", ""); got != "100oakave" {
		t.Errorf("StreetCollapsed() = %q, want %q", got, "100oakave")
	}
	// Separator variance collapses to the same value.
	a := StreetCollapsed("42 North east Dr", "")
	b := StreetCollapsed("42 Northeast Drive", "")
	if a != b {
		t.Errorf("collapsed forms differ: %q vs %q", a, b)
	}
	if StreetCollapsed("100 Oak  Ave", "") != StreetCollapsed("100 Oak Ave", "") {
		t.Error("whitespace variance should collapse to the same value")
	}
}

func TestExtractUnit(t *testing.T) {
	tests := []struct {
		addr1 string
		addr2 string
		want  string
	}{
		{"100 Oak Ave Apt 4b", "", "4B"},
		{"100 Oak Ave", "Suite 210", "210"},
		{"100 Oak Ave #12", "", "12"},
		{"100 Oak Ave", "Unit c-3", "C-3"},
		{"100 Oak Ave", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.addr1+" "+tt.addr2, func(t *testing.T) {
			if got := ExtractUnit(tt.addr1, tt.addr2); got != tt.want {
				t.Errorf("ExtractUnit(%q, %q) = %q, want %q", tt.addr1, tt.addr2, got, tt.want)
			}
		})
	}
}

func TestCity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"springfield", "Springfield"},
		{"SPRINGFIELD", "Springfield"},
		{"  new   york ", "New York"},
		{"o'brien", "O'Brien"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := City(tt.input); got != tt.want {
			t.Errorf("City(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestZip5(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"62704", "62704"},
		{"62704-1234", "62704"},
		{"zip 62704", "62704"},
		{"627", "627"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Zip5(tt.input); got != tt.want {
			t.Errorf("Zip5(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	got := Key("100 Oak Avenue", "Apt 2", "springfield", "il", "62704-1234")
	want := "100 oak ave|Springfield|IL|62704"
	if got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}

	// Keys are comparison values: formatting variance must not change them.
	a := Key("100 Oak Ave.", "", "Springfield", "IL", "62704")
	b := Key("100 Oak Avenue", "", "SPRINGFIELD", "il", "62704-0000")
	if a != b {
		t.Errorf("equivalent addresses produced different keys:\n  %q\n  %q", a, b)
	}
}

func TestHouseNumberStreetName(t *testing.T) {
	street := Street("123 Main St", "")
	if got := HouseNumber(street); got != "123" {
		t.Errorf("HouseNumber(%q) = %q, want %q", street, got, "123")
	}
	if got := StreetName(street); got != "main st" {
		t.Errorf("StreetName(%q) = %q, want %q", street, got, "main st")
	}
	if got := HouseNumber("main st"); got != "" {
		t.Errorf("HouseNumber without number = %q, want empty", got)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"mainn", "main", 1},
		{"main", "mainn", 1},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := EditDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		// Symmetry is part of the contract.
		if got := EditDistance(tt.b, tt.a); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestSimilarityRatio(t *testing.T) {
	if got := SimilarityRatio("", ""); got != 1.0 {
		t.Errorf("SimilarityRatio empty = %v, want 1.0", got)
	}
	if got := SimilarityRatio("mainst", "mainnst"); got < 0.85 {
		t.Errorf("SimilarityRatio near-identical = %v, want >= 0.85", got)
	}
	if got := SimilarityRatio("abc", "xyz"); got != 0.0 {
		t.Errorf("SimilarityRatio disjoint = %v, want 0.0", got)
	}
}
