package score

import (
	"strings"
	"testing"
)

func TestTokenDiffs(t *testing.T) {
	tests := []struct {
		name string
		crm  string
		mail string
		want []string
	}{
		{
			name: "identical values produce no diffs",
			crm:  "100 Oak Ave",
			mail: "100 Oak Ave",
			want: nil,
		},
		{
			name: "case difference is not a diff",
			crm:  "100 OAK AVE",
			mail: "100 Oak Ave",
			want: nil,
		},
		{
			name: "suffix variant noted short first",
			crm:  "100 Oak Street",
			mail: "100 Oak St",
			want: []string{"St vs Street"},
		},
		{
			name: "directional variant",
			crm:  "42 North Main St",
			mail: "42 N Main St",
			want: []string{"N vs North"},
		},
		{
			name: "near spelling noted",
			crm:  "123 Mainn St",
			mail: "123 Main St",
			want: []string{"Main vs Mainn"},
		},
		{
			name: "unrelated words skipped",
			crm:  "123 Walnut St",
			mail: "123 Chestnut St",
			want: nil,
		},
		{
			name: "house number change skipped",
			crm:  "124 Main St",
			mail: "123 Main St",
			want: nil,
		},
		{
			name: "capped at two per field",
			crm:  "1 North Oak Street Easst",
			mail: "1 N Oak St East",
			want: []string{"N vs North", "St vs Street"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenDiffs(tt.crm, tt.mail)
			if len(got) != len(tt.want) {
				t.Fatalf("TokenDiffs() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("TokenDiffs()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		note string
		want string
	}{
		{"Main, vs Main", DiffPunct},
		{"St vs Street", DiffAbbrev},
		{"N vs North", DiffAbbrev},
		{"Blvd. vs Boulevard", DiffAbbrev},
		{"St vs Saint", DiffAbbrev},
		{"Main vs Mainn", DiffTypo},
		{"Main vs Maple", DiffOther},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			if got := Classify(tt.note); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.note, got, tt.want)
			}
		})
	}
}

func TestScorePerfectMatch(t *testing.T) {
	res := Score(Input{
		CRMStreet: "100 Oak Ave", MailStreet: "100 Oak Ave",
		CRMCity: "Springfield", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit: UnitNone,
	})
	if res.Confidence != 100 {
		t.Errorf("Confidence = %d, want 100", res.Confidence)
	}
	if res.Notes != "perfect match" {
		t.Errorf("Notes = %q, want %q", res.Notes, "perfect match")
	}
}

func TestScoreAbbrevPenalty(t *testing.T) {
	res := Score(Input{
		CRMStreet: "100 Oak Street", MailStreet: "100 Oak St",
		CRMCity: "Springfield", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit: UnitNone,
	})
	if res.Confidence != 99 {
		t.Errorf("Confidence = %d, want 99 (one abbrev diff)", res.Confidence)
	}
	if !strings.Contains(res.Notes, "St vs Street") {
		t.Errorf("Notes = %q, want to mention the abbreviation", res.Notes)
	}
}

func TestScorePenaltyCap(t *testing.T) {
	// Four "other" class diffs plus typos can exceed the cap; deduction
	// before the unit penalty must not pass 12.
	res := Score(Input{
		CRMStreet: "100 Oak Walnut Chesnut Mapel St", MailStreet: "100 Elm Walnt Chestnut Maple St",
		CRMCity: "Sprngfield", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit: UnitNone,
	})
	if res.Confidence < 100-maxDiffPenalty {
		t.Errorf("Confidence = %d, diff penalty exceeded cap of %d", res.Confidence, maxDiffPenalty)
	}
	if res.Confidence == 100 {
		t.Error("Confidence = 100 despite diffs")
	}
}

func TestScoreOneSidedUnit(t *testing.T) {
	res := Score(Input{
		CRMStreet: "100 Oak Ave", MailStreet: "100 Oak Ave",
		CRMCity: "Springfield", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit: UnitOneSided,
	})
	if res.Confidence != 92 {
		t.Errorf("Confidence = %d, want 92 (one-sided unit)", res.Confidence)
	}
	if res.Notes != "difference detected" {
		t.Errorf("Notes = %q, want %q", res.Notes, "difference detected")
	}
}

func TestScoreFuzzyClamp(t *testing.T) {
	// A typo diff from a fuzzy match stays inside the mode band.
	res := Score(Input{
		CRMStreet: "123 Mainn St", MailStreet: "123 Main St",
		CRMCity: "Springfield", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit:      UnitNone,
		FuzzyUsed: true, FuzzyBase: 94, FuzzyFloor: 55,
	})
	if res.Confidence > 94 {
		t.Errorf("Confidence = %d, want <= loose base cap 94", res.Confidence)
	}
	if res.Confidence < 55 {
		t.Errorf("Confidence = %d, want >= loose floor 55", res.Confidence)
	}
}

func TestScoreFuzzyBenignBypass(t *testing.T) {
	// Only an abbreviation differs: the fuzzy clamp is bypassed and the
	// higher recomputed score kept.
	res := Score(Input{
		CRMStreet: "100 Oak Street", MailStreet: "100 Oak St",
		CRMCity: "Springfield", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit:      UnitNone,
		FuzzyUsed: true, FuzzyBase: 95, FuzzyFloor: 60,
	})
	if res.Confidence != 99 {
		t.Errorf("Confidence = %d, want 99 (benign bypass)", res.Confidence)
	}
}

func TestScoreFuzzyTieKeepsClamp(t *testing.T) {
	// Benign recompute equal to the clamped value changes nothing.
	res := Score(Input{
		CRMStreet: "100 Oak Street North", MailStreet: "100 Oak St N",
		CRMCity: "Springfield", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit:      UnitNone,
		FuzzyUsed: true, FuzzyBase: 98, FuzzyFloor: 60,
	})
	// Two abbrev diffs: recompute = 98 = clamped base; the tie keeps the
	// clamped value, so nothing moves.
	if res.Confidence != 98 {
		t.Errorf("Confidence = %d, want 98", res.Confidence)
	}
}

func TestScoreRawCityDifference(t *testing.T) {
	res := Score(Input{
		CRMStreet: "100 Oak Ave", MailStreet: "100 Oak Ave",
		CRMCity: "Spring field", MailCity: "Springfield",
		CRMState: "IL", MailState: "IL",
		CRMZip: "62704", MailZip: "62704",
		Unit: UnitNone,
	})
	if res.Confidence == 100 {
		t.Error("raw city spacing difference should cost confidence")
	}
	if !strings.Contains(res.Notes, "Springfield vs Spring field") {
		t.Errorf("Notes = %q, want raw city pair surfaced", res.Notes)
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		conf int
		want string
	}{
		{100, "green"},
		{96, "green"},
		{95, "yellow"},
		{86, "yellow"},
		{85, "red"},
		{60, "red"},
	}
	for _, tt := range tests {
		if got := Band(tt.conf); got != tt.want {
			t.Errorf("Band(%d) = %q, want %q", tt.conf, got, tt.want)
		}
	}
}
