package columns

import (
	"testing"

	"github.com/mailtrace/internal/tabular"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		roles    []string
		override map[string]string
		want     map[string]string
	}{
		{
			name:   "synonyms case-insensitive",
			header: []string{"Address 1", "CITY", "State", "Zip Code"},
			roles:  MailRoles,
			want: map[string]string{
				RoleAddress1: "Address 1",
				RoleCity:     "CITY",
				RoleState:    "State",
				RoleZip:      "Zip Code",
			},
		},
		{
			name:   "first synonym wins",
			header: []string{"street", "address1"},
			roles:  []string{RoleAddress1},
			want:   map[string]string{RoleAddress1: "address1"},
		},
		{
			name:     "override beats synonym when column exists",
			header:   []string{"Location", "street"},
			roles:    []string{RoleAddress1},
			override: map[string]string{RoleAddress1: "Location"},
			want:     map[string]string{RoleAddress1: "Location"},
		},
		{
			name:     "override ignored when column missing",
			header:   []string{"street"},
			roles:    []string{RoleAddress1},
			override: map[string]string{RoleAddress1: "Nope"},
			want:     map[string]string{RoleAddress1: "street"},
		},
		{
			name:   "unresolved role absent",
			header: []string{"foo", "bar"},
			roles:  []string{RoleAddress1, RoleCity},
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.header, tt.roles, tt.override)
			if len(got) != len(tt.want) {
				t.Fatalf("Resolve() = %v, want %v", got, tt.want)
			}
			for role, col := range tt.want {
				if got[role] != col {
					t.Errorf("Resolve()[%s] = %q, want %q", role, got[role], col)
				}
			}
		})
	}
}

func TestResolveBothMappingRequired(t *testing.T) {
	mail := &tabular.Table{
		Header: []string{"Location", "City"},
		Rows:   []tabular.Row{{"Location": "100 Oak Ave", "City": "Springfield"}},
	}
	crm := &tabular.Table{
		Header: []string{"Address 1", "City"},
		Rows:   []tabular.Row{{"Address 1": "100 Oak Ave", "City": "Springfield"}},
	}

	_, _, err := ResolveBoth(mail, crm, nil)
	if err == nil {
		t.Fatal("ResolveBoth() expected MappingRequiredError")
	}
	mre, ok := err.(*MappingRequiredError)
	if !ok {
		t.Fatalf("ResolveBoth() error type = %T, want *MappingRequiredError", err)
	}
	if len(mre.MailHeaders) != 2 || len(mre.CRMHeaders) != 2 {
		t.Errorf("payload headers missing: %v / %v", mre.MailHeaders, mre.CRMHeaders)
	}
	if len(mre.MailRows) != 1 {
		t.Errorf("payload sample rows = %d, want 1", len(mre.MailRows))
	}
	// CRM address1 resolved automatically, should be reported as pre-fill.
	if mre.AutoCRM[RoleAddress1] != "Address 1" {
		t.Errorf("AutoCRM[address1] = %q, want %q", mre.AutoCRM[RoleAddress1], "Address 1")
	}
	if mre.AutoMail[RoleAddress1] != "" {
		t.Errorf("AutoMail[address1] = %q, want unresolved", mre.AutoMail[RoleAddress1])
	}
}

func TestResolveBothSampleCap(t *testing.T) {
	rows := make([]tabular.Row, 250)
	for i := range rows {
		rows[i] = tabular.Row{"x": "y"}
	}
	mail := &tabular.Table{Header: []string{"x"}, Rows: rows}
	crm := &tabular.Table{Header: []string{"x"}, Rows: rows}

	_, _, err := ResolveBoth(mail, crm, nil)
	mre, ok := err.(*MappingRequiredError)
	if !ok {
		t.Fatalf("expected *MappingRequiredError, got %T", err)
	}
	if len(mre.MailRows) != 200 || len(mre.CRMRows) != 200 {
		t.Errorf("sample rows = %d/%d, want 200/200", len(mre.MailRows), len(mre.CRMRows))
	}
}

func TestResolveBothWithCompletedMapping(t *testing.T) {
	mail := &tabular.Table{Header: []string{"Location"}, Rows: nil}
	crm := &tabular.Table{Header: []string{"Site Addr"}, Rows: nil}
	mapping := &Mapping{
		Mail: map[string]string{RoleAddress1: "Location"},
		CRM:  map[string]string{RoleAddress1: "Site Addr"},
	}

	mailCols, crmCols, err := ResolveBoth(mail, crm, mapping)
	if err != nil {
		t.Fatalf("ResolveBoth() error = %v", err)
	}
	if mailCols[RoleAddress1] != "Location" || crmCols[RoleAddress1] != "Site Addr" {
		t.Errorf("resolved = %v / %v", mailCols, crmCols)
	}
}
