package engine

import (
	"github.com/mailtrace/internal/score"
	"github.com/mailtrace/internal/stats"
)

// MatchResult is one linked CRM record: exactly one CRM row, at most one
// mail row (a mail row may appear in several results — one mailing can
// generate several jobs). Raw values are kept alongside their display
// forms; the display forms are what the dashboard and CSV export show.
type MatchResult struct {
	CRMIndex  int `json:"crmIndex"`
	MailIndex int `json:"mailIndex"`

	MailAddress1 string `json:"mailAddress1"`
	MailUnit     string `json:"mailUnit"`
	CRMAddress1  string `json:"crmAddress1"`
	CRMUnit      string `json:"crmUnit"`

	// CRM values are authoritative for identity; the mail copies feed the
	// per-city and per-zip aggregation.
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	MailCity string `json:"mailCity"`
	MailZip  string `json:"mailZip"`

	MailDates        []string `json:"mailDates"`
	MailDatesDisplay string   `json:"mailDatesDisplay"`
	CRMDate          string   `json:"crmDate"`
	CRMDateDisplay   string   `json:"crmDateDisplay"`
	Amount           string   `json:"amount"`
	AmountDisplay    string   `json:"amountDisplay"`

	Confidence int    `json:"confidence"`
	Band       string `json:"band"`
	Notes      string `json:"notes"`

	FuzzyUsed bool           `json:"fuzzyUsed"`
	UnitCase  score.UnitCase `json:"unitCase"`
}

// Result is the engine's output for one run: the ordered match list plus
// the aggregate statistics derived from it.
type Result struct {
	Matches []MatchResult       `json:"matches"`
	Stats   stats.RunStatistics `json:"stats"`
}
