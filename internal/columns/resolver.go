package columns

import (
	"strings"

	"github.com/mailtrace/internal/tabular"
)

// sampleRowLimit caps how many rows per side ride along on a
// MappingRequiredError for the mapper UI's preview.
const sampleRowLimit = 200

// MappingRequiredError is the recoverable control signal raised when the
// required address1 role cannot be resolved on one or both sides. It carries
// everything the external column-mapper needs to pre-fill a correction form;
// the caller supplies a completed Mapping and re-invokes the engine.
type MappingRequiredError struct {
	MailHeaders []string            `json:"mailHeaders"`
	CRMHeaders  []string            `json:"crmHeaders"`
	MailRows    []tabular.Row       `json:"mailRows"`
	CRMRows     []tabular.Row       `json:"crmRows"`
	Synonyms    map[string][]string `json:"synonyms"`
	AutoMail    map[string]string   `json:"autoMail"`
	AutoCRM     map[string]string   `json:"autoCRM"`
}

func (e *MappingRequiredError) Error() string {
	return "column mapping required: address1 could not be resolved"
}

// Resolve determines which header column plays each role for one side.
// A Mapping override wins when it names a column that actually exists in the
// header; otherwise the first case-insensitive synonym hit is used; roles
// with neither stay absent from the result.
func Resolve(header []string, roles []string, override map[string]string) map[string]string {
	resolved := make(map[string]string, len(roles))
	for _, role := range roles {
		if col := override[role]; col != "" && headerContains(header, col) {
			resolved[role] = col
			continue
		}
		if col := pickSynonym(header, Synonyms[role]); col != "" {
			resolved[role] = col
		}
	}
	return resolved
}

// ResolveBoth resolves both sides and raises MappingRequiredError when
// address1 is missing on either. The payload samples at most 200 rows per
// side and reports whatever was auto-resolved so the mapper can pre-fill.
func ResolveBoth(mail, crm *tabular.Table, mapping *Mapping) (mailCols, crmCols map[string]string, err error) {
	mailCols = Resolve(mail.Header, MailRoles, mapping.Side("mail"))
	crmCols = Resolve(crm.Header, CRMRoles, mapping.Side("crm"))

	if mailCols[RoleAddress1] != "" && crmCols[RoleAddress1] != "" {
		return mailCols, crmCols, nil
	}

	return nil, nil, &MappingRequiredError{
		MailHeaders: mail.Header,
		CRMHeaders:  crm.Header,
		MailRows:    sampleRows(mail.Rows),
		CRMRows:     sampleRows(crm.Rows),
		Synonyms:    Synonyms,
		AutoMail:    mailCols,
		AutoCRM:     crmCols,
	}
}

func pickSynonym(header []string, synonyms []string) string {
	for _, syn := range synonyms {
		for _, col := range header {
			if strings.EqualFold(col, syn) {
				return col
			}
		}
	}
	return ""
}

func headerContains(header []string, name string) bool {
	for _, col := range header {
		if col == name {
			return true
		}
	}
	return false
}

func sampleRows(rows []tabular.Row) []tabular.Row {
	if len(rows) > sampleRowLimit {
		return rows[:sampleRowLimit]
	}
	return rows
}
