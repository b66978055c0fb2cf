package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mailtrace/internal/engine"
)

// matchHeader is the column order for exported match files. It mirrors the
// summary table layout, with the mail-side city and ZIP appended.
var matchHeader = []string{
	"Mail Address 1", "Mail Unit",
	"CRM Address 1", "CRM Unit",
	"City", "State", "ZIP",
	"Mail Dates", "CRM Date", "Amount",
	"Confidence", "Notes",
	"Mail City", "Mail ZIP",
}

// WriteMatches writes the match list as CSV to w.
func WriteMatches(w io.Writer, matches []engine.MatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, m := range matches {
		record := []string{
			m.MailAddress1, m.MailUnit,
			m.CRMAddress1, m.CRMUnit,
			m.City, m.State, m.Zip,
			m.MailDatesDisplay, m.CRMDateDisplay, m.AmountDisplay,
			strconv.Itoa(m.Confidence) + "%", m.Notes,
			m.MailCity, m.MailZip,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatchesFile writes the match list to path, creating parent
// directories as needed.
func WriteMatchesFile(path string, matches []engine.MatchResult) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteMatches(f, matches); err != nil {
		return err
	}
	return f.Close()
}
