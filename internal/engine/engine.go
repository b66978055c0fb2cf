package engine

import (
	"sync"

	"github.com/mailtrace/internal/columns"
	"github.com/mailtrace/internal/debug"
	"github.com/mailtrace/internal/normalize"
	"github.com/mailtrace/internal/score"
	"github.com/mailtrace/internal/stats"
	"github.com/mailtrace/internal/tabular"
)

// Run executes one full matching run: parse both tables, resolve columns,
// normalize and index the mail side, match every CRM row, score and
// date-resolve each match, then aggregate. The run is a single synchronous
// batch — no state survives it. Errors are either a *tabular.ParseError,
// a recoverable *columns.MappingRequiredError (caller supplies a completed
// mapping and re-invokes), or nil.
func Run(mailText, crmText string, mapping *columns.Mapping, opts Options) (*Result, error) {
	mailTable, err := tabular.Parse(mailText)
	if err != nil {
		return nil, err
	}
	crmTable, err := tabular.Parse(crmText)
	if err != nil {
		return nil, err
	}
	return RunTables(mailTable, crmTable, mapping, opts)
}

// RunTables is Run for already-parsed tables.
func RunTables(mailTable, crmTable *tabular.Table, mapping *columns.Mapping, opts Options) (*Result, error) {
	mailCols, crmCols, err := columns.ResolveBoth(mailTable, crmTable, mapping)
	if err != nil {
		return nil, err
	}

	mailSide := side{table: mailTable, cols: mailCols}
	crmSide := side{table: crmTable, cols: crmCols}

	defer debug.Timing(opts.Debug, "matching run")()

	mailRecords := buildRecords(mailSide)
	crmRecords := buildRecords(crmSide)
	index := BuildIndex(mailRecords)
	mailDates := buildMailDates(mailSide, mailRecords)

	m := &matcher{index: index, opts: opts}
	matches := matchAll(m, crmSide, crmRecords, mailSide, mailDates, opts)

	debug.Trace(opts.Debug, "matched %d of %d crm rows", len(matches), len(crmRecords))

	return &Result{
		Matches: matches,
		Stats:   stats.Compute(statsInput(mailSide, crmSide, index, mailDates, matches)),
	}, nil
}

// matchAll runs the per-CRM-record loop, optionally across workers. Workers
// only read the shared index and date index; each writes its outcome into a
// per-row slot, so the emitted order is always original CRM row order.
func matchAll(m *matcher, crmSide side, crmRecords []*Record, mailSide side, mailDates mailDateIndex, opts Options) []MatchResult {
	slots := make([]*MatchResult, len(crmRecords))

	work := func(cr *Record) {
		out, ok := m.matchOne(cr)
		if !ok {
			return
		}
		res := assemble(crmSide, mailSide, cr, out, mailDates, opts)
		slots[cr.Index] = &res
	}

	if opts.Workers > 1 && len(crmRecords) > 1 {
		var wg sync.WaitGroup
		ch := make(chan *Record)
		for w := 0; w < opts.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for cr := range ch {
					work(cr)
				}
			}()
		}
		for _, cr := range crmRecords {
			ch <- cr
		}
		close(ch)
		wg.Wait()
	} else {
		for _, cr := range crmRecords {
			work(cr)
		}
	}

	matches := make([]MatchResult, 0, len(crmRecords))
	for _, slot := range slots {
		if slot != nil {
			matches = append(matches, *slot)
		}
	}
	return matches
}

// assemble scores one decided match and fills in the emitted MatchResult.
func assemble(crmSide, mailSide side, cr *Record, out outcome, mailDates mailDateIndex, opts Options) MatchResult {
	mr := out.mail
	th := opts.thresholds()

	scored := score.Score(score.Input{
		CRMStreet:  crmSide.value(cr.Row, "address1"),
		MailStreet: mailSide.value(mr.Row, "address1"),
		CRMCity:    crmSide.value(cr.Row, "city"),
		MailCity:   mailSide.value(mr.Row, "city"),
		CRMState:   crmSide.value(cr.Row, "state"),
		MailState:  mailSide.value(mr.Row, "state"),
		CRMZip:     crmSide.value(cr.Row, "zip"),
		MailZip:    mailSide.value(mr.Row, "zip"),
		Unit:       out.unitCase,
		FuzzyUsed:  out.fuzzyUsed,
		FuzzyBase:  th.Base,
		FuzzyFloor: th.Floor,
	})

	crmDate := crmSide.value(cr.Row, "crm_date")
	amount := crmSide.value(cr.Row, "amount")
	resolved := mailDates.resolve(mr.Key, crmDate)

	return MatchResult{
		CRMIndex:         cr.Index,
		MailIndex:        mr.Index,
		MailAddress1:     mailSide.value(mr.Row, "address1"),
		MailUnit:         mr.Unit,
		CRMAddress1:      crmSide.value(cr.Row, "address1"),
		CRMUnit:          cr.Unit,
		City:             crmSide.value(cr.Row, "city"),
		State:            crmSide.value(cr.Row, "state"),
		Zip:              normalize.Zip5(crmSide.value(cr.Row, "zip")),
		MailCity:         mailSide.value(mr.Row, "city"),
		MailZip:          normalize.Zip5(mailSide.value(mr.Row, "zip")),
		MailDates:        resolved,
		MailDatesDisplay: normalize.FormatDates(resolved),
		CRMDate:          crmDate,
		CRMDateDisplay:   normalize.FormatDate(crmDate),
		Amount:           amount,
		AmountDisplay:    normalize.FormatAmount(amount),
		Confidence:       scored.Confidence,
		Band:             score.Band(scored.Confidence),
		Notes:            scored.Notes,
		FuzzyUsed:        out.fuzzyUsed,
		UnitCase:         out.unitCase,
	}
}

// statsInput projects the run into the aggregator's plain-value input.
func statsInput(mailSide, crmSide side, index *BlockingIndex, mailDates mailDateIndex, matches []MatchResult) stats.Input {
	in := stats.Input{
		MailRows:       len(mailSide.table.Rows),
		CRMRows:        len(crmSide.table.Rows),
		UniqueMailKeys: index.UniqueKeys(),
	}

	for _, row := range mailSide.table.Rows {
		in.MailCities = append(in.MailCities, mailSide.value(row, "city"))
		in.MailZips = append(in.MailZips, normalize.Zip5(mailSide.value(row, "zip")))
	}
	for _, dates := range mailDates {
		in.MailDates = append(in.MailDates, dates...)
	}
	for _, row := range crmSide.table.Rows {
		in.CRMDates = append(in.CRMDates, crmSide.value(row, "crm_date"))
	}

	for _, m := range matches {
		amount, ok := normalize.ParseAmount(m.Amount)
		in.Matches = append(in.Matches, stats.Match{
			MailCity:       m.MailCity,
			MailZip:        m.MailZip,
			MailDates:      m.MailDates,
			CRMDate:        m.CRMDate,
			CRMDateDisplay: m.CRMDateDisplay,
			Amount:         amount,
			AmountOK:       ok,
		})
	}

	return in
}
