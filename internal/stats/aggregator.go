package stats

import (
	"sort"

	"github.com/mailtrace/internal/normalize"
)

// topListSize caps the city/zip leaderboards.
const topListSize = 10

// Match is the aggregator's view of one match result. The aggregator is a
// pure function over plain values, so it stays testable without the engine.
type Match struct {
	MailCity       string
	MailZip        string
	MailDates      []string // resolved raw dates, ascending
	CRMDate        string   // raw
	CRMDateDisplay string   // MM-DD-YYYY form, feeds the monthly series
	Amount         float64
	AmountOK       bool
}

// Input carries everything RunStatistics derives from: row counts, the
// per-row city/zip/date projections of both tables, and the match list.
type Input struct {
	MailRows       int
	CRMRows        int
	UniqueMailKeys int
	MailCities     []string // raw trimmed city per mail row
	MailZips       []string // zip5 per mail row
	MailDates      []string // distinct (key, date) mail dates, raw
	CRMDates       []string // raw CRM date per row
	Matches        []Match
}

// CountEntry is one leaderboard row: matched volume plus the mail-side
// denominator for the rate column.
type CountEntry struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	MailTotal int    `json:"mailTotal"`
}

// Series holds the aligned monthly histograms and their prior-year
// overlays. All slices share Months' length and order.
type Series struct {
	Months     []string `json:"months"`
	Mail       []int    `json:"mail"`
	CRM        []int    `json:"crm"`
	Matches    []int    `json:"matches"`
	MailYoY    []int    `json:"mailYoY"`
	CRMYoY     []int    `json:"crmYoY"`
	MatchesYoY []int    `json:"matchesYoY"`
}

// KPIs are the run's summary numbers. Percentages are whole numbers;
// currency values are raw floats, formatted at the edges.
type KPIs struct {
	MailCount           int     `json:"mailCount"`
	CRMCount            int     `json:"crmCount"`
	MatchCount          int     `json:"matchCount"`
	UniqueMailAddresses int     `json:"uniqueMailAddresses"`
	MatchRate           float64 `json:"matchRate"` // percent of mail rows matched
	Revenue             float64 `json:"revenue"`
	RevenuePerMailer    float64 `json:"revenuePerMailer"`
	AvgTicket           float64 `json:"avgTicket"`
	MedianDaysToConvert int     `json:"medianDaysToConvert"`
	ConvertedWithin30   int     `json:"convertedWithin30"` // percent of day-valid matches
	ConvertedWithin60   int     `json:"convertedWithin60"`
	ConvertedWithin90   int     `json:"convertedWithin90"`
}

// RunStatistics is the aggregate output of one run, recomputed from the
// tables and matches every time; it has no identity of its own.
type RunStatistics struct {
	KPIs      KPIs         `json:"kpis"`
	TopCities []CountEntry `json:"topCities"`
	TopZips   []CountEntry `json:"topZips"`
	Series    Series       `json:"series"`
}

// Compute derives the full RunStatistics from one run's inputs.
func Compute(in Input) RunStatistics {
	return RunStatistics{
		KPIs:      computeKPIs(in),
		TopCities: topList(matchedCities(in.Matches), totals(in.MailCities)),
		TopZips:   topList(matchedZips(in.Matches), totals(in.MailZips)),
		Series:    computeSeries(in),
	}
}

func computeKPIs(in Input) KPIs {
	k := KPIs{
		MailCount:           in.MailRows,
		CRMCount:            in.CRMRows,
		MatchCount:          len(in.Matches),
		UniqueMailAddresses: in.UniqueMailKeys,
	}

	for _, m := range in.Matches {
		if m.AmountOK {
			k.Revenue += m.Amount
		}
	}
	if in.MailRows > 0 {
		k.MatchRate = float64(len(in.Matches)) / float64(in.MailRows) * 100
		k.RevenuePerMailer = k.Revenue / float64(in.MailRows)
	}
	if len(in.Matches) > 0 {
		k.AvgTicket = k.Revenue / float64(len(in.Matches))
	}

	// Days from the earliest qualifying mail date to the CRM date. Matches
	// with an unparseable date on either side are excluded from the window
	// percentages and the median.
	var dayDiffs []int
	var c30, c60, c90 int
	for _, m := range in.Matches {
		days, ok := daysToConvert(m)
		if !ok {
			continue
		}
		dayDiffs = append(dayDiffs, days)
		if days <= 30 {
			c30++
		}
		if days <= 60 {
			c60++
		}
		if days <= 90 {
			c90++
		}
	}
	valid := len(dayDiffs)
	if valid > 0 {
		k.MedianDaysToConvert = median(dayDiffs)
		k.ConvertedWithin30 = pct(c30, valid)
		k.ConvertedWithin60 = pct(c60, valid)
		k.ConvertedWithin90 = pct(c90, valid)
	}

	return k
}

func daysToConvert(m Match) (int, bool) {
	crm, ok := normalize.Date(m.CRMDate)
	if !ok {
		return 0, false
	}
	earliestSet := false
	var earliest = crm
	for _, d := range m.MailDates {
		t, ok := normalize.Date(d)
		if !ok {
			continue
		}
		if !earliestSet || t.Before(earliest) {
			earliest = t
			earliestSet = true
		}
	}
	if !earliestSet {
		return 0, false
	}
	return int(crm.Sub(earliest).Hours() / 24), true
}

func median(values []int) int {
	sort.Ints(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid] + 1) / 2
	}
	return values[mid]
}

func pct(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(float64(num)/float64(den)*100 + 0.5)
}

// counted tallies values while remembering first-seen order, so leaderboard
// ties resolve the same way run after run.
type counted struct {
	counts map[string]int
	order  []string
}

func newCounted() *counted {
	return &counted{counts: make(map[string]int)}
}

func (c *counted) add(name string) {
	if name == "" {
		return
	}
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func matchedCities(matches []Match) *counted {
	c := newCounted()
	for _, m := range matches {
		c.add(m.MailCity)
	}
	return c
}

func matchedZips(matches []Match) *counted {
	c := newCounted()
	for _, m := range matches {
		c.add(m.MailZip)
	}
	return c
}

func totals(values []string) map[string]int {
	t := make(map[string]int)
	for _, v := range values {
		if v != "" {
			t[v]++
		}
	}
	return t
}

func topList(c *counted, denom map[string]int) []CountEntry {
	entries := make([]CountEntry, 0, len(c.order))
	for _, name := range c.order {
		entries = append(entries, CountEntry{Name: name, Count: c.counts[name], MailTotal: denom[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > topListSize {
		entries = entries[:topListSize]
	}
	return entries
}

func computeSeries(in Input) Series {
	var mailMonths, crmMonths, matchMonths []string
	monthSet := make(map[string]bool)

	bucket := func(raw string, dst *[]string) {
		if mk, ok := normalize.MonthKey(raw); ok {
			*dst = append(*dst, mk)
			monthSet[mk] = true
		}
	}

	for _, d := range in.MailDates {
		bucket(d, &mailMonths)
	}
	for _, d := range in.CRMDates {
		bucket(d, &crmMonths)
	}
	for _, m := range in.Matches {
		bucket(m.CRMDateDisplay, &matchMonths)
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	return Series{
		Months:     months,
		Mail:       countSeries(months, mailMonths, false),
		CRM:        countSeries(months, crmMonths, false),
		Matches:    countSeries(months, matchMonths, false),
		MailYoY:    countSeries(months, mailMonths, true),
		CRMYoY:     countSeries(months, crmMonths, true),
		MatchesYoY: countSeries(months, matchMonths, true),
	}
}

// countSeries counts bucket hits per label; with yoy set, each label counts
// the same month one year earlier.
func countSeries(labels []string, buckets []string, yoy bool) []int {
	counts := make(map[string]int, len(buckets))
	for _, b := range buckets {
		counts[b]++
	}
	out := make([]int, len(labels))
	for i, label := range labels {
		key := label
		if yoy {
			key = normalize.PrevYearMonth(label)
		}
		out[i] = counts[key]
	}
	return out
}
