package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mailtrace/internal/config"
	"github.com/mailtrace/internal/engine"
	"github.com/mailtrace/internal/stats"
)

// Store persists runs and their match lists in Postgres. Statistics are
// stored as JSON alongside the run row; match rows get a table of their own
// so they can be queried per run.
type Store struct {
	DB *sql.DB
}

// Open connects using the standard PG* environment variables.
func Open() (*Store, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "mailtrace")
	password := config.GetEnv("PGPASSWORD", "mailtrace")
	dbname := config.GetEnv("PGDATABASE", "mailtrace")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Store{DB: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// EnsureSchema creates the run tables if they do not exist.
func (s *Store) EnsureSchema() error {
	_, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id      BIGSERIAL PRIMARY KEY,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			mode        TEXT NOT NULL,
			fuzzy       BOOLEAN NOT NULL,
			mail_rows   INTEGER NOT NULL,
			crm_rows    INTEGER NOT NULL,
			match_count INTEGER NOT NULL,
			statistics  JSONB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_matches (
			run_id         BIGINT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			ordinal        INTEGER NOT NULL,
			mail_address1  TEXT NOT NULL,
			mail_unit      TEXT NOT NULL,
			crm_address1   TEXT NOT NULL,
			crm_unit       TEXT NOT NULL,
			city           TEXT NOT NULL,
			state          TEXT NOT NULL,
			zip            TEXT NOT NULL,
			mail_dates     TEXT NOT NULL,
			crm_date       TEXT NOT NULL,
			amount         TEXT NOT NULL,
			confidence     INTEGER NOT NULL,
			band           TEXT NOT NULL,
			notes          TEXT NOT NULL,
			fuzzy_used     BOOLEAN NOT NULL,
			PRIMARY KEY (run_id, ordinal)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RunSummary is the list view of a persisted run.
type RunSummary struct {
	RunID      int64     `json:"runId"`
	CreatedAt  time.Time `json:"createdAt"`
	Mode       string    `json:"mode"`
	Fuzzy      bool      `json:"fuzzy"`
	MailRows   int       `json:"mailRows"`
	CRMRows    int       `json:"crmRows"`
	MatchCount int       `json:"matchCount"`
}

// RunDetail is a full persisted run: its summary row, the statistics blob
// and the match list.
type RunDetail struct {
	RunSummary
	Stats   stats.RunStatistics  `json:"stats"`
	Matches []engine.MatchResult `json:"matches"`
}

// SaveRun persists one run and returns its id.
func (s *Store) SaveRun(res *engine.Result, opts engine.Options) (int64, error) {
	statsJSON, err := json.Marshal(res.Stats)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal statistics: %w", err)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRow(`
		INSERT INTO runs (mode, fuzzy, mail_rows, crm_rows, match_count, statistics)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING run_id
	`, string(opts.Mode), opts.FuzzyEnabled,
		res.Stats.KPIs.MailCount, res.Stats.KPIs.CRMCount,
		len(res.Matches), statsJSON).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_matches (
			run_id, ordinal, mail_address1, mail_unit, crm_address1, crm_unit,
			city, state, zip, mail_dates, crm_date, amount,
			confidence, band, notes, fuzzy_used
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range res.Matches {
		_, err := stmt.Exec(runID, i,
			m.MailAddress1, m.MailUnit, m.CRMAddress1, m.CRMUnit,
			m.City, m.State, m.Zip,
			m.MailDatesDisplay, m.CRMDateDisplay, m.AmountDisplay,
			m.Confidence, m.Band, m.Notes, m.FuzzyUsed)
		if err != nil {
			return 0, fmt.Errorf("failed to insert match %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.Query(`
		SELECT run_id, created_at, mode, fuzzy, mail_rows, crm_rows, match_count
		FROM runs
		ORDER BY run_id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Mode, &r.Fuzzy,
			&r.MailRows, &r.CRMRows, &r.MatchCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun loads one run with its statistics and match list.
func (s *Store) GetRun(runID int64) (*RunDetail, error) {
	var d RunDetail
	var statsJSON []byte
	err := s.DB.QueryRow(`
		SELECT run_id, created_at, mode, fuzzy, mail_rows, crm_rows, match_count, statistics
		FROM runs WHERE run_id = $1
	`, runID).Scan(&d.RunID, &d.CreatedAt, &d.Mode, &d.Fuzzy,
		&d.MailRows, &d.CRMRows, &d.MatchCount, &statsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	if err := json.Unmarshal(statsJSON, &d.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode statistics: %w", err)
	}

	rows, err := s.DB.Query(`
		SELECT mail_address1, mail_unit, crm_address1, crm_unit,
		       city, state, zip, mail_dates, crm_date, amount,
		       confidence, band, notes, fuzzy_used
		FROM run_matches WHERE run_id = $1 ORDER BY ordinal
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for run %d: %w", runID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m engine.MatchResult
		if err := rows.Scan(&m.MailAddress1, &m.MailUnit, &m.CRMAddress1, &m.CRMUnit,
			&m.City, &m.State, &m.Zip,
			&m.MailDatesDisplay, &m.CRMDateDisplay, &m.AmountDisplay,
			&m.Confidence, &m.Band, &m.Notes, &m.FuzzyUsed); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		d.Matches = append(d.Matches, m)
	}
	return &d, rows.Err()
}
