// Package store implements the record-store collaborator on SQLite: the
// bank's reference tables (accounts, loans, branches) and the append-only
// user_feedback audit table.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"bankassist/internal/domain"
)

// SQLite is a record store backed by a single SQLite database file.
// Operations are synchronous; callers serialize access.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the database at path, applies the schema
// and seeds the reference tables on first run.
func Open(path string, log zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLite{db: db, log: log}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("path", path).Msg("record store ready")
	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY,
			type TEXT,
			description TEXT,
			min_balance REAL,
			interest_rate REAL
		)`,
		`CREATE TABLE IF NOT EXISTS loans (
			id INTEGER PRIMARY KEY,
			type TEXT,
			description TEXT,
			interest_rate REAL,
			max_amount REAL,
			min_term INTEGER,
			max_term INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS branches (
			id INTEGER PRIMARY KEY,
			branch_name TEXT,
			branch_code INTEGER,
			address TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS user_feedback (
			id INTEGER PRIMARY KEY,
			query TEXT,
			response TEXT,
			feedback INTEGER,
			timestamp TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// ListAccountTypes returns every deposit product on offer.
func (s *SQLite) ListAccountTypes() ([]domain.AccountType, error) {
	rows, err := s.db.Query(`SELECT type, description, min_balance, interest_rate FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list account types: %w", err)
	}
	defer rows.Close()
	var out []domain.AccountType
	for rows.Next() {
		var a domain.AccountType
		if err := rows.Scan(&a.Type, &a.Description, &a.MinBalance, &a.InterestRate); err != nil {
			return nil, fmt.Errorf("list account types: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListLoanTypes returns every lending product on offer.
func (s *SQLite) ListLoanTypes() ([]domain.LoanType, error) {
	rows, err := s.db.Query(`SELECT type, description, interest_rate, max_amount, min_term, max_term FROM loans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list loan types: %w", err)
	}
	defer rows.Close()
	var out []domain.LoanType
	for rows.Next() {
		var l domain.LoanType
		if err := rows.Scan(&l.Type, &l.Description, &l.InterestRate, &l.MaxAmount, &l.MinTermYears, &l.MaxTermYears); err != nil {
			return nil, fmt.Errorf("list loan types: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListBranches returns every branch.
func (s *SQLite) ListBranches() ([]domain.Branch, error) {
	rows, err := s.db.Query(`SELECT branch_name, branch_code, address FROM branches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var out []domain.Branch
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.Name, &b.Code, &b.Address); err != nil {
			return nil, fmt.Errorf("list branches: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// AppendFeedback inserts one audit row for a feedback submission.
func (s *SQLite) AppendFeedback(rec domain.FeedbackRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO user_feedback (query, response, feedback, timestamp) VALUES (?, ?, ?, ?)`,
		rec.Query, rec.Response, rec.Rating, rec.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}

// ListFeedback returns the full audit trail in insertion order.
func (s *SQLite) ListFeedback() ([]domain.FeedbackRecord, error) {
	rows, err := s.db.Query(`SELECT query, response, feedback, timestamp FROM user_feedback ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()
	var out []domain.FeedbackRecord
	for rows.Next() {
		var rec domain.FeedbackRecord
		var ts string
		if err := rows.Scan(&rec.Query, &rec.Response, &rec.Rating, &ts); err != nil {
			return nil, fmt.Errorf("list feedback: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
