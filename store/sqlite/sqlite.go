/*
Package sqlite provides the SQLite-backed award rate store.

PURPOSE:
  Persists the MAP award export tables (awards, classifications, penalty
  rates, wage/expense allowances) and API keys, and resolves per-
  classification hourly rates for the calculation engines. In production
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  awards:             Award registry (code, name, operative window)
  classifications:    Base weekly/hourly rates per classification level
  penalty_rates:      Penalty descriptions with calculated hourly values
  wage_allowances:    Wage-linked allowances per award
  expense_allowances: Expense reimbursement allowances per award
  api_keys:           Hashed API keys with usage counters

LOOKUP MODEL:
  Rates are matched by keywords in the penalty description (see rates.go),
  scoped by (award_code, employee_rate_type_code, classification_level).
  An exact employment-type match is tried first, then the 'AD' (adult)
  fallback rows. Lookup failure is ErrNotFound, never a fabricated rate -
  callers fall back to the built-in award.Default() constants.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety around the usage-counter updates.
  SQLite is opened in WAL mode so readers don't block each other.

USAGE:
  store, err := sqlite.New("./data/rates.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  rates, err := store.LookupResolvedRates(ctx, "MA000004", "CA", 1)

SEE ALSO:
  - rates.go: keyword matching and rate resolution
  - seed.go: CSV import from the MAP export files
  - apikeys.go: key generation, validation, metering
*/
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound signals that no matching row exists. Rate-lookup callers
// treat it as "fall back to built-in constants", not as a failure.
var ErrNotFound = errors.New("not found")

// Store implements rate lookups and API-key persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS awards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		award_id TEXT UNIQUE,
		award_fixed_id TEXT,
		award_code TEXT NOT NULL,
		name TEXT NOT NULL,
		version_number TEXT,
		award_operative_from TEXT,
		award_operative_to TEXT,
		last_modified_datetime TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_awards_code ON awards(award_code);

	CREATE TABLE IF NOT EXISTS classifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		award_code TEXT NOT NULL,
		employee_rate_type_code TEXT NOT NULL,
		classification TEXT NOT NULL,
		classification_level INTEGER NOT NULL,
		base_rate REAL,
		base_rate_type TEXT,
		calculated_rate REAL,
		calculated_rate_type TEXT,
		operative_from TEXT,
		operative_to TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_classifications_lookup
		ON classifications(award_code, employee_rate_type_code, classification_level);

	CREATE TABLE IF NOT EXISTS wage_allowances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		award_code TEXT NOT NULL,
		allowance TEXT,
		type TEXT,
		rate REAL,
		base_rate REAL,
		rate_unit TEXT,
		allowance_amount REAL,
		payment_frequency TEXT,
		operative_from TEXT,
		operative_to TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_wage_allowances_code ON wage_allowances(award_code);

	CREATE TABLE IF NOT EXISTS expense_allowances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		award_code TEXT NOT NULL,
		allowance TEXT,
		allowance_amount REAL,
		payment_frequency TEXT,
		operative_from TEXT,
		operative_to TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_expense_allowances_code ON expense_allowances(award_code);

	CREATE TABLE IF NOT EXISTS penalty_rates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		award_code TEXT NOT NULL,
		employee_rate_type_code TEXT NOT NULL,
		classification TEXT NOT NULL,
		classification_level INTEGER NOT NULL,
		penalty_description TEXT NOT NULL,
		rate REAL,
		penalty_rate_unit TEXT,
		penalty_calculated_value REAL,
		operative_from TEXT,
		operative_to TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_penalty_rates_lookup
		ON penalty_rates(award_code, employee_rate_type_code, classification_level);

	CREATE TABLE IF NOT EXISTS api_keys (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		org_id TEXT NOT NULL,
		org_name TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		key_prefix TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		last_used_at TEXT,
		total_calls INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_api_keys_org ON api_keys(org_id);
	`
	_, err := s.db.Exec(schema)
	return err
}
