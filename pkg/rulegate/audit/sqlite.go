package audit

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists decision records to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite audit store.
// The path should be a file path (e.g., "./audit.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Timestamps are stored as UTC unix nanoseconds so Prune can compare
	// them as integers.
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS decisions (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			check_id TEXT NOT NULL,
			rule_id TEXT NOT NULL,
			expression TEXT NOT NULL,
			allowed INTEGER NOT NULL,
			severity TEXT NOT NULL DEFAULT '',
			err_kind TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			snapshot BLOB,
			ts INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_decisions_check_id
		ON decisions(check_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create check index: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_decisions_rule_id
		ON decisions(rule_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create rule index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO decisions
			(id, version, check_id, rule_id, expression, allowed, severity, err_kind, message, snapshot, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Version, rec.CheckID, rec.RuleID, rec.Expression, rec.Allowed,
		rec.Severity, rec.ErrKind, rec.Message, []byte(rec.Snapshot), rec.Timestamp.UTC().UnixNano())

	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT id, version, check_id, rule_id, expression, allowed, severity, err_kind, message, snapshot, ts
		FROM decisions
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return rec, nil
}

// ByCheck implements Store.
func (s *SQLiteStore) ByCheck(checkID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, version, check_id, rule_id, expression, allowed, severity, err_kind, message, snapshot, ts
		FROM decisions
		WHERE check_id = ?
		ORDER BY rowid
	`, checkID)
	if err != nil {
		return nil, fmt.Errorf("list check records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ByRule implements Store.
func (s *SQLiteStore) ByRule(ruleID string, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	// SQLite treats a negative LIMIT as unlimited
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT id, version, check_id, rule_id, expression, allowed, severity, err_kind, message, snapshot, ts
		FROM decisions
		WHERE rule_id = ?
		ORDER BY rowid DESC
		LIMIT ?
	`, ruleID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rule records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Prune implements Store.
func (s *SQLiteStore) Prune(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	res, err := s.db.Exec(`
		DELETE FROM decisions WHERE ts < ?
	`, cutoff.UTC().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned records: %w", err)
	}
	return int(n), nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var snapshot []byte
	var ts int64

	err := row.Scan(&rec.ID, &rec.Version, &rec.CheckID, &rec.RuleID, &rec.Expression,
		&rec.Allowed, &rec.Severity, &rec.ErrKind, &rec.Message, &snapshot, &ts)
	if err != nil {
		return nil, err
	}

	if len(snapshot) > 0 {
		rec.Snapshot = snapshot
	}
	rec.Timestamp = time.Unix(0, ts).UTC()
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var recs []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return recs, nil
}
