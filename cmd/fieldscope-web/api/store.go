package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite persistence for coverage checks.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new store with the given database path.
// Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS checks (
		id TEXT PRIMARY KEY,
		plan_name TEXT NOT NULL,
		covered INTEGER NOT NULL,
		device_count INTEGER NOT NULL DEFAULT 0,
		segment_count INTEGER NOT NULL DEFAULT 0,
		duration_us INTEGER NOT NULL DEFAULT 0,
		segments_json TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_checks_plan_name ON checks(plan_name);
	CREATE INDEX IF NOT EXISTS idx_checks_created_at ON checks(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateCheck persists a completed check.
func (s *Store) CreateCheck(check *Check) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	segmentsJSON, err := json.Marshal(check.Segments)
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO checks (id, plan_name, covered, device_count, segment_count, duration_us, segments_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, check.ID, check.PlanName, check.Covered, check.DeviceCount, check.SegmentCount,
		check.DurationUS, string(segmentsJSON), check.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert check: %w", err)
	}

	return nil
}

// GetCheck returns the check with the given ID, or nil if not found.
func (s *Store) GetCheck(id string) (*Check, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, plan_name, covered, device_count, segment_count, duration_us, segments_json, created_at
		FROM checks WHERE id = ?
	`, id)

	check, err := scanCheck(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check: %w", err)
	}
	return check, nil
}

// ListChecks returns checks ordered by creation time, newest first.
// Segment details are included for each check.
func (s *Store) ListChecks(limit, offset int) ([]Check, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, plan_name, covered, device_count, segment_count, duration_us, segments_json, created_at
		FROM checks ORDER BY created_at DESC, id LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		check, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		checks = append(checks, *check)
	}
	return checks, rows.Err()
}

// CountChecks returns the total number of stored checks.
func (s *Store) CountChecks() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM checks`).Scan(&count)
	return count, err
}

// scanner abstracts *sql.Row and *sql.Rows for scanCheck.
type scanner interface {
	Scan(dest ...any) error
}

func scanCheck(row scanner) (*Check, error) {
	var check Check
	var segmentsJSON sql.NullString

	err := row.Scan(&check.ID, &check.PlanName, &check.Covered, &check.DeviceCount,
		&check.SegmentCount, &check.DurationUS, &segmentsJSON, &check.CreatedAt)
	if err != nil {
		return nil, err
	}

	if segmentsJSON.Valid && segmentsJSON.String != "" {
		if err := json.Unmarshal([]byte(segmentsJSON.String), &check.Segments); err != nil {
			return nil, fmt.Errorf("failed to decode segments: %w", err)
		}
	}

	return &check, nil
}
