// Package archive persists each run's collected items to SQLite. The
// archive is append-only history for later inspection; it is never read
// back during a run and plays no part in deduplication.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	spravodaj "github.com/rewizard001/osobny-spravodaj"
)

// Store manages the run archive using SQLite.
type Store struct {
	db *sql.DB
}

// RunSummary describes one archived run.
type RunSummary struct {
	RunID        uuid.UUID `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	ItemCount    int       `json:"item_count"`
	WarningCount int       `json:"warning_count"`
}

// Open opens (or creates) the archive database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the archive tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		item_count INTEGER NOT NULL,
		warning_count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_items (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		source_id TEXT NOT NULL,
		source_name TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		published TEXT,
		summary TEXT NOT NULL,
		geo TEXT NOT NULL,
		brief_level TEXT NOT NULL,
		tags TEXT NOT NULL,
		score INTEGER NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun appends one run and its items to the archive and returns the
// generated run id. The insert is transactional: a failed run record never
// leaves partial item rows behind.
func (s *Store) RecordRun(startedAt time.Time, items []spravodaj.Item, warnings []string) (uuid.UUID, error) {
	runID := uuid.New()

	tx, err := s.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (run_id, started_at, item_count, warning_count) VALUES (?, ?, ?, ?)",
		runID.String(), startedAt.Format(time.RFC3339), len(items), len(warnings),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_items
		(run_id, position, source_id, source_name, title, url, published, summary, geo, brief_level, tags, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		tags, err := json.Marshal(it.Tags)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal tags: %w", err)
		}

		var published *string
		if it.Published != nil {
			published = it.Published
		}

		_, err = stmt.Exec(
			runID.String(), i,
			it.SourceID, it.SourceName, it.Title, it.URL,
			published, it.Summary, it.Geo, it.BriefLevel, string(tags), it.Score,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns all archived runs, most recent first.
func (s *Store) ListRuns() ([]RunSummary, error) {
	rows, err := s.db.Query(
		"SELECT run_id, started_at, item_count, warning_count FROM runs ORDER BY started_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run       RunSummary
			id        string
			startedAt string
		)
		if err := rows.Scan(&id, &startedAt, &run.ItemCount, &run.WarningCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.RunID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run_id: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunItems returns the items of one archived run in their stored order.
func (s *Store) RunItems(runID uuid.UUID) ([]spravodaj.Item, error) {
	rows, err := s.db.Query(`
		SELECT source_id, source_name, title, url, published, summary, geo, brief_level, tags, score
		FROM run_items WHERE run_id = ? ORDER BY position`,
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query run items: %w", err)
	}
	defer rows.Close()

	var items []spravodaj.Item
	for rows.Next() {
		var (
			it        spravodaj.Item
			published sql.NullString
			tags      string
		)
		err := rows.Scan(
			&it.SourceID, &it.SourceName, &it.Title, &it.URL,
			&published, &it.Summary, &it.Geo, &it.BriefLevel, &tags, &it.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if published.Valid {
			it.Published = &published.String
		}
		if err := json.Unmarshal([]byte(tags), &it.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
