package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one ripped title.
type Entry struct {
	ID         int64
	RunID      string
	VolumeName string
	Device     string
	Title      int
	OutputPath string
	SizeBytes  int64
	Elapsed    time.Duration
	RippedAt   time.Time
}

// Store manages the rip log backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends a ripped title and fills in its ID.
func (s *Store) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return errors.New("history entry required")
	}
	if entry.Title < 1 {
		return fmt.Errorf("title index must be positive, got %d", entry.Title)
	}
	if entry.RippedAt.IsZero() {
		entry.RippedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rips (
            run_id, volume_name, device, title_index, output_path,
            size_bytes, elapsed_ms, ripped_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.VolumeName,
		entry.Device,
		entry.Title,
		entry.OutputPath,
		entry.SizeBytes,
		entry.Elapsed.Milliseconds(),
		entry.RippedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert rip: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id
	return nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, run_id, volume_name, device, title_index, output_path,
            size_bytes, elapsed_ms, ripped_at
        FROM rips ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rips: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			elapsedMS int64
			rippedAt  string
		)
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.VolumeName, &entry.Device, &entry.Title,
			&entry.OutputPath, &entry.SizeBytes, &elapsedMS, &rippedAt); err != nil {
			return nil, fmt.Errorf("scan rip: %w", err)
		}
		entry.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if ts, parseErr := time.Parse(time.RFC3339Nano, rippedAt); parseErr == nil {
			entry.RippedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rips: %w", err)
	}
	return entries, nil
}

// Clear removes every entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rips")
	if err != nil {
		return 0, fmt.Errorf("clear rips: %w", err)
	}
	return res.RowsAffected()
}
