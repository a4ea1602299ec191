package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
	"github.com/doeshing/huh-go/internal/ports"
)

// SQLiteStore persists the invocation log in a SQLite database.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	now      func() time.Time
	mu       sync.Mutex
}

// DefaultPath returns ~/.huh/history/history.db.
func DefaultPath() string {
	return filepath.Join(filesystem.UserHomeDir(), ".huh", "history", "history.db")
}

// NewSQLiteStore opens (or creates) the database at path. When SQLite cannot
// be opened the store degrades to a jsonl file next to it.
func NewSQLiteStore(path string) *SQLiteStore {
	store := &SQLiteStore{
		path:     path,
		fallback: NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"),
		now:      time.Now,
	}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		_ = db.Close()
		store.db = nil
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS invocations (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		mode TEXT,
		query TEXT,
		model TEXT,
		path TEXT,
		suggestion TEXT,
		additions INTEGER,
		deletions INTEGER,
		applied INTEGER,
		success INTEGER,
		error TEXT,
		duration_ms INTEGER
	);`)
	return err
}

// Save implements ports.InvocationStore.
func (s *SQLiteStore) Save(record domain.InvocationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = s.now()
	}
	if s.db == nil {
		return s.fallback.Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO invocations
		(id, timestamp, mode, query, model, path, suggestion, additions, deletions, applied, success, error, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		formatTime(record.Timestamp),
		string(record.Mode),
		record.Query,
		record.Model,
		record.Path,
		record.Suggestion,
		record.Additions,
		record.Deletions,
		boolToInt(record.Applied),
		boolToInt(record.Success),
		record.Error,
		record.DurationMS,
	)
	return err
}

// Records returns the newest records first. A limit <= 0 returns everything.
func (s *SQLiteStore) Records(limit int) ([]domain.InvocationRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit)
	}
	query := `SELECT id, timestamp, mode, query, model, path, suggestion, additions, deletions,
		applied, success, error, duration_ms FROM invocations ORDER BY timestamp DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.InvocationRecord
	for rows.Next() {
		var rec domain.InvocationRecord
		var ts, mode string
		var applied, success int
		if err := rows.Scan(&rec.ID, &ts, &mode, &rec.Query, &rec.Model, &rec.Path, &rec.Suggestion,
			&rec.Additions, &rec.Deletions, &applied, &success, &rec.Error, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Mode = domain.Mode(mode)
		rec.Applied = applied == 1
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all records.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM invocations")
	return err
}

// Prune removes records older than the retention window and reports how many
// were dropped. A non-positive window keeps everything.
func (s *SQLiteStore) Prune(olderThanDays int) (int, error) {
	if olderThanDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	if s.db == nil {
		return s.fallback.pruneBefore(cutoff)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM invocations WHERE timestamp < ?", formatTime(cutoff))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// ExportJSON writes every record to dest as JSON lines, newest first.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0)
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the active storage path.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// timestamps are stored in UTC with fixed-width nanoseconds so text order is
// chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.InvocationStore = (*SQLiteStore)(nil)
