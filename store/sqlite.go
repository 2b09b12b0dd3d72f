package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	j "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/reoring/bylawkit/bylaw"
)

// SQLite stores each record as a JSON document next to its key and
// updated_at stamp.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating when needed) the database at path. The special
// path ":memory:" keeps the database in process.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path is empty")
	}
	dsn := path
	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if memory {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	s := &SQLite{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS bylaw_records (
		municipality_id TEXT PRIMARY KEY,
		record          TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	);`)
	return err
}

// Path returns the database path given to OpenSQLite.
func (s *SQLite) Path() string { return s.path }

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Get(ctx context.Context, id string) (bylaw.Record, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM bylaw_records WHERE municipality_id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return bylaw.Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return bylaw.Record{}, fmt.Errorf("get %q: %w", id, err)
	}
	var rec bylaw.Record
	if err := j.Unmarshal([]byte(doc), &rec); err != nil {
		return bylaw.Record{}, fmt.Errorf("get %q: decode record: %w", id, err)
	}
	return rec, nil
}

func (s *SQLite) Create(ctx context.Context, rec bylaw.Record) error {
	doc, err := j.Marshal(rec)
	if err != nil {
		return fmt.Errorf("create %q: %w", rec.MunicipalityID, err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO bylaw_records (municipality_id, record, created_at, updated_at)
		 VALUES (?, ?, ?, ?) ON CONFLICT(municipality_id) DO NOTHING`,
		rec.MunicipalityID, string(doc), stamp(rec.CreatedAt), stamp(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create %q: %w", rec.MunicipalityID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("create %q: %w", rec.MunicipalityID, err)
	} else if n == 0 {
		return fmt.Errorf("create %q: %w", rec.MunicipalityID, ErrExists)
	}
	return nil
}

func (s *SQLite) Update(ctx context.Context, rec bylaw.Record, prev time.Time) error {
	doc, err := j.Marshal(rec)
	if err != nil {
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE bylaw_records SET record = ?, updated_at = ?
		 WHERE municipality_id = ? AND updated_at = ?`,
		string(doc), stamp(rec.UpdatedAt), rec.MunicipalityID, stamp(prev))
	if err != nil {
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, err)
	}
	if n == 0 {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM bylaw_records WHERE municipality_id = ?`, rec.MunicipalityID).Scan(&one)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("update %q: %w", rec.MunicipalityID, ErrNotFound)
		case err != nil:
			return fmt.Errorf("update %q: %w", rec.MunicipalityID, err)
		}
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, ErrConflict)
	}
	return tx.Commit()
}

func (s *SQLite) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT municipality_id FROM bylaw_records ORDER BY municipality_id`)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// stamp is the canonical text form of a timestamp column; equality on it is
// the compare-and-swap test.
func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
