package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/development-nine-hawks/cdp/pkg/geometry"
	_ "modernc.org/sqlite"
)

// SQLitePatternStore persists PatternRecords to a SQLite database via the
// pure-Go modernc.org/sqlite driver, the same driver dfbb-im2code uses for
// its local message history — an alternative to MemoryPatternStore for
// hosts that want patterns to survive process restarts.
type SQLitePatternStore struct {
	db *sql.DB
}

// OpenSQLitePatternStore opens (creating if necessary) a SQLite database at
// dsn and ensures its schema exists.
func OpenSQLitePatternStore(dsn string) (*SQLitePatternStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS patterns (
	id TEXT PRIMARY KEY,
	seed INTEGER NOT NULL,
	pattern_size INTEGER NOT NULL,
	base_freq REAL NOT NULL,
	mod_freq REAL NOT NULL,
	mod_depth REAL NOT NULL,
	marker_centres TEXT NOT NULL,
	serial_number TEXT,
	label TEXT,
	notes TEXT,
	created_at TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLitePatternStore{db: db}, nil
}

func (s *SQLitePatternStore) Close() error {
	return s.db.Close()
}

func (s *SQLitePatternStore) Put(ctx context.Context, rec PatternRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("store: pattern record has empty ID")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO patterns (id, seed, pattern_size, base_freq, mod_freq, mod_depth, marker_centres, serial_number, label, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	seed=excluded.seed, pattern_size=excluded.pattern_size,
	base_freq=excluded.base_freq, mod_freq=excluded.mod_freq, mod_depth=excluded.mod_depth,
	marker_centres=excluded.marker_centres, serial_number=excluded.serial_number,
	label=excluded.label, notes=excluded.notes, created_at=excluded.created_at`,
		rec.ID, rec.Seed, rec.PatternSize, rec.BaseFreq, rec.ModFreq, rec.ModDepth,
		encodeCentres(rec.MarkerCentres), rec.SerialNumber, rec.Label, rec.Notes,
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: put pattern: %w", err)
	}
	return nil
}

func (s *SQLitePatternStore) Get(ctx context.Context, id string) (PatternRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, seed, pattern_size, base_freq, mod_freq, mod_depth, marker_centres, serial_number, label, notes, created_at
FROM patterns WHERE id = ?`, id)
	rec, err := scanPattern(row)
	if err == sql.ErrNoRows {
		return PatternRecord{}, false, nil
	}
	if err != nil {
		return PatternRecord{}, false, fmt.Errorf("store: get pattern: %w", err)
	}
	return rec, true, nil
}

func (s *SQLitePatternStore) List(ctx context.Context) ([]PatternRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, seed, pattern_size, base_freq, mod_freq, mod_depth, marker_centres, serial_number, label, notes, created_at
FROM patterns ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list patterns: %w", err)
	}
	defer rows.Close()

	var out []PatternRecord
	for rows.Next() {
		rec, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan pattern: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLitePatternStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM patterns WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete pattern: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPattern(row rowScanner) (PatternRecord, error) {
	var rec PatternRecord
	var centres string
	var createdAt string
	if err := row.Scan(&rec.ID, &rec.Seed, &rec.PatternSize, &rec.BaseFreq, &rec.ModFreq, &rec.ModDepth,
		&centres, &rec.SerialNumber, &rec.Label, &rec.Notes, &createdAt); err != nil {
		return PatternRecord{}, err
	}
	rec.MarkerCentres = decodeCentres(centres)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return rec, nil
}

func encodeCentres(pts [4]geometry.Point2D) string {
	return fmt.Sprintf("%g,%g|%g,%g|%g,%g|%g,%g",
		pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, pts[3].X, pts[3].Y)
}

func decodeCentres(s string) [4]geometry.Point2D {
	var pts [4]geometry.Point2D
	var idx int
	for _, pair := range splitN(s, '|') {
		if idx >= 4 {
			break
		}
		var x, y float64
		fmt.Sscanf(pair, "%g,%g", &x, &y)
		pts[idx] = geometry.Point2D{X: x, Y: y}
		idx++
	}
	return pts
}

func splitN(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
