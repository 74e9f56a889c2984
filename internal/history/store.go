// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records past conversions in a local SQLite database so
// batch runs can skip inputs that have not changed since they were last
// converted.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/textile2bbcode/pkg/types"
)

const (
	// DefaultDBPath is used when HistoryConfig.DBPath is empty.
	DefaultDBPath = ".textile2bbcode/history.db"

	defaultMaxResults = 50

	// timeLayout is fixed-width so converted_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the conversion history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.DBPath, creating
// its directory and schema when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			input_path TEXT PRIMARY KEY,
			output_path TEXT NOT NULL,
			checksum TEXT NOT NULL,
			converted_at TEXT NOT NULL,
			input_bytes INTEGER NOT NULL DEFAULT 0,
			output_bytes INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Lookup returns the stored record for inputPath. The boolean is false when
// the input has never been recorded.
func (s *Store) Lookup(ctx context.Context, inputPath string) (types.ConversionRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT input_path, output_path, checksum, converted_at, input_bytes, output_bytes, status
		 FROM conversions WHERE input_path = ?`, inputPath)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ConversionRecord{}, false, nil
	}
	if err != nil {
		return types.ConversionRecord{}, false, fmt.Errorf("looking up %s: %w", inputPath, err)
	}
	return rec, true, nil
}

// Record inserts rec or replaces the existing record for its input path.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (input_path, output_path, checksum, converted_at, input_bytes, output_bytes, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(input_path) DO UPDATE SET
			output_path=excluded.output_path, checksum=excluded.checksum,
			converted_at=excluded.converted_at, input_bytes=excluded.input_bytes,
			output_bytes=excluded.output_bytes, status=excluded.status`,
		rec.InputPath, rec.OutputPath, rec.Checksum,
		rec.ConvertedAt.UTC().Format(timeLayout),
		rec.InputBytes, rec.OutputBytes, string(rec.Status),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.InputPath, err)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Status keeps only records with this status. Empty keeps all.
	Status types.ConversionStatus

	// Limit caps the number of records. Zero uses the store default.
	Limit int
}

// List returns recorded conversions, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.ConversionRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT input_path, output_path, checksum, converted_at, input_bytes, output_bytes, status
		FROM conversions`)
	if opts.Status != "" {
		qb.WriteString(` WHERE status = ?`)
		args = append(args, string(opts.Status))
	}
	qb.WriteString(` ORDER BY converted_at DESC, input_path LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.ConversionRecord, error) {
	var (
		rec         types.ConversionRecord
		convertedAt string
		status      string
	)
	if err := sc.Scan(&rec.InputPath, &rec.OutputPath, &rec.Checksum, &convertedAt,
		&rec.InputBytes, &rec.OutputBytes, &status); err != nil {
		return rec, err
	}
	t, err := time.Parse(timeLayout, convertedAt)
	if err != nil {
		return rec, fmt.Errorf("parsing converted_at %q: %w", convertedAt, err)
	}
	rec.ConvertedAt = t
	rec.Status = types.ConversionStatus(status)
	return rec, nil
}

// Checksum returns the hex SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
