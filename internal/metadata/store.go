// Package metadata persists one FileRecord per ingested file in a local relational store.
package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/soulfile-vault/backend/internal/models"
)

const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

var (
	ErrIncompleteRecord  = errors.New("record is missing a required field")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Store is the append-only metadata table.
type Store interface {
	Initialize(ctx context.Context) error
	Insert(ctx context.Context, rec models.FileRecord) error
	ListAll(ctx context.Context) ([]models.FileRecord, error)
	Close() error
}

// Options tunes the DuckDB backend; SQLite ignores them.
type Options struct {
	DuckDBThreads     int
	DuckDBMemoryLimit string
}

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// Open opens (creating if needed) the database at path with the named driver.
// The table is not created until Initialize is called.
func Open(driver, path string, opts Options) (*SQLStore, error) {
	switch driver {
	case DriverSQLite, "":
		return openSQLite(path)
	case DriverDuckDB:
		return openDuckDB(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

// New wraps an already opened database handle.
func New(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// Driver returns the backend name.
func (s *SQLStore) Driver() string {
	return s.driver
}

// Initialize ensures the files table exists. Safe to call on every startup.
func (s *SQLStore) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaFor(s.driver)); err != nil {
		return fmt.Errorf("creating files table: %w", err)
	}
	return nil
}

// Insert appends one record. No uniqueness is enforced.
func (s *SQLStore) Insert(ctx context.Context, rec models.FileRecord) error {
	if err := validate(rec); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO files (name, path, compressed_size, domain) VALUES (?, ?, ?, ?)`,
		rec.Name, rec.Path, rec.CompressedSize, string(rec.Domain))
	if err != nil {
		return fmt.Errorf("inserting record %q: %w", rec.Name, err)
	}
	return nil
}

// ListAll returns every record in insertion order.
func (s *SQLStore) ListAll(ctx context.Context) ([]models.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, path, compressed_size, domain FROM files ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	records := make([]models.FileRecord, 0)
	for rows.Next() {
		var rec models.FileRecord
		var domain string
		if err := rows.Scan(&rec.Name, &rec.Path, &rec.CompressedSize, &domain); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		rec.Domain = models.Domain(domain)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}
	return records, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func validate(rec models.FileRecord) error {
	switch {
	case rec.Name == "":
		return fmt.Errorf("%w: name", ErrIncompleteRecord)
	case rec.Path == "":
		return fmt.Errorf("%w: path", ErrIncompleteRecord)
	case rec.Domain == "":
		return fmt.Errorf("%w: domain", ErrIncompleteRecord)
	case math.IsNaN(rec.CompressedSize) || rec.CompressedSize < 0:
		return fmt.Errorf("%w: compressed_size", ErrIncompleteRecord)
	}
	return nil
}
