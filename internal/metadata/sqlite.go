package metadata

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register sqlite driver
)

func openSQLite(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// One writer, one process.
	db.SetMaxOpenConns(1)

	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode=WAL;`).Scan(&mode); err != nil {
		_ = err // best-effort
	}

	fmt.Printf("[Metadata] Opened sqlite database at: %s\n", path)
	return New(db, DriverSQLite), nil
}
