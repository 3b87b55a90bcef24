package metadata

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb"
)

func openDuckDB(path string, opts Options) (*SQLStore, error) {
	threads := opts.DuckDBThreads
	if threads <= 0 {
		threads = 4
	}
	memLimit := opts.DuckDBMemoryLimit
	if memLimit == "" {
		memLimit = "1GB"
	}

	connector, err := duckdb.NewConnector(path, func(execer driver.ExecerContext) error {
		pragmas := []string{
			fmt.Sprintf("PRAGMA memory_limit='%s'", memLimit),
			fmt.Sprintf("PRAGMA threads=%d", threads),
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return fmt.Errorf("executing %q: %w", pragma, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	fmt.Printf("[Metadata] Opened duckdb database at: %s\n", path)
	return New(sql.OpenDB(connector), DriverDuckDB), nil
}
