package metadata

// DuckDB's REAL is single precision, so it stores sizes as DOUBLE.
const (
	sqliteSchema = `
CREATE TABLE IF NOT EXISTS files (
  name TEXT,
  path TEXT,
  compressed_size REAL,
  domain TEXT
);
`

	duckdbSchema = `
CREATE TABLE IF NOT EXISTS files (
  name TEXT,
  path TEXT,
  compressed_size DOUBLE,
  domain TEXT
);
`
)

func schemaFor(driver string) string {
	if driver == DriverDuckDB {
		return duckdbSchema
	}
	return sqliteSchema
}
