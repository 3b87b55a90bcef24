package config

import (
	"fmt"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate reports every invalid field; an empty slice means the config is usable.
func (c *AppConfig) Validate() []ValidationError {
	var errors []ValidationError

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "Server.Port",
			Message: "port must be between 1 and 65535",
		})
	}

	switch c.Storage.DatabaseDriver {
	case "sqlite", "duckdb":
	default:
		errors = append(errors, ValidationError{
			Field:   "Storage.DatabaseDriver",
			Message: fmt.Sprintf("unsupported driver %q, expected sqlite or duckdb", c.Storage.DatabaseDriver),
		})
	}

	if c.Storage.DatabasePath == "" {
		errors = append(errors, ValidationError{
			Field:   "Storage.DatabasePath",
			Message: "database path is required",
		})
	}

	if c.Storage.SymbolsFile == "" {
		errors = append(errors, ValidationError{
			Field:   "Storage.SymbolsFile",
			Message: "symbols file is required",
		})
	}

	if c.Compression.Quality < 1 || c.Compression.Quality > 100 {
		errors = append(errors, ValidationError{
			Field:   "Compression.Quality",
			Message: "quality must be between 1 and 100",
		})
	}

	if c.Processing.EnableGzip && (c.Processing.GzipLevel < -1 || c.Processing.GzipLevel > 9) {
		errors = append(errors, ValidationError{
			Field:   "Processing.GzipLevel",
			Message: "gzip level must be between -1 and 9",
		})
	}

	return errors
}
