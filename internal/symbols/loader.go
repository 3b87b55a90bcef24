// Package symbols loads the read-only symbol reference table, seeding it on first run.
package symbols

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soulfile-vault/backend/internal/models"
)

// Columns is the header of the persisted symbol table.
var Columns = []string{"symbol", "physics", "biology", "economics", "triggers"}

var ErrMalformedTable = errors.New("malformed symbol table")

// DefaultEntries returns the seed rows written when no table exists yet.
func DefaultEntries() []models.SymbolEntry {
	return []models.SymbolEntry{
		{Symbol: "α", Physics: "alpha_particle", Biology: "alpha_helix", Economics: "alpha_return", Triggers: "radiation, protein, ROI"},
		{Symbol: "β", Physics: "beta_decay", Biology: "beta_sheet", Economics: "beta_volatility", Triggers: "decay, keratin, risk"},
		{Symbol: "γ", Physics: "gamma_ray", Biology: "GABA", Economics: "gamma_hedging", Triggers: "MeV, neurotransmitter, options"},
		{Symbol: "Δ", Physics: "delta_enthalpy", Biology: "delta_variant", Economics: "gdp_delta", Triggers: "H=, COVID, %"},
	}
}

// Loader reads the symbol table from a CSV file.
type Loader struct {
	path string
}

// NewLoader creates a loader for the CSV file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the backing file location.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the full table, writing the default seed first if the file is absent.
// An existing file is never overwritten.
func (l *Loader) Load() ([]models.SymbolEntry, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		fmt.Printf("[Symbols] No table at %s, writing defaults\n", l.path)
		if err := writeFile(l.path, DefaultEntries()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking symbol table: %w", err)
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening symbol table: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a symbol table. Columns are matched by header name, so their order may vary.
func Read(r io.Reader) ([]models.SymbolEntry, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("reading symbol table header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedTable, col)
		}
	}

	entries := make([]models.SymbolEntry, 0)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
		}
		entries = append(entries, models.SymbolEntry{
			Symbol:    row[index["symbol"]],
			Physics:   row[index["physics"]],
			Biology:   row[index["biology"]],
			Economics: row[index["economics"]],
			Triggers:  row[index["triggers"]],
		})
	}
	return entries, nil
}

// Write encodes entries as CSV with the standard header.
func Write(w io.Writer, entries []models.SymbolEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Symbol, e.Physics, e.Biology, e.Economics, e.Triggers}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeFile writes to a temp file and renames it into place.
func writeFile(path string, entries []models.SymbolEntry) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating symbol table directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".symbols-*.csv")
	if err != nil {
		return fmt.Errorf("creating symbol table: %w", err)
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, entries); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing symbol table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing symbol table: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("installing symbol table: %w", err)
	}
	return nil
}
