package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// CSVFile persists the table as a plain CSV file. Useful for local runs and
// tests where a workbook would be overkill.
type CSVFile struct {
	path string
}

// NewCSVFile creates a CSV-backed store.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// ReadAll loads the file as a table. A missing file reads as an empty table.
// Ragged rows are tolerated; the reconciliation layer normalizes them.
func (c *CSVFile) ReadAll() (models.Table, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Table{}, nil
		}
		return models.Table{}, fmt.Errorf("open store %s: %w", c.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("read store %s: %w", c.path, err)
	}

	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return models.Table{}, nil
	}
	return models.Table{Header: rows[0], Rows: rows[1:]}, nil
}

// OverwriteAll replaces the file contents. The table is written to a
// temporary file first and renamed into place, so a crash mid-write never
// leaves a half-written store behind.
func (c *CSVFile) OverwriteAll(t models.Table) error {
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".goldwatch-*.csv")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("replace store %s: %w", c.path, err)
	}
	return nil
}
