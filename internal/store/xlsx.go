package store

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// Workbook persists the table in a single worksheet of an .xlsx file.
type Workbook struct {
	path  string
	sheet string
}

// NewWorkbook creates a workbook store. The file is only touched when reading
// or writing, never at construction.
func NewWorkbook(path, sheet string) *Workbook {
	if sheet == "" {
		sheet = "Daily"
	}
	return &Workbook{path: path, sheet: sheet}
}

// ReadAll loads the worksheet as a table. A missing file or worksheet reads
// as an empty table (first run); fully blank rows are dropped.
func (w *Workbook) ReadAll() (models.Table, error) {
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		return models.Table{}, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return models.Table{}, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close workbook")
		}
	}()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		// Worksheet missing: treat as first use.
		log.Debug().Err(err).Str("sheet", w.sheet).Msg("Worksheet not readable, treating store as empty")
		return models.Table{}, nil
	}

	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return models.Table{}, nil
	}
	return models.Table{Header: rows[0], Rows: rows[1:]}, nil
}

// OverwriteAll rewrites the worksheet from scratch: a new in-memory workbook
// replaces the file, which gives clear-then-write semantics in one save.
func (w *Workbook) OverwriteAll(t models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if w.sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", w.sheet); err != nil {
			return fmt.Errorf("name worksheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(w.sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toInterfaces(t.Header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toInterfaces(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush worksheet: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		blank := true
		for _, c := range row {
			if c != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
