// Package store provides the persisted-store collaborator: a spreadsheet-like
// table with read-all and overwrite-all operations. The pipeline assumes it
// is the sole writer for the duration of one run; there is no locking and no
// optimistic-concurrency check.
package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// Store is the read-then-full-overwrite contract the reconciliation engine
// expects. Implementations must tolerate a missing or empty backing file on
// first use.
type Store interface {
	// ReadAll returns the whole table, or an empty table when the backing
	// file does not exist yet.
	ReadAll() (models.Table, error)

	// OverwriteAll replaces the entire table (clear then write).
	OverwriteAll(t models.Table) error
}

// Open selects a Store implementation by file extension: .xlsx gets the
// workbook store, .csv the plain-text one. sheet only applies to workbooks.
func Open(path, sheet string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return NewWorkbook(path, sheet), nil
	case ".csv":
		return NewCSVFile(path), nil
	default:
		return nil, fmt.Errorf("unsupported store format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}
