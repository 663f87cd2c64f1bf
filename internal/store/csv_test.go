package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

func TestCSVFile_MissingFileReadsEmpty(t *testing.T) {
	s := NewCSVFile(filepath.Join(t.TempDir(), "missing.csv"))

	table, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !table.Empty() || len(table.Header) != 0 {
		t.Errorf("Expected empty table, got %+v", table)
	}
}

func TestCSVFile_OverwriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	s := NewCSVFile(path)

	in := models.Table{
		Header: models.StoreHeader,
		Rows: [][]string{
			{"2026-08-26", "1g Gold Coin", "₹6500"},
			{"2026-08-26", "5g Gold Bar", "₹32400"},
		},
	}
	if err := s.OverwriteAll(in); err != nil {
		t.Fatalf("OverwriteAll failed: %v", err)
	}

	out, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !reflect.DeepEqual(out.Header, in.Header) {
		t.Errorf("Header = %v, want %v", out.Header, in.Header)
	}
	if !reflect.DeepEqual(out.Rows, in.Rows) {
		t.Errorf("Rows = %v, want %v", out.Rows, in.Rows)
	}
}

func TestCSVFile_OverwriteReplacesPreviousContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	s := NewCSVFile(path)

	first := models.Table{Header: models.StoreHeader, Rows: [][]string{
		{"2026-08-25", "1g Gold Coin", "₹6400"},
	}}
	second := models.Table{Header: models.StoreHeader, Rows: [][]string{
		{"2026-08-26", "1g Gold Coin", "₹6500"},
	}}
	if err := s.OverwriteAll(first); err != nil {
		t.Fatal(err)
	}
	if err := s.OverwriteAll(second); err != nil {
		t.Fatal(err)
	}

	out, err := s.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 1 || out.Rows[0][0] != "2026-08-26" {
		t.Errorf("Overwrite should fully replace contents, got %v", out.Rows)
	}
}

func TestCSVFile_ToleratesRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	raw := "Date,Product Name,Price\n2026-08-25,1g Gold Coin\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := NewCSVFile(path).ReadAll()
	if err != nil {
		t.Fatalf("Ragged rows should not fail the read: %v", err)
	}
	if len(out.Rows) != 1 || len(out.Rows[0]) != 2 {
		t.Errorf("Unexpected rows %v", out.Rows)
	}
}

func TestOpen_SelectsByExtension(t *testing.T) {
	if _, err := Open("store.xlsx", "Daily"); err != nil {
		t.Errorf("xlsx should be supported: %v", err)
	}
	if _, err := Open("store.csv", ""); err != nil {
		t.Errorf("csv should be supported: %v", err)
	}
	if _, err := Open("store.db", ""); err == nil {
		t.Error("Unknown extension should be rejected")
	}
}
