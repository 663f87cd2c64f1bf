package reconcile

import (
	"reflect"
	"testing"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

func todaySet() models.RecordSet {
	return models.RecordSet{
		{Date: "2026-08-26", Name: "1g Gold Coin", Price: "₹6500"},
		{Date: "2026-08-26", Name: "5g Gold Bar", Price: "₹32400"},
	}
}

func TestMerge_EmptyStoreYieldsTodayExactly(t *testing.T) {
	merged := Merge(models.Table{}, todaySet())

	if !reflect.DeepEqual(merged.Header, models.StoreHeader) {
		t.Errorf("Unexpected header %v", merged.Header)
	}
	want := [][]string{
		{"2026-08-26", "1g Gold Coin", "₹6500"},
		{"2026-08-26", "5g Gold Bar", "₹32400"},
	}
	if !reflect.DeepEqual(merged.Rows, want) {
		t.Errorf("Rows = %v, want %v", merged.Rows, want)
	}
}

func TestMerge_TodayWinsOnConflict(t *testing.T) {
	existing := models.Table{
		Header: []string{"Date", "Product Name", "Price"},
		Rows: [][]string{
			{"2026-08-25", "1g Gold Coin", "₹6400"},
			{"2026-08-26", "1g Gold Coin", "₹6450"},
		},
	}
	merged := Merge(existing, models.RecordSet{
		{Date: "2026-08-26", Name: "1g Gold Coin", Price: "₹6500"},
	})

	if len(merged.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %v", merged.Rows)
	}
	// Yesterday's row survives untouched; today's re-scrape replaces the
	// stored value for the same date+product.
	if merged.Rows[0][0] != "2026-08-25" || merged.Rows[0][2] != "₹6400" {
		t.Errorf("Historical row altered: %v", merged.Rows[0])
	}
	if merged.Rows[1][0] != "2026-08-26" || merged.Rows[1][2] != "₹6500" {
		t.Errorf("Today's value should win: %v", merged.Rows[1])
	}
}

func TestMerge_SameDayRerunIdempotent(t *testing.T) {
	first := Merge(models.Table{}, todaySet())
	second := Merge(first, todaySet())

	if !reflect.DeepEqual(first.Rows, second.Rows) {
		t.Errorf("Re-running merge changed the store:\nfirst  %v\nsecond %v", first.Rows, second.Rows)
	}
}

func TestMerge_SynthesizesMissingColumns(t *testing.T) {
	// A hand-created store that predates the Date column.
	existing := models.Table{
		Header: []string{"Product Name", "Price"},
		Rows: [][]string{
			{"1g Gold Coin", "₹6400"},
		},
	}
	merged := Merge(existing, todaySet())

	if len(merged.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %v", merged.Rows)
	}
	if merged.Rows[0][0] != "" || merged.Rows[0][1] != "1g Gold Coin" {
		t.Errorf("Missing date column should synthesize empty: %v", merged.Rows[0])
	}
}

func TestMerge_ToleratesRaggedAndBlankRows(t *testing.T) {
	existing := models.Table{
		Header: []string{"Date", "Product Name", "Price"},
		Rows: [][]string{
			{"2026-08-20", "1g Gold Coin"}, // price cell missing
			{"", "", ""},                   // manual blank row
		},
	}
	merged := Merge(existing, todaySet())

	if len(merged.Rows) != 3 {
		t.Fatalf("Expected 3 rows (blank dropped), got %v", merged.Rows)
	}
	if merged.Rows[0][2] != "" {
		t.Errorf("Ragged row should gain an empty price cell: %v", merged.Rows[0])
	}
}

func TestMerge_HistoricalOrderPreserved(t *testing.T) {
	existing := models.Table{
		Header: []string{"Date", "Product Name", "Price"},
		Rows: [][]string{
			{"2026-08-24", "5g Gold Bar", "₹32100"},
			{"2026-08-25", "1g Gold Coin", "₹6400"},
		},
	}
	merged := Merge(existing, todaySet())

	if merged.Rows[0][0] != "2026-08-24" || merged.Rows[1][0] != "2026-08-25" {
		t.Errorf("Historical relative order not preserved: %v", merged.Rows)
	}
	if merged.Rows[len(merged.Rows)-1][0] != "2026-08-26" {
		t.Errorf("Today's rows should append at the end: %v", merged.Rows)
	}
}
