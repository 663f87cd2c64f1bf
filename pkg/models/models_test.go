package models

import "testing"

func TestRecordSet_Stamp(t *testing.T) {
	rs := RecordSet{{Name: "1g Gold Coin", Price: "₹6500"}}
	rs.Stamp("2026-08-26")

	if rs[0].Date != "2026-08-26" {
		t.Errorf("Date = %q", rs[0].Date)
	}
}

func TestRecordSet_DedupKeepsFirstPositionLastValue(t *testing.T) {
	rs := RecordSet{
		{Name: "A", Price: "₹1"},
		{Name: "B", Price: "₹2"},
		{Name: "A", Price: "₹3"},
	}
	out := rs.Dedup()

	if len(out) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(out))
	}
	if out[0].Name != "A" || out[0].Price != "₹3" {
		t.Errorf("Duplicate should keep first position with last value: %+v", out[0])
	}
	if out[1].Name != "B" {
		t.Errorf("Unexpected order: %+v", out)
	}
}

func TestTable_Empty(t *testing.T) {
	if !(Table{}).Empty() {
		t.Error("Zero table should be empty")
	}
	if (Table{Rows: [][]string{{"x"}}}).Empty() {
		t.Error("Table with rows should not be empty")
	}
}
