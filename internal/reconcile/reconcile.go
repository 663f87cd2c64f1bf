// Package reconcile merges a freshly scraped record set into the persisted
// store with a "latest wins" policy keyed by (date, product name).
package reconcile

import (
	"strings"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// Merge produces the updated persisted table. An empty store yields exactly
// today's rows. Otherwise the store is normalized to the three canonical
// columns (missing ones synthesized empty), today's rows are appended after
// the historical ones, and duplicates of (date, name) are resolved by
// position: the last occurrence survives, so today's values win over stored
// values for the same date and product. Running the same merge twice on the
// same day is a no-op.
func Merge(existing models.Table, todays models.RecordSet) models.Table {
	out := models.Table{Header: append([]string(nil), models.StoreHeader...)}

	todayRows := make([][]string, 0, len(todays))
	for _, r := range todays {
		todayRows = append(todayRows, []string{r.Date, r.Name, r.Price})
	}

	if existing.Empty() {
		out.Rows = todayRows
		return out
	}

	combined := append(normalize(existing), todayRows...)

	// Position-based last-wins dedup: the surviving row keeps the position of
	// the LAST occurrence, matching concatenation-order semantics.
	last := make(map[string]int, len(combined))
	for i, row := range combined {
		last[rowKey(row)] = i
	}
	out.Rows = make([][]string, 0, len(last))
	for i, row := range combined {
		if last[rowKey(row)] == i {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// normalize reshapes arbitrary store contents to exactly the canonical
// columns. Hand-edited stores may miss columns, reorder them, or carry ragged
// rows; missing cells come back empty rather than failing the merge.
func normalize(t models.Table) [][]string {
	idx := make([]int, len(models.StoreHeader))
	for i, want := range models.StoreHeader {
		idx[i] = -1
		for j, have := range t.Header {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				idx[i] = j
				break
			}
		}
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, raw := range t.Rows {
		row := make([]string, len(models.StoreHeader))
		for i, j := range idx {
			if j >= 0 && j < len(raw) {
				row[i] = raw[j]
			}
		}
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func rowKey(row []string) string {
	return row[0] + "\x00" + row[1]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
