package models

// DateLayout is the calendar-date format used in the Date column.
const DateLayout = "2006-01-02"

// CurrencyMarker is the rupee sign the target page prices everything in.
// Both extraction strategies and the page readiness signal key off it.
const CurrencyMarker = "₹"

// StoreHeader is the canonical persisted-store column order.
var StoreHeader = []string{"Date", "Product Name", "Price"}

// Record is a single (date, product, price) observation scraped from the
// target page. Price keeps its original text form, currency marker included.
type Record struct {
	Date  string `json:"date"`
	Name  string `json:"product_name"`
	Price string `json:"price"`
}

// RecordSet holds the records produced by one scrape run.
type RecordSet []Record

// Dedup returns a copy of the set with unique product names. When the same
// name appears more than once the last occurrence wins, but the record keeps
// the position of its first appearance.
func (rs RecordSet) Dedup() RecordSet {
	if len(rs) == 0 {
		return rs
	}
	index := make(map[string]int, len(rs))
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if i, seen := index[r.Name]; seen {
			out[i] = r
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}

// Stamp sets the Date column on every record and returns the set.
func (rs RecordSet) Stamp(date string) RecordSet {
	for i := range rs {
		rs[i].Date = date
	}
	return rs
}

// Table is the persisted-store shape: a header row plus data rows. Rows may
// be ragged or carry unexpected columns when the store was edited by hand;
// the reconciliation layer normalizes them before merging.
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table holds no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Payload is one captured structured-data body: a network response sniffed
// during page load, or a block recovered from the page markup.
type Payload struct {
	URL  string
	Body []byte
}

// RenderResult is everything one render attempt produced. Ready reports
// whether the price-content readiness signal fired before its timeout;
// extraction proceeds best-effort either way.
type RenderResult struct {
	URL        string
	HTML       string
	Payloads   []Payload
	Screenshot []byte
	Ready      bool
}
