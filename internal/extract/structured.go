package extract

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// Candidate key lists for the structured-data strategy, in lookup priority
// order. Keys are compared after normalization (lowercased, separators
// stripped), so "Product Name", "product_name", and "productName" all match.
var (
	nameKeys  = []string{"name", "title", "productname", "label", "skuname"}
	priceKeys = []string{"price", "saleprice", "sellingprice", "amount", "value", "mrp", "offerprice"}
)

// FromPayloads runs the structured-data strategy over every captured payload:
// decode, recursively walk the nested mapping/sequence structure, and emit a
// candidate record wherever an object exposes both a name-like and a
// price-like key at the same nesting level. Payloads that fail to decode are
// skipped, never fatal. The result is deduplicated by product name.
func FromPayloads(payloads []models.Payload) models.RecordSet {
	var out models.RecordSet
	for _, p := range payloads {
		var root interface{}
		if err := json.Unmarshal(p.Body, &root); err != nil {
			log.Debug().Err(err).Str("payload", p.URL).Msg("Payload is not valid JSON, skipped")
			continue
		}
		walk(root, &out)
	}
	return out.Dedup()
}

// walk descends the decoded payload. Objects are probed for a candidate
// before recursing, and map keys are visited in sorted order so extraction
// is deterministic.
func walk(node interface{}, out *models.RecordSet) {
	switch n := node.(type) {
	case map[string]interface{}:
		if rec, ok := candidateFromObject(n); ok {
			*out = append(*out, rec)
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(n[k], out)
		}
	case []interface{}:
		for _, v := range n {
			walk(v, out)
		}
	}
}

// candidateFromObject inspects one object level for a (name, price) pair.
// The candidate is accepted only if the name is non-empty and the formatted
// price carries the currency marker or at least one digit.
func candidateFromObject(obj map[string]interface{}) (models.Record, bool) {
	norm := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		nk := normalizeKey(k)
		if _, exists := norm[nk]; !exists {
			norm[nk] = v
		}
	}

	var name string
	for _, k := range nameKeys {
		if v, ok := norm[k]; ok {
			if s := strings.TrimSpace(scalarString(v)); s != "" {
				name = s
				break
			}
		}
	}
	if name == "" {
		return models.Record{}, false
	}

	var price string
	for _, k := range priceKeys {
		if v, ok := norm[k]; ok {
			if s := formatPrice(v); s != "" {
				price = s
				break
			}
		}
	}
	if !priceLooksValid(price) {
		return models.Record{}, false
	}

	return models.Record{Name: name, Price: price}, true
}

// normalizeKey lowercases a key and strips separators so the candidate lists
// match the naming conventions of arbitrary backends.
func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, k)
}

// formatPrice renders a price value as display text. Numeric values get the
// currency marker prepended; strings pass through as-is. Nested structures
// are rejected here because the tree walk already visits them at their own
// level.
func formatPrice(v interface{}) string {
	switch p := v.(type) {
	case float64:
		return models.CurrencyMarker + strconv.FormatFloat(p, 'f', -1, 64)
	case string:
		return strings.TrimSpace(p)
	case bool, nil:
		return ""
	default:
		return ""
	}
}

// scalarString stringifies scalar values only; objects and arrays yield "".
func scalarString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// priceLooksValid accepts a formatted price that carries the currency marker
// or at least one digit.
func priceLooksValid(price string) bool {
	if price == "" {
		return false
	}
	if strings.Contains(price, models.CurrencyMarker) {
		return true
	}
	return strings.ContainsAny(price, "0123456789")
}
