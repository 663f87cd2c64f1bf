package extract

import (
	"testing"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

func payload(body string) models.Payload {
	return models.Payload{URL: "test", Body: []byte(body)}
}

func TestFromPayloads_TitleAndNumericPrice(t *testing.T) {
	set := FromPayloads([]models.Payload{
		payload(`{"title":"1g Gold Coin","price":6500}`),
	})

	if len(set) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(set))
	}
	if set[0].Name != "1g Gold Coin" {
		t.Errorf("Expected name '1g Gold Coin', got %q", set[0].Name)
	}
	if set[0].Price != "₹6500" {
		t.Errorf("Expected price '₹6500', got %q", set[0].Price)
	}
}

func TestFromPayloads_NestedStructures(t *testing.T) {
	body := `{
		"data": {
			"products": [
				{"name": "1g Gold Coin", "sellingPrice": 6500.5, "sku": "GC1"},
				{"name": "5g Gold Bar", "mrp": "₹32,400"}
			]
		},
		"meta": {"page": 1}
	}`
	set := FromPayloads([]models.Payload{payload(body)})

	if len(set) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(set))
	}
	byName := map[string]string{}
	for _, r := range set {
		byName[r.Name] = r.Price
	}
	if byName["1g Gold Coin"] != "₹6500.5" {
		t.Errorf("Coin price wrong: %q", byName["1g Gold Coin"])
	}
	if byName["5g Gold Bar"] != "₹32,400" {
		t.Errorf("Bar price wrong: %q", byName["5g Gold Bar"])
	}
}

func TestFromPayloads_KeyNormalization(t *testing.T) {
	body := `{"items":[{"Product Name":"2g Gold Coin","sale_price":"12900"}]}`
	set := FromPayloads([]models.Payload{payload(body)})

	if len(set) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(set))
	}
	if set[0].Name != "2g Gold Coin" {
		t.Errorf("Name not matched through normalized key: %q", set[0].Name)
	}
	// String prices pass through as-is; a digit is enough to accept.
	if set[0].Price != "12900" {
		t.Errorf("Expected price '12900', got %q", set[0].Price)
	}
}

func TestFromPayloads_RejectsInvalidCandidates(t *testing.T) {
	cases := []struct {
		desc string
		body string
	}{
		{"empty name", `{"name":"  ","price":6500}`},
		{"price without digits or marker", `{"name":"Gold Coin","price":"call us"}`},
		{"name key only", `{"title":"Gold Coin"}`},
		{"price key only", `{"price":6500}`},
		{"nested price object not treated as scalar", `{"name":"Gold Coin","price":{"note":"ask"}}`},
	}
	for _, c := range cases {
		set := FromPayloads([]models.Payload{payload(c.body)})
		if len(set) != 0 {
			t.Errorf("%s: expected no records, got %+v", c.desc, set)
		}
	}
}

func TestFromPayloads_MalformedPayloadSkipped(t *testing.T) {
	set := FromPayloads([]models.Payload{
		payload(`{not json`),
		payload(`{"title":"1g Gold Coin","price":6500}`),
	})
	if len(set) != 1 {
		t.Fatalf("Malformed payload should be skipped, got %d records", len(set))
	}
}

func TestFromPayloads_DedupByName(t *testing.T) {
	set := FromPayloads([]models.Payload{
		payload(`[{"name":"1g Gold Coin","price":6400},{"name":"1g Gold Coin","price":6500}]`),
	})
	if len(set) != 1 {
		t.Fatalf("Expected 1 record after dedup, got %d", len(set))
	}
	if set[0].Price != "₹6500" {
		t.Errorf("Last occurrence should win, got %q", set[0].Price)
	}
}

func TestDedup_Idempotent(t *testing.T) {
	rs := models.RecordSet{
		{Name: "A", Price: "₹1"},
		{Name: "B", Price: "₹2"},
		{Name: "A", Price: "₹3"},
	}
	once := rs.Dedup()
	twice := once.Dedup()

	if len(once) != len(twice) {
		t.Fatalf("Dedup not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Row %d differs after second dedup: %+v vs %+v", i, once[i], twice[i])
		}
	}
	if once[0].Price != "₹3" {
		t.Errorf("Expected last-seen price for A, got %q", once[0].Price)
	}
}
