package extract

import "testing"

func TestFromDOM_CardWithParagraphAndPrice(t *testing.T) {
	html := replaceMarker(`<html><body>
		<div class="MuiBox-root product-card">
			<p>1g Gold Coin</p>
			<span>₹6,500</span>
		</div>
	</body></html>`)

	set := FromDOM(html)
	if len(set) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(set))
	}
	if set[0].Name != "1g Gold Coin" {
		t.Errorf("Expected name '1g Gold Coin', got %q", set[0].Name)
	}
	if set[0].Price != "₹6,500" {
		t.Errorf("Expected price '₹6,500', got %q", set[0].Price)
	}
}

func TestFromDOM_FallsBackToImmediateParent(t *testing.T) {
	html := replaceMarker(`<html><body>
		<div>
			<p>5g Gold Bar</p>
			<span>₹32,400</span>
		</div>
	</body></html>`)

	set := FromDOM(html)
	if len(set) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(set))
	}
	if set[0].Name != "5g Gold Bar" {
		t.Errorf("Expected name from parent container, got %q", set[0].Name)
	}
}

func TestFromDOM_DedupLastWins(t *testing.T) {
	html := replaceMarker(`<html><body>
		<div class="card"><p>1g Gold Coin</p><span>₹6,400</span></div>
		<div class="card"><p>1g Gold Coin</p><span>₹6,500</span></div>
	</body></html>`)

	set := FromDOM(html)
	if len(set) != 1 {
		t.Fatalf("Expected 1 record after dedup, got %d", len(set))
	}
	if set[0].Price != "₹6,500" {
		t.Errorf("Last card should win, got %q", set[0].Price)
	}
}

func TestFromDOM_NoMarkerNoRecords(t *testing.T) {
	html := `<html><body>
		<div class="card"><p>1g Gold Coin</p><span>$80</span></div>
	</body></html>`

	if set := FromDOM(html); len(set) != 0 {
		t.Errorf("Expected no records without currency marker, got %+v", set)
	}
}

func TestFromDOM_CardWithoutNameSkipped(t *testing.T) {
	html := replaceMarker(`<html><body>
		<div class="card"><span>₹6,500</span></div>
	</body></html>`)

	if set := FromDOM(html); len(set) != 0 {
		t.Errorf("Expected no records without a paragraph name, got %+v", set)
	}
}

// replaceMarker substitutes the ₹ escape used in fixtures with the
// actual rupee rune, keeping the fixtures readable in ASCII editors.
func replaceMarker(html string) string {
	out := ""
	for i := 0; i < len(html); i++ {
		if i+6 <= len(html) && html[i:i+6] == `₹` {
			out += "₹"
			i += 5
			continue
		}
		out += html[i : i+1]
	}
	return out
}
