package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// cardClassHints identify a listing's "card" container by class-name
// substring when walking up from a price element.
var cardClassHints = []string{"card", "product", "item", "box"}

// FromDOM runs the markup-heuristic strategy over captured page HTML: find
// elements whose own text carries the currency marker, walk up to the nearest
// card-like container (or the immediate parent when no class matches), and
// take the container's first paragraph as the product name. Pairs missing
// either half are dropped; the result is deduplicated by product name.
//
// This strategy is the fallback: it breaks whenever the site reshuffles its
// markup, which is exactly why the structured-data strategy runs first.
func FromDOM(html string) models.RecordSet {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse markup for DOM extraction")
		return nil
	}

	var out models.RecordSet
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		if !strings.Contains(ownText(sel), models.CurrencyMarker) {
			return
		}

		price := collapseSpace(sel.Text())
		if price == "" || !strings.Contains(price, models.CurrencyMarker) {
			return
		}

		card := cardContainer(sel)
		name := collapseSpace(card.Find("p").First().Text())
		if name == "" {
			return
		}

		out = append(out, models.Record{Name: name, Price: price})
	})

	return out.Dedup()
}

// ownText returns the element's direct text content, excluding descendants,
// so container elements don't shadow the leaf that actually holds the price.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return b.String()
}

// cardContainer walks up the ancestor tree to the nearest element whose class
// matches a card hint, falling back to the immediate parent.
func cardContainer(sel *goquery.Selection) *goquery.Selection {
	for p := sel.Parent(); p.Length() > 0; p = p.Parent() {
		class, ok := p.Attr("class")
		if !ok {
			continue
		}
		lc := strings.ToLower(class)
		for _, hint := range cardClassHints {
			if strings.Contains(lc, hint) {
				return p
			}
		}
	}
	if parent := sel.Parent(); parent.Length() > 0 {
		return parent
	}
	return sel
}

// collapseSpace trims and collapses runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
