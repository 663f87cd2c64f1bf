package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// hydrationBudget bounds how long the sandboxed VM may spend on the page's
// inline scripts before being interrupted.
const hydrationBudget = 2 * time.Second

// FromEmbedded recovers structured-data payloads embedded in the page markup:
// product-schema and other JSON script blocks are taken verbatim, and inline
// hydration scripts (window.__STATE__ = {...} and friends) are executed in a
// sandboxed VM so their global assignments can be re-encoded as payloads.
func FromEmbedded(html string) []models.Payload {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse markup for embedded payloads")
		return nil
	}

	var payloads []models.Payload
	var inline []string

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if _, external := sel.Attr("src"); external {
			return
		}
		content := strings.TrimSpace(sel.Text())
		if content == "" {
			return
		}
		typ, _ := sel.Attr("type")
		typ = strings.ToLower(strings.TrimSpace(typ))
		if strings.Contains(typ, "json") {
			// application/ld+json and framework data blocks hold JSON directly.
			payloads = append(payloads, models.Payload{URL: "inline:" + typ, Body: []byte(content)})
			return
		}
		if typ == "" || strings.Contains(typ, "javascript") {
			inline = append(inline, content)
		}
	})

	payloads = append(payloads, hydrationPayloads(inline)...)
	return payloads
}

// hydrationPayloads runs inline scripts in a goja VM with a minimal browser
// stub, then exports any non-standard globals that came out as objects or
// arrays. Most scripts fail against the stub environment; those failures are
// expected and ignored.
func hydrationPayloads(scripts []string) []models.Payload {
	if len(scripts) == 0 {
		return nil
	}

	vm := goja.New()
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("document", map[string]interface{}{
		"location": map[string]interface{}{"href": ""},
	})
	vm.Set("location", map[string]interface{}{"href": ""})
	noop := func(call goja.FunctionCall) goja.Value { return nil }
	vm.Set("console", map[string]interface{}{
		"log":   noop,
		"warn":  noop,
		"error": noop,
	})

	watchdog := time.AfterFunc(hydrationBudget, func() {
		vm.Interrupt("hydration budget exceeded")
	})
	defer watchdog.Stop()

	for _, s := range scripts {
		if _, err := vm.RunString(s); err != nil {
			// Expected: most page scripts depend on a real DOM.
			continue
		}
	}

	var out []models.Payload
	for _, key := range vm.GlobalObject().Keys() {
		if isStandardGlobal(key) {
			continue
		}
		val := vm.Get(key)
		if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
			continue
		}
		switch exported := val.Export().(type) {
		case map[string]interface{}, []interface{}:
			b, err := json.Marshal(exported)
			if err != nil {
				continue
			}
			out = append(out, models.Payload{URL: "hydration:" + key, Body: b})
		}
	}
	return out
}

func isStandardGlobal(key string) bool {
	standards := map[string]bool{
		"window": true, "self": true, "document": true, "location": true, "console": true, "globalThis": true,
		"Object": true, "Array": true, "String": true, "Number": true, "Boolean": true,
		"Date": true, "Math": true, "JSON": true, "RegExp": true, "Error": true,
		"Function": true, "parseInt": true, "parseFloat": true, "isNaN": true,
		"isFinite": true, "encodeURI": true, "decodeURI": true, "encodeURIComponent": true,
		"decodeURIComponent": true, "undefined": true, "NaN": true, "Infinity": true,
	}
	return standards[key]
}
