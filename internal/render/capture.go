package render

import (
	"context"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// sniffer intercepts structured-data network responses via CDP network
// events. SPA backends deliver listings as JSON well before the DOM settles,
// which makes these payloads the preferred extraction source.
type sniffer struct {
	mu       sync.Mutex
	max      int
	maxBytes int64
	payloads []models.Payload
}

func newSniffer(max int, maxBytes int64) *sniffer {
	if max <= 0 {
		max = 50
	}
	if maxBytes <= 0 {
		maxBytes = 2 << 20
	}
	return &sniffer{max: max, maxBytes: maxBytes}
}

// Attach registers the CDP listener on the browser context. Bodies are
// fetched asynchronously: GetResponseBody is only valid once the response
// has finished loading, and the listener callback must not block.
func (s *sniffer) Attach(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok {
			return
		}
		if !isStructuredData(e.Response) {
			return
		}

		reqID := e.RequestID
		respURL := e.Response.URL

		go func() {
			c := chromedp.FromContext(ctx)
			if c == nil || c.Target == nil {
				return
			}
			body, err := network.GetResponseBody(reqID).Do(cdp.WithExecutor(ctx, c.Target))
			if err != nil || len(body) == 0 {
				// Body already evicted or stream response; skip it.
				return
			}
			if int64(len(body)) > s.maxBytes {
				log.Debug().Str("url", respURL).Int("bytes", len(body)).Msg("Payload over size cap, skipped")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			if len(s.payloads) >= s.max {
				return
			}
			s.payloads = append(s.payloads, models.Payload{URL: respURL, Body: body})
		}()
	})
}

// Payloads returns the captured payloads in arrival order.
func (s *sniffer) Payloads() []models.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Payload, len(s.payloads))
	copy(out, s.payloads)
	return out
}

// isStructuredData classifies a response as a structured-data payload by
// content type.
func isStructuredData(resp *network.Response) bool {
	if resp == nil {
		return false
	}
	if strings.Contains(strings.ToLower(resp.MimeType), "json") {
		return true
	}
	if ct, ok := resp.Headers["content-type"].(string); ok {
		return strings.Contains(strings.ToLower(ct), "json")
	}
	if ct, ok := resp.Headers["Content-Type"].(string); ok {
		return strings.Contains(strings.ToLower(ct), "json")
	}
	return false
}
