package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// consentPhrases are the visible-text fragments that identify cookie/consent
// buttons worth clicking before content becomes interactable.
var consentPhrases = []string{
	"accept",
	"agree",
	"got it",
	"allow",
	"ok",
	"continue",
	"close",
}

// maxClicksPerPhrase bounds how many matching elements get activated for any
// single phrase, so a page full of "close" links can't derail the attempt.
const maxClicksPerPhrase = 3

// DismissOverlays best-effort clicks consent/cookie banners that would block
// content visibility. It never fails the render: every lookup or click error
// is swallowed with a debug line, because this step is advisory only.
func DismissOverlays() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, phrase := range consentPhrases {
			var clicked int
			if err := chromedp.Evaluate(clickByTextScript(phrase, maxClicksPerPhrase), &clicked).Do(ctx); err != nil {
				log.Debug().Err(err).Str("phrase", phrase).Msg("Overlay dismissal failed")
				continue
			}
			if clicked > 0 {
				log.Debug().Str("phrase", phrase).Int("clicked", clicked).Msg("Dismissed overlay elements")
				// Give the banner's dismiss animation a beat.
				select {
				case <-time.After(200 * time.Millisecond):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})
}

// clickByTextScript builds a JS expression that clicks up to limit
// interactive elements whose visible text contains the phrase,
// case-insensitively, and evaluates to the number of elements clicked.
func clickByTextScript(phrase string, limit int) string {
	return fmt.Sprintf(`(() => {
	const phrase = %q;
	const limit = %d;
	let clicked = 0;
	const nodes = document.querySelectorAll('button, [role="button"], a, input[type="button"], input[type="submit"]');
	for (const el of nodes) {
		if (clicked >= limit) break;
		const text = ((el.innerText || el.value || '') + '').trim().toLowerCase();
		if (text && text.includes(phrase)) {
			try { el.click(); clicked++; } catch (e) {}
		}
	}
	return clicked;
})()`, strings.ToLower(phrase), limit)
}
