// Package render drives the headless-browser side of the pipeline: one
// isolated browsing context per attempt, consent-overlay dismissal, a scripted
// scroll sequence for lazy-loaded cards, and capture of the rendered markup,
// a full-page screenshot, and any structured-data network responses.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// Options configures a single render attempt. Values are immutable for the
// duration of the attempt; the retry ladder builds a fresh Options per rung
// instead of toggling shared state.
type Options struct {
	URL          string
	Headless     bool
	NavTimeout   time.Duration
	ReadyTimeout time.Duration
	ScrollSteps  int
	ScrollPause  time.Duration
	UserAgent    string
	Locale       string
	Timezone     string
	Latitude     float64
	Longitude    float64
	WindowWidth  int
	WindowHeight int
	ChromePath   string

	MaxPayloads     int
	MaxPayloadBytes int64
}

// Renderer renders the target page in a throwaway Chrome instance. It holds
// no browser state: every Render call gets a fresh allocator and browsing
// context so attempts can never contaminate each other.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// readyExpr is truthy once price content is observable: either the body text
// already contains the currency marker, or a price-classed element exists.
const readyExpr = `(() => {
	const b = document.body;
	if (!b) return false;
	if (b.innerText && b.innerText.includes('₹')) return true;
	return b.querySelector('[class*="price" i]') !== null;
})()`

// Render navigates to opts.URL in a fresh browsing context, dismisses consent
// overlays, runs the scroll sequence, waits (bounded) for price content, and
// returns the captured markup, screenshot, and structured-data payloads.
//
// A readiness timeout is not an error: extraction proceeds best-effort on
// whatever content is present, with Result.Ready reporting what happened.
func (r *Renderer) Render(ctx context.Context, opts Options) (*models.RenderResult, error) {
	start := time.Now()

	// Whole-attempt budget: navigation, scroll pauses, readiness wait, plus
	// slack for browser startup and capture.
	budget := opts.NavTimeout + opts.ReadyTimeout +
		time.Duration(opts.ScrollSteps)*opts.ScrollPause + 15*time.Second
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-ipc-flooding-protection", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("force-color-profile", "srgb"),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", fmt.Sprintf("%d,%d", opts.WindowWidth, opts.WindowHeight)),
		chromedp.Flag("disk-cache-size", "0"),
		chromedp.Flag("media-cache-size", "0"),
		chromedp.UserAgent(opts.UserAgent),
	}
	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	sniffer := newSniffer(opts.MaxPayloads, opts.MaxPayloadBytes)
	sniffer.Attach(browserCtx)

	result := &models.RenderResult{URL: opts.URL}
	var html string

	log.Debug().
		Str("url", opts.URL).
		Bool("headless", opts.Headless).
		Msg("Starting render")

	err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": opts.Locale + ",en;q=0.9",
		}),
		emulation.SetTimezoneOverride(opts.Timezone),
		emulation.SetLocaleOverride().WithLocale(opts.Locale),
		emulation.SetGeolocationOverride().
			WithLatitude(opts.Latitude).
			WithLongitude(opts.Longitude).
			WithAccuracy(1),
		chromedp.Navigate(opts.URL),
		// Let the SPA bootstrap before poking at the DOM.
		chromedp.Sleep(500*time.Millisecond),
		DismissOverlays(),
		scrollSequence(opts.ScrollSteps, opts.ScrollPause),
		waitForPrices(opts.ReadyTimeout, &result.Ready),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.FullScreenshot(&result.Screenshot, 80),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.URL, err)
	}

	result.HTML = html
	result.Payloads = sniffer.Payloads()

	log.Info().
		Str("url", opts.URL).
		Bool("headless", opts.Headless).
		Bool("ready", result.Ready).
		Int("payloads", len(result.Payloads)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("Render completed")

	return result, nil
}

// scrollSequence scrolls the viewport down in fixed discrete steps with a
// pause after each one, triggering lazy-loaded product cards. Scroll failures
// are advisory and stop the sequence without failing the attempt.
func scrollSequence(steps int, pause time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for i := 0; i < steps; i++ {
			if err := chromedp.Evaluate(`window.scrollBy(0, window.innerHeight);`, nil).Do(ctx); err != nil {
				log.Debug().Err(err).Int("step", i).Msg("Scroll step failed")
				return nil
			}
			select {
			case <-time.After(pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
}

// waitForPrices polls the readiness expression until it turns truthy or the
// timeout elapses. Timing out degrades to a best-effort scan of whatever is
// on the page, so the only error it can propagate is context cancellation.
func waitForPrices(timeout time.Duration, ready *bool) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var ok bool
		err := chromedp.Poll(readyExpr, &ok, chromedp.WithPollingTimeout(timeout)).Do(ctx)
		switch {
		case err == nil:
			*ready = ok
			return nil
		case errors.Is(err, chromedp.ErrPollingTimeout):
			log.Warn().Dur("timeout", timeout).Msg("Price content not observed before timeout, scanning anyway")
			return nil
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			log.Warn().Err(err).Msg("Readiness poll failed, scanning anyway")
			return nil
		}
	})
}
