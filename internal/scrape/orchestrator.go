// Package scrape sequences extraction attempts across render variants: each
// rung of the escalation ladder gets a fully independent render, and the
// first non-empty record set wins.
package scrape

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/internal/ratelimit"
	"github.com/gold-trackers/goldwatch/pkg/models"
)

// Variant is one rung of the escalation ladder. Today the ladder only varies
// the render mode; some target sites serve different content to a visible
// browser than to a headless one.
type Variant struct {
	Name     string
	Headless bool
}

// DefaultLadder returns the escalation order: default headless render first,
// then a visible render as the alternate.
func DefaultLadder() []Variant {
	return []Variant{
		{Name: "headless", Headless: true},
		{Name: "headful", Headless: false},
	}
}

// Attempter runs one complete render-and-extract attempt under a variant.
// It is the single attempt abstraction the ladder decides on: a nil error
// with an empty set means "page rendered but nothing extractable".
type Attempter interface {
	Attempt(ctx context.Context, v Variant) (models.RecordSet, error)
}

// Orchestrator walks the ladder until an attempt yields records. Attempts are
// strictly sequential and share no state; a pause plus a host rate limit
// separate them to avoid hammering the target.
type Orchestrator struct {
	attempter Attempter
	limiter   ratelimit.RateLimiter
	targetURL string
	ladder    []Variant
	pause     time.Duration
}

// NewOrchestrator wires an Orchestrator. A nil limiter disables pacing (used
// by tests); an empty ladder falls back to DefaultLadder.
func NewOrchestrator(a Attempter, lim ratelimit.RateLimiter, targetURL string, ladder []Variant, pause time.Duration) *Orchestrator {
	if len(ladder) == 0 {
		ladder = DefaultLadder()
	}
	return &Orchestrator{
		attempter: a,
		limiter:   lim,
		targetURL: targetURL,
		ladder:    ladder,
		pause:     pause,
	}
}

// Run executes the escalation ladder and stamps the winning record set with
// the given date. Attempt-level failures and empty results escalate silently;
// only ladder exhaustion returns ErrNoListings.
func (o *Orchestrator) Run(ctx context.Context, date string) (models.RecordSet, error) {
	for i, v := range o.ladder {
		if i > 0 {
			log.Info().
				Str("variant", v.Name).
				Dur("pause", o.pause).
				Msg("Escalating to next render variant")
			select {
			case <-time.After(o.pause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if o.limiter != nil {
			if err := o.limiter.Wait(ctx, o.targetURL); err != nil {
				return nil, err
			}
		}

		set, err := o.attempter.Attempt(ctx, v)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Str("variant", v.Name).Msg("Attempt failed")
			continue
		}
		if len(set) > 0 {
			log.Info().
				Str("variant", v.Name).
				Int("records", len(set)).
				Msg("Scrape succeeded")
			return set.Stamp(date), nil
		}
		log.Warn().Str("variant", v.Name).Msg("Attempt yielded no records")
	}

	return nil, ErrNoListings
}
