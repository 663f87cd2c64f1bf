// Package extract turns one rendered page into a deduplicated record set.
//
// Two independent strategies run in priority order: the structured-data
// strategy (network payloads sniffed during load plus JSON blocks and
// hydration state embedded in the markup) and, only when that yields nothing,
// the DOM heuristic. Results of the two are never blended within an attempt.
package extract

import (
	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// Engine runs the extraction strategies against a rendered page.
type Engine struct{}

// NewEngine creates an extraction Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Extract produces the attempt's record set. The structured-data strategy is
// preferred because it survives markup and class-name churn; the DOM
// heuristic only runs when structured extraction came up empty.
func (e *Engine) Extract(result *models.RenderResult) models.RecordSet {
	payloads := make([]models.Payload, 0, len(result.Payloads))
	payloads = append(payloads, result.Payloads...)
	payloads = append(payloads, FromEmbedded(result.HTML)...)

	if set := FromPayloads(payloads); len(set) > 0 {
		log.Info().
			Int("records", len(set)).
			Int("payloads", len(payloads)).
			Str("strategy", "structured").
			Msg("Extraction succeeded")
		return set
	}

	set := FromDOM(result.HTML)
	log.Info().
		Int("records", len(set)).
		Str("strategy", "dom").
		Msg("Extraction finished")
	return set
}
