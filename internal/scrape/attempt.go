package scrape

import (
	"context"

	"github.com/gold-trackers/goldwatch/internal/diag"
	"github.com/gold-trackers/goldwatch/internal/extract"
	"github.com/gold-trackers/goldwatch/internal/render"
	"github.com/gold-trackers/goldwatch/pkg/models"
)

// PageAttempter is the production Attempter: render the target page in a
// fresh browsing context under the variant's mode, then run the extraction
// strategies. Diagnostic artifacts are written whenever an attempt renders
// fine but extracts nothing.
type PageAttempter struct {
	renderer *render.Renderer
	engine   *extract.Engine
	base     render.Options
	debugDir string
}

// NewPageAttempter builds a PageAttempter. base carries every render setting
// except the mode, which the variant decides per attempt.
func NewPageAttempter(r *render.Renderer, e *extract.Engine, base render.Options, debugDir string) *PageAttempter {
	return &PageAttempter{
		renderer: r,
		engine:   e,
		base:     base,
		debugDir: debugDir,
	}
}

// Attempt implements Attempter.
func (p *PageAttempter) Attempt(ctx context.Context, v Variant) (models.RecordSet, error) {
	opts := p.base
	opts.Headless = v.Headless

	result, err := p.renderer.Render(ctx, opts)
	if err != nil {
		return nil, &AttemptError{Variant: v.Name, Err: err}
	}

	set := p.engine.Extract(result)
	if len(set) == 0 && p.debugDir != "" {
		diag.Dump(p.debugDir, v.Name, result)
	}
	return set, nil
}
