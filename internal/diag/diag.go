// Package diag writes observational artifacts for empty-result attempts: the
// full-page screenshot, the raw markup, a readable markdown rendition, and
// the captured structured-data payloads. Nothing downstream consumes these;
// they exist so a broken strategy can be debugged after the fact.
package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/pkg/models"
)

// maxPayloadDumps caps how many captured payloads get written per attempt.
const maxPayloadDumps = 50

// Dump writes the attempt's artifacts under dir. Every failure here is logged
// and swallowed; diagnostics must never change the outcome of a run.
func Dump(dir, label string, result *models.RenderResult) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Cannot create debug directory")
		return
	}

	base := filepath.Join(dir, time.Now().Format("20060102-150405")+"-"+label)

	if len(result.Screenshot) > 0 {
		writeArtifact(base+".png", result.Screenshot)
	}
	if result.HTML != "" {
		writeArtifact(base+".html", []byte(result.HTML))
		writeMarkdown(base+".md", result.HTML)
	}

	for i, p := range result.Payloads {
		if i >= maxPayloadDumps {
			break
		}
		writeArtifact(fmt.Sprintf("%s-payload-%02d.json", base, i), p.Body)
	}

	log.Info().
		Str("label", label).
		Str("dir", dir).
		Int("payloads", min(len(result.Payloads), maxPayloadDumps)).
		Msg("Diagnostic artifacts written")
}

func writeArtifact(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to write diagnostic artifact")
	}
}

// writeMarkdown converts the captured markup to GitHub-flavored markdown,
// which is far easier to eyeball than a minified SPA document.
func writeMarkdown(path, html string) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	mdStr, err := converter.ConvertString(html)
	if err != nil {
		log.Warn().Err(err).Msg("Markdown conversion failed")
		return
	}
	writeArtifact(path, []byte(mdStr))
}
