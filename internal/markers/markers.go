// Package markers renders raw reference locations into display-ready
// source markers with the referenced token highlighted.
package markers

import (
	"html"
	"strings"

	"github.com/refscope/refscope/internal/results"
	"github.com/refscope/refscope/pkg/types"
)

// Generator turns cursor locations into source markers. Each generator
// owns its own file contents cache and is scoped to one find-usages
// invocation; construct a fresh one per call.
type Generator struct {
	cache *FileContentsCache
}

// NewGenerator creates a generator backed by the given unsaved overlay.
func NewGenerator(unsaved UnsavedLister) *Generator {
	return &Generator{cache: NewFileContentsCache(unsaved)}
}

// MarkersFor produces one marker per location, order-preserving.
func (g *Generator) MarkersFor(locations []types.CursorLocation) []results.SourceMarker {
	markers := make([]results.SourceMarker, 0, len(locations))
	for _, loc := range locations {
		var message string
		lines := g.cache.LinesOf(loc.FilePath)
		if line := loc.Line - 1; line >= 0 && line < len(lines) {
			message = htmlMessage(loc, lines[line])
		}

		markers = append(markers, results.SourceMarker{
			Kind:    results.MarkerKindUsage,
			File:    loc.FilePath,
			Line:    loc.Line,
			Column:  loc.Column,
			Message: message,
			IsHTML:  true,
		})
	}
	return markers
}

// htmlMessage renders one line of context with the referenced token
// wrapped in <strong>. A zero extent highlights the whole line. When
// the extent would overrun the line (multi-line tokens), the line is
// returned escaped with no highlighting at all.
func htmlMessage(loc types.CursorLocation, line string) string {
	col := loc.Column - 1
	if col >= 0 && col+loc.Extent < len(line) {
		if loc.Extent == 0 {
			return "<strong>" + html.EscapeString(line) + "</strong>"
		}
		var sb strings.Builder
		sb.WriteString(html.EscapeString(line[:col]))
		sb.WriteString("<strong>")
		sb.WriteString(html.EscapeString(line[col : col+loc.Extent]))
		sb.WriteString("</strong>")
		sb.WriteString(html.EscapeString(line[col+loc.Extent:]))
		return sb.String()
	}
	return html.EscapeString(line)
}
