package export

import (
	"fmt"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

func renderVTT(req Request) ([]byte, error) {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	if req.Options.Styling {
		writeVTTStyleBlock(&b, req.Resolver.Theme())
	}

	for _, e := range entries(req) {
		b.WriteString(subtitle.FormatVTTTime(e.start))
		b.WriteString(" --> ")
		b.WriteString(subtitle.FormatVTTTime(e.end))
		if s := req.Options.CueSettings; s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		b.WriteString("\n")

		parts := make([]string, 0, len(e.words))
		for _, w := range e.words {
			parts = append(parts, vttWord(req, w))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n\n")
	}
	return []byte(b.String()), nil
}

// writeVTTStyleBlock emits a STYLE header defining ::cue rules for the
// classes vttWord tags words with.
func writeVTTStyleBlock(b *strings.Builder, t theme.Theme) {
	b.WriteString("STYLE\n")
	fmt.Fprintf(b, "::cue(.important) { color: %s; font-weight: bold; }\n", t.Highlight)
	for _, cat := range analysis.Categories() {
		if s, ok := theme.CategoryStyle(cat); ok {
			fmt.Fprintf(b, "::cue(.category-%s) { color: %s; }\n", cat, s.Color)
		}
	}
	fmt.Fprintf(b, "::cue(.sentiment-positive) { color: %s; }\n", theme.SentimentColor(analysis.Positive))
	fmt.Fprintf(b, "::cue(.sentiment-negative) { color: %s; }\n", theme.SentimentColor(analysis.Negative))
	b.WriteString("\n")
}

func vttWord(req Request, w *analysis.WordInfo) string {
	text := w.Text
	if !req.Options.Styling {
		return text
	}
	if icon := req.Resolver.IconFor(*w); icon != "" {
		text = icon + " " + text
	}
	classes := req.Resolver.Classes(*w)
	if len(classes) == 0 {
		return text
	}
	return fmt.Sprintf("<c.%s>%s</c>", strings.Join(classes, "."), text)
}
