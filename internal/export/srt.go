package export

import (
	"fmt"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

func renderEnhancedSRT(req Request) ([]byte, error) {
	return renderSRT(req, req.Options.Styling)
}

func renderStandardSRT(req Request) ([]byte, error) {
	return renderSRT(req, false)
}

func renderSRT(req Request, styled bool) ([]byte, error) {
	var b strings.Builder
	for i, e := range entries(req) {
		fmt.Fprintf(&b, "%d\n%s --> %s\n",
			i+1, subtitle.FormatSRTTime(e.start), subtitle.FormatSRTTime(e.end))
		parts := make([]string, 0, len(e.words))
		for _, w := range e.words {
			if styled {
				parts = append(parts, srtWord(req.Resolver, w))
			} else {
				parts = append(parts, w.Text)
			}
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n\n")
	}
	return []byte(b.String()), nil
}

// srtWord wraps one word in the font markup most players understand:
// <font color="RRGGBB"> with <b> nested inside, icon prefixed outside.
func srtWord(r *theme.Resolver, w *analysis.WordInfo) string {
	style := r.Resolve(*w)
	text := w.Text
	if style.Bold {
		text = "<b>" + text + "</b>"
	}
	out := fmt.Sprintf("<font color=%q>%s</font>", strings.TrimPrefix(style.Color, "#"), text)
	if style.Icon != "" {
		out = style.Icon + " " + out
	}
	return out
}
