package export

import (
	"fmt"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
)

const assHeader = `[Script Info]
Title: %s
ScriptType: v4.00+
WrapStyle: 0
PlayResX: 1280
PlayResY: 720
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

func renderASS(req Request) ([]byte, error) {
	title := req.Options.Title
	if title == "" {
		title = "Subtitle"
	}

	var b strings.Builder
	fmt.Fprintf(&b, assHeader, sanitizeASS(title))
	for _, e := range entries(req) {
		parts := make([]string, 0, len(e.words))
		for _, w := range e.words {
			parts = append(parts, assWord(req, w))
		}
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			assTime(e.start), assTime(e.end), strings.Join(parts, " "))
	}
	return []byte(b.String()), nil
}

func assWord(req Request, w *analysis.WordInfo) string {
	text := sanitizeASS(w.Text)
	if !req.Options.Styling {
		return text
	}
	style := req.Resolver.Resolve(*w)
	if style.Icon != "" {
		text = style.Icon + " " + text
	}

	var tags strings.Builder
	tags.WriteString("{\\c")
	tags.WriteString(assColor(style.Color))
	if style.Bold {
		tags.WriteString("\\b1")
	}
	if style.Italic {
		tags.WriteString("\\i1")
	}
	tags.WriteString("}")
	return tags.String() + text + "{\\r}"
}

// assTime renders seconds as H:MM:SS.cc, the centisecond ASS event format
func assTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	cs := int(seconds*100 + 0.5)
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// assColor converts #RRGGBB to the &HAABBGGRR& order ASS expects
func assColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return "&H00FFFFFF&"
	}
	r, g, b := hex[0:2], hex[2:4], hex[4:6]
	return fmt.Sprintf("&H00%s%s%s&", b, g, r)
}

// sanitizeASS strips the characters that would open override blocks
func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return s
}
