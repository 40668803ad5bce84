package export

import (
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

var titleCaser = cases.Title(xlang.Und)

var posLabels = map[string]string{
	analysis.POSProper:    "Proper noun",
	analysis.POSNoun:      "Noun",
	analysis.POSVerb:      "Verb",
	analysis.POSAdjective: "Adjective",
	analysis.POSAdverb:    "Adverb",
}

const tocLabelLimit = 60

func tocLabel(text string) string {
	if runes := []rune(text); len(runes) > tocLabelLimit {
		return string(runes[:tocLabelLimit]) + "…"
	}
	return text
}

func renderHTML(req Request) ([]byte, error) {
	res := req.Result
	title := req.Options.Title
	if title == "" {
		title = "Subtitles"
	}

	byCue := make(map[int][]*analysis.WordInfo)
	for i := range res.Words {
		byCue[res.Words[i].Cue] = append(byCue[res.Words[i].Cue], &res.Words[i])
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", template.HTMLEscapeString(title))
	writeHTMLStyle(&b, req.Resolver.Theme(), req.Options)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", template.HTMLEscapeString(title))

	writeLegend(&b, res)
	if req.Options.TOC {
		writeTOC(&b, res)
	}

	b.WriteString("<div class=\"subtitle-container\">\n")
	for _, cue := range res.Cues {
		fmt.Fprintf(&b, "<div class=\"time-block\" id=\"cue-%d\">", cue.Index)
		fmt.Fprintf(&b, "<span class=\"timestamp\">[%s]</span>\n", subtitle.FormatSRTTime(cue.Start))
		for _, w := range byCue[cue.Index] {
			writeWordSpan(&b, req, w)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return []byte(b.String()), nil
}

func writeHTMLStyle(b *strings.Builder, t theme.Theme, opts Options) {
	b.WriteString("<style>\n")
	fmt.Fprintf(b, "body { font-family: %s; line-height: 1.8; background-color: %s; color: %s; padding: 20px; }\n",
		t.FontFamily, t.Background, t.Text)
	fmt.Fprintf(b, "h1, h2 { color: %s; }\n", t.Accent)

	switch t.Name {
	case theme.Minimal:
		b.WriteString(".subtitle-container { padding: 10px 0; }\n")
	case theme.Classic:
		b.WriteString(".subtitle-container { background-color: #FFFFF8; border: 1px solid #DDDDDD; padding: 15px; }\n")
	default:
		b.WriteString(".subtitle-container { background-color: #FFFFFF; border-radius: 5px; padding: 15px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }\n")
	}

	b.WriteString(".word { margin-right: 5px; display: inline-block; padding: 2px 4px; border-radius: 3px; transition: all 0.2s; }\n")
	b.WriteString(".word:hover { background-color: rgba(0,0,0,0.05); }\n")
	b.WriteString(".word-icon { cursor: help; }\n")
	sizes := theme.IconSizeCSS()
	for _, size := range []string{theme.IconSmall, theme.IconMedium, theme.IconLarge} {
		fmt.Fprintf(b, ".icon-%s { font-size: %s; }\n", size, sizes[size])
	}
	b.WriteString(".timestamp { font-size: 10px; color: #666666; margin-right: 10px; background-color: rgba(0,0,0,0.06); padding: 2px 5px; border-radius: 3px; }\n")
	b.WriteString(".time-block { margin-bottom: 10px; }\n")
	b.WriteString(".toc { margin-bottom: 20px; } .toc a { text-decoration: none; }\n")
	b.WriteString(".legend { margin-bottom: 15px; } .legend-chip { display: inline-block; padding: 2px 8px; margin-right: 6px; border-radius: 10px; font-size: 12px; color: #FFFFFF; }\n")

	if opts.Animations {
		for _, name := range t.Animations {
			if css := theme.AnimationCSS(name); css != "" {
				fmt.Fprintf(b, ".anim-%s:hover { %s; }\n", name, css)
			}
		}
		for _, kf := range theme.AnimationKeyframes(t.Animations) {
			b.WriteString(kf)
			b.WriteString("\n")
		}
	}
	b.WriteString("</style>\n")
}

func writeLegend(b *strings.Builder, res *analysis.Result) {
	present := make(map[string]bool)
	for i := range res.Words {
		if c := res.Words[i].Category; c != "" {
			present[c] = true
		}
	}

	b.WriteString("<div class=\"legend\">\n")
	fmt.Fprintf(b, "<span class=\"legend-chip\" style=\"background-color:%s;\">⭐ Important</span>\n",
		theme.ImportantStyle().Color)
	for _, cat := range analysis.Categories() {
		if !present[cat] {
			continue
		}
		s, ok := theme.CategoryStyle(cat)
		if !ok {
			continue
		}
		fmt.Fprintf(b, "<span class=\"legend-chip\" style=\"background-color:%s;\">%s %s</span>\n",
			s.Color, s.Icon, template.HTMLEscapeString(titleCaser.String(cat)))
	}
	b.WriteString("</div>\n")
}

func writeTOC(b *strings.Builder, res *analysis.Result) {
	b.WriteString("<nav class=\"toc\">\n<h2>Contents</h2>\n<ol>\n")
	for _, cue := range res.Cues {
		fmt.Fprintf(b, "<li><a href=\"#cue-%d\">[%s] %s</a></li>\n",
			cue.Index, subtitle.FormatSRTTime(cue.Start), template.HTMLEscapeString(tocLabel(cue.Text)))
	}
	b.WriteString("</ol>\n</nav>\n")
}

func writeWordSpan(b *strings.Builder, req Request, w *analysis.WordInfo) {
	style := req.Resolver.Resolve(*w)
	classes := append([]string{"word"}, req.Resolver.Classes(*w)...)
	if req.Options.Animations && style.Animation != "" {
		classes = append(classes, "anim-"+style.Animation)
	}

	var css strings.Builder
	fmt.Fprintf(&css, "color:%s;", style.Color)
	if style.Background != "" {
		fmt.Fprintf(&css, "background-color:%s;", style.Background)
	}
	if style.Bold {
		css.WriteString("font-weight:bold;")
	}
	if style.Italic {
		css.WriteString("font-style:italic;")
	}
	if style.Underline {
		css.WriteString("text-decoration:underline;")
	}

	fmt.Fprintf(b, "<span class=\"%s\" style=\"%s\"", strings.Join(classes, " "), css.String())
	if tooltip := wordTooltip(w); tooltip != "" {
		fmt.Fprintf(b, " title=\"%s\"", template.HTMLEscapeString(tooltip))
	}
	b.WriteString(">")
	if style.Icon != "" {
		fmt.Fprintf(b, "<span class=\"word-icon icon-%s\">%s</span> ", theme.IconSize(w.Importance), style.Icon)
	}
	b.WriteString(template.HTMLEscapeString(w.Text))
	b.WriteString("</span>\n")
}

func wordTooltip(w *analysis.WordInfo) string {
	var parts []string
	if label, ok := posLabels[w.POS]; ok {
		parts = append(parts, label)
	}
	if w.Category != "" {
		parts = append(parts, titleCaser.String(w.Category))
	}
	if w.Sentiment != analysis.Neutral {
		parts = append(parts, fmt.Sprintf("%s %.2f", w.Sentiment, w.SentimentScore))
	}
	if w.Context != "" {
		parts = append(parts, w.Context)
	}
	return strings.Join(parts, " | ")
}
