package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

const (
	docxFontSize  uint64 = 12
	docxTitleSize uint64 = 16
	docxTimeColor        = "666666"
)

// renderDOCX builds the document with godocx. The library only saves to a
// path, so the bytes round-trip through a temp file.
func renderDOCX(req Request) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}

	font := docxFont(req.Resolver.Theme().FontFamily)
	title := req.Options.Title
	if title == "" {
		title = "Subtitles"
	}
	doc.AddParagraph("").AddText(title).Font(font).Size(docxTitleSize).Color("000000").Bold(true)
	doc.AddParagraph("")

	if req.Options.TOC {
		doc.AddParagraph("").AddText("Contents").Font(font).Size(14).Color("000000").Bold(true)
		for _, cue := range req.Result.Cues {
			line := fmt.Sprintf("[%s] %s", subtitle.FormatSRTTime(cue.Start), tocLabel(cue.Text))
			doc.AddParagraph("").AddText(line).Font(font).Size(docxFontSize).Color(docxTimeColor)
		}
		doc.AddParagraph("")
	}

	byCue := make(map[int][]*analysis.WordInfo)
	for i := range req.Result.Words {
		byCue[req.Result.Words[i].Cue] = append(byCue[req.Result.Words[i].Cue], &req.Result.Words[i])
	}

	for _, cue := range req.Result.Cues {
		p := doc.AddParagraph("")
		if req.Options.Timestamps {
			timing := fmt.Sprintf("[%s --> %s]", subtitle.FormatSRTTime(cue.Start), subtitle.FormatSRTTime(cue.End))
			p.AddText(timing).Font(font).Size(docxFontSize).Color(docxTimeColor).Italic(true)
			p = doc.AddParagraph("")
		}
		for i, w := range byCue[cue.Index] {
			text := w.Text
			if i > 0 {
				text = " " + text
			}
			writeDocxWord(p, req, w, text, font)
		}
		doc.AddParagraph("")
	}

	return saveDocx(doc)
}

func writeDocxWord(p *docx.Paragraph, req Request, w *analysis.WordInfo, text, font string) {
	if !req.Options.Highlight {
		p.AddText(text).Font(font).Size(docxFontSize).Color("000000")
		return
	}
	s := req.Resolver.Resolve(*w)
	run := p.AddText(text).Font(font).Size(docxFontSize).Color(strings.TrimPrefix(s.Color, "#"))
	if s.Bold {
		run.Bold(true)
	}
	if s.Italic {
		run.Italic(true)
	}
}

// docxFont picks the first concrete family out of a CSS font stack.
func docxFont(stack string) string {
	first, _, _ := strings.Cut(stack, ",")
	return strings.Trim(strings.TrimSpace(first), "'\"")
}

func saveDocx(doc *docx.RootDoc) ([]byte, error) {
	tmp, err := os.CreateTemp("", "subexport-*.docx")
	if err != nil {
		return nil, err
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := doc.SaveTo(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
