package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

func testResult() *analysis.Result {
	return &analysis.Result{
		Language:   "en",
		Confidence: 0.9,
		Cues: []subtitle.Cue{
			{Index: 1, Start: 0, End: 2, Text: "The mother smiled."},
			{Index: 2, Start: 2, End: 4, Text: "Great party"},
		},
		Words: []analysis.WordInfo{
			{Word: subtitle.Word{Text: "The", Start: 0, End: 0.5, Cue: 1}, POS: analysis.POSOther, Sentiment: analysis.Neutral},
			{Word: subtitle.Word{Text: "mother", Start: 0.5, End: 1.2, Cue: 1}, POS: analysis.POSNoun,
				Category: analysis.CategoryPerson, Important: true, Importance: 0.8, Sentiment: analysis.Neutral},
			{Word: subtitle.Word{Text: "smiled", Start: 1.2, End: 1.9, Cue: 1}, POS: analysis.POSVerb, Sentiment: analysis.Neutral},
			{Word: subtitle.Word{Text: ".", Start: 1.9, End: 2, Cue: 1}, POS: analysis.POSPunct, Sentiment: analysis.Neutral},
			{Word: subtitle.Word{Text: "Great", Start: 2, End: 3, Cue: 2}, POS: analysis.POSAdjective,
				Sentiment: analysis.Positive, SentimentScore: 0.8},
			{Word: subtitle.Word{Text: "party", Start: 2, End: 4, Cue: 2}, POS: analysis.POSNoun, Sentiment: analysis.Neutral},
		},
	}
}

func testRequest(t *testing.T, format string) Request {
	t.Helper()
	th, err := theme.Get(theme.Modern)
	if err != nil {
		t.Fatalf("modern theme: %v", err)
	}
	return Request{
		Result:   testResult(),
		Resolver: theme.NewResolver(th, theme.DefaultOptions()),
		Options:  DefaultProfiles()[format],
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render("pdf", testRequest(t, FormatJSON))
	if !errors.Is(err, ErrExportFormatUnavailable) {
		t.Fatalf("err = %v, want ErrExportFormatUnavailable", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	for _, req := range []Request{{}, {Result: &analysis.Result{}}} {
		if _, err := Render(FormatStandardSRT, req); !errors.Is(err, subtitle.ErrEmptySubtitle) {
			t.Fatalf("err = %v, want ErrEmptySubtitle", err)
		}
	}
}

func TestRenderDefaultResolver(t *testing.T) {
	req := testRequest(t, FormatEnhancedSRT)
	req.Resolver = nil
	out, err := Render(FormatEnhancedSRT, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Modern is the fallback theme; its text color shows up in the markup.
	if !strings.Contains(string(out), `<font color="212529">The</font>`) {
		t.Errorf("default resolver output missing modern text color:\n%s", out)
	}
}

func TestRenderStandardSRT(t *testing.T) {
	out, err := Render(FormatStandardSRT, testRequest(t, FormatStandardSRT))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:00,500\nThe\n\n" +
		"2\n00:00:00,500 --> 00:00:01,200\nmother\n\n" +
		"3\n00:00:01,200 --> 00:00:01,900\nsmiled\n\n" +
		"4\n00:00:01,900 --> 00:00:02,000\n.\n\n" +
		"5\n00:00:02,000 --> 00:00:04,000\nGreat party\n\n"
	if string(out) != want {
		t.Errorf("standard srt:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderEnhancedSRT(t *testing.T) {
	out, err := Render(FormatEnhancedSRT, testRequest(t, FormatEnhancedSRT))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"👩 <font color=\"FF5733\"><b>mother</b></font>",
		"<font color=\"212529\">The</font>",
		"<font color=\"212529\">smiled</font>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("enhanced srt missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "<b>smiled") {
		t.Errorf("plain verb must not be bold:\n%s", s)
	}
}

func TestRenderVTT(t *testing.T) {
	out, err := Render(FormatVTT, testRequest(t, FormatVTT))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "WEBVTT\n\n") {
		t.Fatalf("missing WEBVTT header:\n%s", s)
	}
	for _, want := range []string{
		"STYLE\n::cue(.important) { color: #FF9900; font-weight: bold; }",
		"::cue(.category-person) { color: #FF5733; }",
		"::cue(.sentiment-positive) { color: #4CAF50; }",
		"00:00:00.000 --> 00:00:00.500 line:85%\nThe\n",
		"<c.important.category-person>👩 mother</c>",
		"<c.sentiment-positive>Great</c>",
		"00:00:02.000 --> 00:00:04.000 line:85%",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("vtt missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "STYLE") > strings.Index(s, "-->") {
		t.Errorf("STYLE block must precede cues:\n%s", s)
	}
}

func TestRenderASS(t *testing.T) {
	req := testRequest(t, FormatASS)
	req.Options.Title = "My {Movie}"
	out, err := Render(FormatASS, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"Title: My (Movie)",
		"PlayResX: 1280",
		"Style: Default,Arial,20,",
		`Dialogue: 0,0:00:00.00,0:00:00.50,Default,,0,0,0,,{\c&H00292521&}The{\r}`,
		`{\c&H003357FF&\b1}👩 mother{\r}`,
		"Dialogue: 0,0:00:02.00,0:00:04.00,Default,,0,0,0,,",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("ass missing %q:\n%s", want, s)
		}
	}
}

func TestRenderASSUnstyled(t *testing.T) {
	req := testRequest(t, FormatASS)
	req.Options.Styling = false
	out, err := Render(FormatASS, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), `{\c`) {
		t.Errorf("unstyled ass must not carry overrides:\n%s", out)
	}
	if !strings.Contains(string(out), ",,Great party\n") {
		t.Errorf("unstyled ass missing grouped text:\n%s", out)
	}
}

func TestASSTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00:00.00"},
		{1.234, "0:00:01.23"},
		{3661.5, "1:01:01.50"},
		{-2, "0:00:00.00"},
	}
	for _, tt := range tests {
		if got := assTime(tt.in); got != tt.want {
			t.Errorf("assTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestASSColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FF5733", "&H003357FF&"},
		{"212529", "&H00292521&"},
		{"#FFF", "&H00FFFFFF&"},
		{"", "&H00FFFFFF&"},
	}
	for _, tt := range tests {
		if got := assColor(tt.in); got != tt.want {
			t.Errorf("assColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeASS(t *testing.T) {
	if got := sanitizeASS(`a{b}c\d`); got != `a(b)c\\d` {
		t.Errorf("sanitizeASS = %q", got)
	}
}

func TestRenderJSONFieldSelection(t *testing.T) {
	req := testRequest(t, FormatJSON)
	req.Options.Fields = []string{"word", "important"}
	req.Options.Pretty = false
	out, err := Render(FormatJSON, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `[{"word":"The","important":false},{"word":"mother","important":true},` +
		`{"word":"smiled","important":false},{"word":".","important":false},` +
		`{"word":"Great","important":false},{"word":"party","important":false}]`
	if string(out) != want {
		t.Errorf("json:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderJSONDefaultFields(t *testing.T) {
	out, err := Render(FormatJSON, testRequest(t, FormatJSON))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !gjson.ValidBytes(out) {
		t.Fatalf("invalid json:\n%s", out)
	}
	recs := gjson.ParseBytes(out).Array()
	if len(recs) != 6 {
		t.Fatalf("got %d records, want 6", len(recs))
	}
	first := recs[0]
	if first.Get("index").Int() != 1 || first.Get("start_time").String() != "00:00:00,000" {
		t.Errorf("first record off: %s", first.Raw)
	}
	mother := recs[1]
	if !mother.Get("important").Bool() || mother.Get("category").String() != "person" {
		t.Errorf("mother record off: %s", mother.Raw)
	}
	if got := mother.Get("style.color").String(); got != "#FF5733" {
		t.Errorf("style.color = %q, want #FF5733", got)
	}
	if got := mother.Get("style.font_weight").String(); got != "bold" {
		t.Errorf("style.font_weight = %q, want bold", got)
	}
	if got := mother.Get("style.icon").String(); got != "👩" {
		t.Errorf("style.icon = %q, want 👩", got)
	}
}

func TestRenderJSONUnknownField(t *testing.T) {
	req := testRequest(t, FormatJSON)
	req.Options.Fields = []string{"word", "bogus"}
	if _, err := Render(FormatJSON, req); err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("err = %v, want unknown field error", err)
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := Render(FormatHTML, testRequest(t, FormatHTML))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Subtitles</title>",
		`id="cue-1"`,
		`href="#cue-1"`,
		`class="word important category-person anim-scale"`,
		"color:#FF5733;font-weight:bold;",
		`<span class="word-icon icon-large">👩</span>`,
		`title="Noun | Person"`,
		"@keyframes pulse",
		".anim-scale:hover",
		"⭐ Important",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	req := testRequest(t, FormatHTML)
	req.Options.Title = `<script>alert("x")</script>`
	req.Result.Words[0].Text = "<The>"
	out, err := Render(FormatHTML, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "<script>alert") {
		t.Fatalf("title not escaped:\n%s", s)
	}
	if !strings.Contains(s, "&lt;The&gt;") {
		t.Errorf("word text not escaped")
	}
}

func TestRenderDOCX(t *testing.T) {
	out, err := Render(FormatDOCX, testRequest(t, FormatDOCX))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Fatalf("docx output is not a zip archive (got %d bytes)", len(out))
	}
}

func TestRenderFile(t *testing.T) {
	req := testRequest(t, FormatStandardSRT)
	path := filepath.Join(t.TempDir(), "out.srt")
	if err := RenderFile(path, FormatStandardSRT, req); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	direct, err := Render(FormatStandardSRT, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(onDisk, direct) {
		t.Errorf("file contents differ from direct render")
	}
}

func TestFormatsAndProfiles(t *testing.T) {
	formats := Formats()
	if len(formats) != 7 {
		t.Fatalf("got %d formats, want 7: %v", len(formats), formats)
	}
	profiles := DefaultProfiles()
	for _, f := range formats {
		if !Supported(f) {
			t.Errorf("Supported(%q) = false", f)
		}
		if _, ok := profiles[f]; !ok {
			t.Errorf("no default profile for %q", f)
		}
		if Extension(f) == "" {
			t.Errorf("no extension for %q", f)
		}
	}
	for f := range profiles {
		if !Supported(f) {
			t.Errorf("profile %q has no renderer", f)
		}
	}
	if Supported("pdf") {
		t.Errorf("pdf must not be supported")
	}
	if Extension("pdf") != "" {
		t.Errorf("unknown format must have empty extension")
	}
}

func TestDocxFont(t *testing.T) {
	tests := []struct{ in, want string }{
		{"'Segoe UI', Arial, sans-serif", "Segoe UI"},
		{"Georgia, 'Times New Roman', serif", "Georgia"},
		{"Helvetica", "Helvetica"},
	}
	for _, tt := range tests {
		if got := docxFont(tt.in); got != tt.want {
			t.Errorf("docxFont(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
