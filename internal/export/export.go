package export

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

// ErrExportFormatUnavailable is returned for format names outside the
// registry.
var ErrExportFormatUnavailable = errors.New("export format unavailable")

// Supported output formats.
const (
	FormatHTML        = "html"
	FormatEnhancedSRT = "enhanced_srt"
	FormatStandardSRT = "standard_srt"
	FormatVTT         = "vtt"
	FormatASS         = "ass"
	FormatDOCX        = "docx"
	FormatJSON        = "json"
)

// Options is one format's option bundle. Formats read the fields that
// apply to them and ignore the rest.
type Options struct {
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`             // document title (html, docx)
	GroupWords  bool     `json:"group_words" yaml:"group_words"`                     // merge words sharing a start time into one entry
	Styling     bool     `json:"styling" yaml:"styling"`                             // color/bold markup (srt, vtt, ass)
	TOC         bool     `json:"toc" yaml:"toc"`                                     // html table of contents
	Animations  bool     `json:"animations" yaml:"animations"`                       // html css animations
	Timestamps  bool     `json:"timestamps" yaml:"timestamps"`                       // docx timing lines
	Highlight   bool     `json:"highlight" yaml:"highlight"`                         // docx styled runs
	CueSettings string   `json:"cue_settings,omitempty" yaml:"cue_settings,omitempty"` // vtt cue settings, e.g. "line:85%"
	Fields      []string `json:"fields,omitempty" yaml:"fields,omitempty"`           // json field selection
	Pretty      bool     `json:"pretty" yaml:"pretty"`                               // json indentation
}

// DefaultProfiles returns the default option bundle per format
func DefaultProfiles() map[string]Options {
	return map[string]Options{
		FormatHTML:        {TOC: true, Animations: true, Styling: true},
		FormatEnhancedSRT: {Styling: true, GroupWords: true},
		FormatStandardSRT: {GroupWords: true},
		FormatVTT:         {Styling: true, GroupWords: true, CueSettings: "line:85%"},
		FormatASS:         {Styling: true, GroupWords: true},
		FormatDOCX:        {Timestamps: true, Highlight: true},
		FormatJSON:        {Fields: DefaultJSONFields(), Pretty: true},
	}
}

// Request carries one render: the annotated timeline, the style resolver,
// and the format options.
type Request struct {
	Result   *analysis.Result
	Resolver *theme.Resolver
	Options  Options
}

type renderFunc func(Request) ([]byte, error)

var renderers = map[string]renderFunc{
	FormatHTML:        renderHTML,
	FormatEnhancedSRT: renderEnhancedSRT,
	FormatStandardSRT: renderStandardSRT,
	FormatVTT:         renderVTT,
	FormatASS:         renderASS,
	FormatDOCX:        renderDOCX,
	FormatJSON:        renderJSON,
}

// Formats returns the registered format names, sorted
func Formats() []string {
	out := make([]string, 0, len(renderers))
	for name := range renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether a format name is registered
func Supported(format string) bool {
	_, ok := renderers[format]
	return ok
}

var extensions = map[string]string{
	FormatHTML:        ".html",
	FormatEnhancedSRT: ".srt",
	FormatStandardSRT: ".srt",
	FormatVTT:         ".vtt",
	FormatASS:         ".ass",
	FormatDOCX:        ".docx",
	FormatJSON:        ".json",
}

// Extension returns the file extension for a format, or empty if unknown
func Extension(format string) string {
	return extensions[format]
}

// Render serializes the annotated timeline into the named format
func Render(format string, req Request) ([]byte, error) {
	fn, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrExportFormatUnavailable, format)
	}
	if req.Result == nil || len(req.Result.Words) == 0 {
		return nil, subtitle.ErrEmptySubtitle
	}
	if req.Resolver == nil {
		t, err := theme.Get(theme.Modern)
		if err != nil {
			return nil, err
		}
		req.Resolver = theme.NewResolver(t, theme.DefaultOptions())
	}
	return fn(req)
}

// RenderFile renders to a file on disk
func RenderFile(path, format string, req Request) error {
	data, err := Render(format, req)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// entry is one output unit: a single word, or a group of words sharing a
// start time when the format groups.
type entry struct {
	start, end float64
	words      []*analysis.WordInfo
}

func entries(req Request) []entry {
	res := req.Result
	if !req.Options.GroupWords {
		out := make([]entry, 0, len(res.Words))
		for i := range res.Words {
			w := &res.Words[i]
			out = append(out, entry{start: w.Start, end: w.End, words: []*analysis.WordInfo{w}})
		}
		return out
	}

	words := make([]subtitle.Word, len(res.Words))
	for i := range res.Words {
		words[i] = res.Words[i].Word
	}
	groups := subtitle.GroupByStart(words)
	out := make([]entry, 0, len(groups))
	for _, g := range groups {
		e := entry{start: g.Start, end: g.End}
		for _, idx := range g.Indexes {
			e.words = append(e.words, &res.Words[idx])
		}
		out = append(out, e)
	}
	return out
}
