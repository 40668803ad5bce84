package theme

import (
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
)

// Options controls which visual treatments the resolver applies. Theme and
// options together decide the final style; the analysis result only carries
// the scores.
type Options struct {
	UseIcons        bool `json:"use_icons"`
	SentimentColors bool `json:"sentiment_colors"`
	Animations      bool `json:"animations"`
}

// DefaultOptions returns the resolver defaults
func DefaultOptions() Options {
	return Options{UseIcons: true, Animations: true}
}

// Resolver maps analyzed words to visual styles under one theme
type Resolver struct {
	theme Theme
	opts  Options
}

// NewResolver builds a resolver for the given theme
func NewResolver(t Theme, opts Options) *Resolver {
	return &Resolver{theme: t, opts: opts}
}

// Theme returns the active theme
func (r *Resolver) Theme() Theme { return r.theme }

// Resolve maps one analyzed word to its visual style. Important words in a
// known category keep the category color; important words without one take
// the theme highlight. Everything else stays in the base text color, with
// an optional sentiment tint.
func (r *Resolver) Resolve(w analysis.WordInfo) Style {
	style := Style{Color: r.theme.Text}
	switch {
	case w.POS == analysis.POSPunct:
		return style
	case w.Important && w.Category != "":
		if cs, ok := categoryStyles[w.Category]; ok {
			style = cs
			// The custom theme recolors every category with the
			// user's secondary color.
			if r.theme.Name == Custom {
				style.Color = r.theme.Accent
			}
			break
		}
		fallthrough
	case w.Important:
		style = importantStyle
		style.Color = r.theme.Highlight
	case r.opts.SentimentColors && w.Sentiment != "" && w.Sentiment != analysis.Neutral:
		style.Color = SentimentColor(w.Sentiment)
	}

	style.Icon = r.IconFor(w)
	if !r.opts.Animations || !r.theme.Allows(style.Animation) {
		style.Animation = ""
	}
	return style
}

// IconFor picks the icon shown next to a word: the word-specific context
// icon first, then the category icon, then the star for uncategorized
// important words.
func (r *Resolver) IconFor(w analysis.WordInfo) string {
	if !r.opts.UseIcons || !r.theme.Icons {
		return ""
	}
	if w.Category != "" {
		if icon, ok := contextIcons[w.Category][strings.ToLower(w.Text)]; ok {
			return icon
		}
		if cs, ok := categoryStyles[w.Category]; ok {
			return cs.Icon
		}
	}
	if w.Important {
		return importantStyle.Icon
	}
	return ""
}

// Classes returns the CSS class list for a word, used by the HTML and VTT
// exporters.
func (r *Resolver) Classes(w analysis.WordInfo) []string {
	var classes []string
	if w.Important {
		classes = append(classes, "important")
	}
	if w.Category != "" {
		classes = append(classes, "category-"+w.Category)
	}
	switch w.Sentiment {
	case analysis.Positive:
		classes = append(classes, "sentiment-positive")
	case analysis.Negative:
		classes = append(classes, "sentiment-negative")
	}
	return classes
}
