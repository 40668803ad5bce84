package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrUnknownTheme is returned when a theme name resolves to nothing,
// neither a built-in nor a stored custom theme.
var ErrUnknownTheme = errors.New("unknown theme")

// Built-in theme names. "custom" is the escape hatch: it takes its
// highlight/accent colors from the caller instead of a preset.
const (
	Modern  = "modern"
	Classic = "classic"
	Minimal = "minimal"
	Custom  = "custom"
)

// Theme is a named color/style bundle applied at render time. Animations
// lists the effect names the theme allows; an empty list disables effects
// entirely.
type Theme struct {
	Name       string   `json:"name"`
	Background string   `json:"background"` // page background
	Text       string   `json:"text"`       // base text color
	Highlight  string   `json:"highlight"`  // important-word color
	Accent     string   `json:"accent"`     // headings, timing lines
	FontFamily string   `json:"font_family"`
	Animations []string `json:"animations"`
	Icons      bool     `json:"icons"` // category/importance icons shown
}

var builtins = map[string]Theme{
	Modern: {
		Name:       Modern,
		Background: "#F8F9FA",
		Text:       "#212529",
		Highlight:  "#FF9900",
		Accent:     "#2196F3",
		FontFamily: "'Segoe UI', Arial, sans-serif",
		Animations: AnimationNames(),
		Icons:      true,
	},
	Classic: {
		Name:       Classic,
		Background: "#FFFFFF",
		Text:       "#000000",
		Highlight:  "#B8860B",
		Accent:     "#3357FF",
		FontFamily: "Georgia, 'Times New Roman', serif",
		Animations: []string{AnimationGlow, AnimationHighlight},
		Icons:      true,
	},
	Minimal: {
		Name:       Minimal,
		Background: "#FFFFFF",
		Text:       "#111111",
		Highlight:  "#000000",
		Accent:     "#555555",
		FontFamily: "Helvetica, Arial, sans-serif",
		Animations: nil,
		Icons:      false,
	},
}

// Builtin returns the built-in themes sorted by name
func Builtin() []Theme {
	out := make([]Theme, 0, len(builtins))
	for _, t := range builtins {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get resolves a built-in theme by name
func Get(name string) (Theme, error) {
	if t, ok := builtins[name]; ok {
		return t, nil
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// NewCustom builds the "custom" theme from user-supplied primary and
// secondary colors. The page chrome stays modern; only the highlight and
// accent colors change.
func NewCustom(primary, secondary string) (Theme, error) {
	if err := ValidateColor(primary); err != nil {
		return Theme{}, fmt.Errorf("primary color: %w", err)
	}
	if err := ValidateColor(secondary); err != nil {
		return Theme{}, fmt.Errorf("secondary color: %w", err)
	}
	t := builtins[Modern]
	t.Name = Custom
	t.Highlight = primary
	t.Accent = secondary
	return t, nil
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColor accepts #RRGGBB only
func ValidateColor(color string) error {
	if !hexColorRe.MatchString(color) {
		return fmt.Errorf("invalid color %q, want #RRGGBB", color)
	}
	return nil
}

// Validate checks a user-defined theme before it is stored
func (t Theme) Validate() error {
	if t.Name == "" {
		return errors.New("theme name required")
	}
	for _, c := range []struct {
		field, value string
	}{
		{"background", t.Background},
		{"text", t.Text},
		{"highlight", t.Highlight},
		{"accent", t.Accent},
	} {
		if err := ValidateColor(c.value); err != nil {
			return fmt.Errorf("%s: %w", c.field, err)
		}
	}
	for _, a := range t.Animations {
		if _, ok := animationCSS[a]; !ok {
			return fmt.Errorf("unknown animation %q", a)
		}
	}
	return nil
}

// Allows reports whether the theme permits the named animation
func (t Theme) Allows(animation string) bool {
	for _, a := range t.Animations {
		if a == animation {
			return true
		}
	}
	return false
}
